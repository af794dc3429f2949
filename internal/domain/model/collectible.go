package model

import "time"

// SupplyType describes how many units of a collectible may ever be minted.
type SupplyType string

const (
	SupplyTypeUnlimited SupplyType = "unlimited"
	SupplyTypeSingle    SupplyType = "single"
	SupplyTypeLimited   SupplyType = "limited"
)

// Collectible is a mintable item definition owned by a collection.
type Collectible struct {
	ID           int64
	CollectionID int64
	Name         string
	MetadataURI  string
	PriceUSD     float64
	SupplyType   SupplyType
	MaxSupply    *int32
	NFCPublicKey *string
	MintStart    *time.Time
	MintEnd      *time.Time
	CreatedAt    time.Time
}

// EffectiveMaxSupply resolves the supply cap implied by the supply type.
// Nil means unlimited.
func (c *Collectible) EffectiveMaxSupply() *int32 {
	switch c.SupplyType {
	case SupplyTypeSingle:
		one := int32(1)
		return &one
	case SupplyTypeLimited:
		return c.MaxSupply
	default:
		return nil
	}
}

// MintableAt reports whether the mint window, if any, is open at t.
func (c *Collectible) MintableAt(t time.Time) bool {
	if c.MintStart != nil && t.Before(*c.MintStart) {
		return false
	}
	if c.MintEnd != nil && t.After(*c.MintEnd) {
		return false
	}
	return true
}
