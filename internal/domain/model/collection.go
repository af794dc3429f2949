package model

import "time"

// Collection groups collectibles under one on-chain collection mint and
// one compressed token tree. Both addresses must be populated before any
// mint in the collection can succeed.
type Collection struct {
	ID          int64
	ArtistID    int64
	Name        string
	Symbol      string
	MintAddress *string
	TreeAddress *string
	RoyaltyBps  int32
	CreatedAt   time.Time
}

// ReadyForMint reports whether both on-chain addresses are populated.
func (c *Collection) ReadyForMint() bool {
	return c.MintAddress != nil && *c.MintAddress != "" &&
		c.TreeAddress != nil && *c.TreeAddress != ""
}
