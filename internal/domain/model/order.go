package model

import "time"

// OrderStatus describes mint attempt lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// Terminal reports whether the status admits no further transition.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusFailed
}

// Order describes one attempt to mint one collectible unit for one wallet.
// Price and supply fields are snapshots taken at creation time so later
// collectible edits do not alter an in-flight order.
type Order struct {
	ID            string
	WalletAddress string
	CollectibleID int64
	CollectionID  int64
	DeviceID      *string
	Status        OrderStatus
	PriceUSD      float64
	SupplyType    SupplyType
	MaxSupply     *int32
	PaymentSig    *string
	MintSig       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Free reports whether the order requires no payment.
func (o *Order) Free() bool {
	return o.PriceUSD == 0
}

// Eligibility is the transient outcome of the eligibility gate.
type Eligibility struct {
	Eligible bool
	Reason   string
}
