package repository

import (
	"context"
	"time"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
)

// OrderRepository describes persistence operations with mint orders.
//
// Create must enforce, atomically with the insert, that at most one
// non-failed order exists per (wallet, collectible) and per
// (device, collectible) pair, and that the supply cap is not exceeded.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	FindActive(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (*model.Order, error)
	Finalize(ctx context.Context, id string, status model.OrderStatus, paymentSig, mintSig *string) error
	SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
}
