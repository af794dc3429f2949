package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/rates"
	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
)

// Eligibility gate denial reasons.
const (
	ReasonInvalidWallet  = "invalid wallet address"
	ReasonWindowClosed   = "mint window closed"
	ReasonNotReady       = "collection not ready for minting"
	ReasonAlreadyMinted  = "already minted"
	ReasonMintInProgress = "mint in progress"
)

// InitiateResult is the outcome of a successful mint initiation.
type InitiateResult struct {
	Order    *model.Order
	PriceSol float64
}

// OrderUseCase runs the eligibility gate and creates mint orders.
type OrderUseCase struct {
	orders       repository.OrderRepository
	collections  repository.CollectionRepository
	collectibles repository.CollectibleRepository
	rates        rates.Client
	metrics      *metrics.Metrics

	now func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	collections repository.CollectionRepository,
	collectibles repository.CollectibleRepository,
	ratesClient rates.Client,
	m *metrics.Metrics,
) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		collections:  collections,
		collectibles: collectibles,
		rates:        ratesClient,
		metrics:      m,
		now:          time.Now,
	}
}

// CheckEligibility runs every gate check that does not require writing.
// A non-eligible outcome carries the human-readable denial reason.
func (u *OrderUseCase) CheckEligibility(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (model.Eligibility, error) {
	if !ValidateWalletAddress(wallet) {
		return model.Eligibility{Reason: ReasonInvalidWallet}, nil
	}

	collectible, err := u.collectibles.GetByID(ctx, collectibleID)
	if err != nil {
		return model.Eligibility{}, err
	}

	collection, err := u.collections.GetByID(ctx, collectible.CollectionID)
	if err != nil {
		return model.Eligibility{}, err
	}
	if !collection.ReadyForMint() {
		return model.Eligibility{Reason: ReasonNotReady}, nil
	}

	if !collectible.MintableAt(u.now()) {
		return model.Eligibility{Reason: ReasonWindowClosed}, nil
	}

	existing, err := u.orders.FindActive(ctx, collectibleID, wallet, deviceID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return model.Eligibility{}, err
	}
	if existing != nil {
		if existing.Status == model.OrderStatusCompleted {
			return model.Eligibility{Reason: ReasonAlreadyMinted}, nil
		}
		return model.Eligibility{Reason: ReasonMintInProgress}, nil
	}

	return model.Eligibility{Eligible: true}, nil
}

// Initiate runs the eligibility gate and, when it passes, quotes the
// price in SOL and records a pending order snapshotting price and
// supply. Uniqueness against concurrent initiations is enforced by the
// order store, not rechecked here.
func (u *OrderUseCase) Initiate(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (*InitiateResult, error) {
	if !ValidateWalletAddress(wallet) {
		return nil, domainErrors.ErrInvalidWallet
	}

	collectible, err := u.collectibles.GetByID(ctx, collectibleID)
	if err != nil {
		return nil, err
	}

	collection, err := u.collections.GetByID(ctx, collectible.CollectionID)
	if err != nil {
		return nil, err
	}
	if !collection.ReadyForMint() {
		return nil, domainErrors.ErrCollectionNotReady
	}

	if !collectible.MintableAt(u.now()) {
		return nil, domainErrors.ErrMintWindowClosed
	}

	existing, err := u.orders.FindActive(ctx, collectibleID, wallet, deviceID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == model.OrderStatusCompleted {
			return nil, domainErrors.ErrAlreadyMinted
		}
		return nil, domainErrors.ErrMintInProgress
	}

	// Quote before inserting: a rates outage must not strand a pending
	// order that blocks the wallet until the reaper catches it.
	var priceSol float64
	if collectible.PriceUSD > 0 {
		solUSD, err := u.rates.SolUSD(ctx)
		if err != nil {
			return nil, err
		}
		priceSol, err = rates.USDToSol(collectible.PriceUSD, solUSD)
		if err != nil {
			return nil, err
		}
	}

	order := &model.Order{
		ID:            uuid.NewString(),
		WalletAddress: wallet,
		CollectibleID: collectible.ID,
		CollectionID:  collection.ID,
		DeviceID:      deviceID,
		PriceUSD:      collectible.PriceUSD,
		SupplyType:    collectible.SupplyType,
		MaxSupply:     collectible.EffectiveMaxSupply(),
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		// A concurrent initiation won the unique index race.
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrMintInProgress
		}
		return nil, err
	}

	u.metrics.OrderInitiated()

	return &InitiateResult{Order: created, PriceSol: priceSol}, nil
}

// GetOrder fetches an order by identifier.
func (u *OrderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// StalePending returns pending orders older than the given age.
func (u *OrderUseCase) StalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, olderThan, limit)
}

// Expire fails an abandoned pending order. Losing the race to a
// concurrent finalization is not an error.
func (u *OrderUseCase) Expire(ctx context.Context, orderID string) error {
	err := u.orders.Finalize(ctx, orderID, model.OrderStatusFailed, nil, nil)
	if err != nil && !errors.Is(err, domainErrors.ErrOrderNotPending) {
		return err
	}
	if err == nil {
		u.metrics.OrderExpired()
	}
	return nil
}
