package app

import (
	"context"
	"time"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/nfc"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/usecase"
)

// StorageHealth reports persistence availability.
type StorageHealth interface {
	HealthCheck(ctx context.Context) error
}

// MintFacade aggregates the use cases behind one application surface
// consumed by the HTTP layer and the reaper.
type MintFacade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderUseCase
	processor *usecase.MintProcessor
	storage   StorageHealth
	chain     chain.Client
}

// NewMintFacade constructs MintFacade.
func NewMintFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	processor *usecase.MintProcessor,
	storage StorageHealth,
	chainClient chain.Client,
) *MintFacade {
	return &MintFacade{
		auth:      auth,
		catalog:   catalog,
		orders:    orders,
		processor: processor,
		storage:   storage,
		chain:     chainClient,
	}
}

func (f *MintFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *MintFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *MintFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MintFacade) CreateCollection(ctx context.Context, artistID int64, name, symbol string, royaltyBps int32) (*model.Collection, error) {
	return f.catalog.CreateCollection(ctx, artistID, name, symbol, royaltyBps)
}

func (f *MintFacade) Collections(ctx context.Context, artistID int64) ([]model.Collection, error) {
	return f.catalog.ListCollections(ctx, artistID)
}

func (f *MintFacade) Collection(ctx context.Context, id int64) (*model.Collection, error) {
	return f.catalog.GetCollection(ctx, id)
}

func (f *MintFacade) SetCollectionAddresses(ctx context.Context, artistID, collectionID int64, mintAddress, treeAddress string) error {
	return f.catalog.SetCollectionAddresses(ctx, artistID, collectionID, mintAddress, treeAddress)
}

func (f *MintFacade) CreateCollectible(ctx context.Context, artistID int64, collectible *model.Collectible) (*model.Collectible, error) {
	return f.catalog.CreateCollectible(ctx, artistID, collectible)
}

func (f *MintFacade) Collectibles(ctx context.Context, collectionID int64) ([]model.Collectible, error) {
	return f.catalog.ListCollectibles(ctx, collectionID)
}

func (f *MintFacade) Collectible(ctx context.Context, id int64) (*model.Collectible, error) {
	return f.catalog.GetCollectible(ctx, id)
}

func (f *MintFacade) CheckEligibility(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (model.Eligibility, error) {
	return f.orders.CheckEligibility(ctx, collectibleID, wallet, deviceID)
}

func (f *MintFacade) InitiateMint(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (*usecase.InitiateResult, error) {
	return f.orders.Initiate(ctx, collectibleID, wallet, deviceID)
}

func (f *MintFacade) ProcessMint(ctx context.Context, orderID string, signedTxBase64 *string, priceSol float64) (*usecase.ProcessResult, error) {
	return f.processor.Process(ctx, orderID, signedTxBase64, priceSol)
}

// VerifyNfcTap checks a tap signature against the collectible's chip key.
func (f *MintFacade) VerifyNfcTap(ctx context.Context, collectibleID int64, nonce, signatureB64 string) (bool, error) {
	collectible, err := f.catalog.GetCollectible(ctx, collectibleID)
	if err != nil {
		return false, err
	}
	if collectible.NFCPublicKey == nil || *collectible.NFCPublicKey == "" {
		return false, domainErrors.ErrNotFound
	}
	return nfc.VerifyTap(*collectible.NFCPublicKey, nonce, signatureB64)
}

func (f *MintFacade) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return f.orders.StalePending(ctx, olderThan, limit)
}

func (f *MintFacade) ExpireOrder(ctx context.Context, orderID string) error {
	return f.orders.Expire(ctx, orderID)
}

// HealthCheck verifies the database and the RPC node are reachable.
func (f *MintFacade) HealthCheck(ctx context.Context) error {
	if err := f.storage.HealthCheck(ctx); err != nil {
		return err
	}
	return f.chain.Ping(ctx)
}
