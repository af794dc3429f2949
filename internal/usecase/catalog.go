package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
)

// CatalogUseCase manages collections and their collectibles.
type CatalogUseCase struct {
	collections  repository.CollectionRepository
	collectibles repository.CollectibleRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(collections repository.CollectionRepository, collectibles repository.CollectibleRepository) *CatalogUseCase {
	return &CatalogUseCase{collections: collections, collectibles: collectibles}
}

// CreateCollection registers a new collection owned by the artist.
func (u *CatalogUseCase) CreateCollection(ctx context.Context, artistID int64, name, symbol string, royaltyBps int32) (*model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.ErrInvalidInput
	}
	if royaltyBps < 0 || royaltyBps > 10_000 {
		royaltyBps = 0
	}

	return u.collections.Create(ctx, &model.Collection{
		ArtistID:   artistID,
		Name:       name,
		Symbol:     strings.TrimSpace(symbol),
		RoyaltyBps: royaltyBps,
	})
}

// ListCollections returns the artist's collections.
func (u *CatalogUseCase) ListCollections(ctx context.Context, artistID int64) ([]model.Collection, error) {
	return u.collections.ListByArtist(ctx, artistID)
}

// GetCollection fetches a collection by identifier.
func (u *CatalogUseCase) GetCollection(ctx context.Context, id int64) (*model.Collection, error) {
	return u.collections.GetByID(ctx, id)
}

// SetCollectionAddresses stores the on-chain collection mint and tree
// addresses. Only the owning artist may do this.
func (u *CatalogUseCase) SetCollectionAddresses(ctx context.Context, artistID, collectionID int64, mintAddress, treeAddress string) error {
	if !ValidateWalletAddress(mintAddress) || !ValidateWalletAddress(treeAddress) {
		return domainErrors.ErrInvalidWallet
	}

	collection, err := u.collections.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.ArtistID != artistID {
		return domainErrors.ErrNotOwner
	}

	return u.collections.SetAddresses(ctx, collectionID, mintAddress, treeAddress)
}

// CreateCollectible registers a mintable item inside the artist's collection.
func (u *CatalogUseCase) CreateCollectible(ctx context.Context, artistID int64, collectible *model.Collectible) (*model.Collectible, error) {
	collection, err := u.collections.GetByID(ctx, collectible.CollectionID)
	if err != nil {
		return nil, err
	}
	if collection.ArtistID != artistID {
		return nil, domainErrors.ErrNotOwner
	}

	switch collectible.SupplyType {
	case model.SupplyTypeUnlimited, model.SupplyTypeSingle:
		collectible.MaxSupply = nil
	case model.SupplyTypeLimited:
		if collectible.MaxSupply == nil || *collectible.MaxSupply < 1 {
			return nil, domainErrors.ErrInvalidInput
		}
	default:
		collectible.SupplyType = model.SupplyTypeUnlimited
		collectible.MaxSupply = nil
	}

	if collectible.PriceUSD < 0 {
		collectible.PriceUSD = 0
	}

	return u.collectibles.Create(ctx, collectible)
}

// GetCollectible fetches a collectible by identifier.
func (u *CatalogUseCase) GetCollectible(ctx context.Context, id int64) (*model.Collectible, error) {
	return u.collectibles.GetByID(ctx, id)
}

// ListCollectibles returns items of one collection.
func (u *CatalogUseCase) ListCollectibles(ctx context.Context, collectionID int64) ([]model.Collectible, error) {
	return u.collectibles.ListByCollection(ctx, collectionID)
}
