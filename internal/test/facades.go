package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
)

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	CreateCollectionFn func(context.Context, int64, string, string, int32) (*model.Collection, error)
	CollectionsFn      func(context.Context, int64) ([]model.Collection, error)
	CollectionFn       func(context.Context, int64) (*model.Collection, error)
	SetAddressesFn     func(context.Context, int64, int64, string, string) error
	CreateItemFn       func(context.Context, int64, *model.Collectible) (*model.Collectible, error)
	ItemsFn            func(context.Context, int64) ([]model.Collectible, error)
	ItemFn             func(context.Context, int64) (*model.Collectible, error)
}

// CreateCollection delegates to provided function or echoes the request.
func (s CatalogFacadeStub) CreateCollection(ctx context.Context, artistID int64, name, symbol string, royaltyBps int32) (*model.Collection, error) {
	if s.CreateCollectionFn != nil {
		return s.CreateCollectionFn(ctx, artistID, name, symbol, royaltyBps)
	}
	return &model.Collection{ID: 1, ArtistID: artistID, Name: name, Symbol: symbol, RoyaltyBps: royaltyBps}, nil
}

// Collections returns predefined collections for the artist.
func (s CatalogFacadeStub) Collections(ctx context.Context, artistID int64) ([]model.Collection, error) {
	if s.CollectionsFn != nil {
		return s.CollectionsFn(ctx, artistID)
	}
	return []model.Collection{{ID: 1, ArtistID: artistID, Name: "Street Art"}}, nil
}

// Collection returns the predefined collection by identifier.
func (s CatalogFacadeStub) Collection(ctx context.Context, id int64) (*model.Collection, error) {
	if s.CollectionFn != nil {
		return s.CollectionFn(ctx, id)
	}
	return &model.Collection{ID: id, ArtistID: 1, Name: "Street Art"}, nil
}

// SetCollectionAddresses executes the configured handler.
func (s CatalogFacadeStub) SetCollectionAddresses(ctx context.Context, artistID, collectionID int64, mintAddress, treeAddress string) error {
	if s.SetAddressesFn != nil {
		return s.SetAddressesFn(ctx, artistID, collectionID, mintAddress, treeAddress)
	}
	return nil
}

// CreateCollectible delegates to provided function or echoes the request.
func (s CatalogFacadeStub) CreateCollectible(ctx context.Context, artistID int64, collectible *model.Collectible) (*model.Collectible, error) {
	if s.CreateItemFn != nil {
		return s.CreateItemFn(ctx, artistID, collectible)
	}
	created := *collectible
	created.ID = 1
	return &created, nil
}

// Collectibles returns predefined items for the collection.
func (s CatalogFacadeStub) Collectibles(ctx context.Context, collectionID int64) ([]model.Collectible, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, collectionID)
	}
	return []model.Collectible{{ID: 1, CollectionID: collectionID, Name: "Mural #1"}}, nil
}

// Collectible returns the predefined item by identifier.
func (s CatalogFacadeStub) Collectible(ctx context.Context, id int64) (*model.Collectible, error) {
	if s.ItemFn != nil {
		return s.ItemFn(ctx, id)
	}
	return &model.Collectible{ID: id, CollectionID: 1, Name: "Mural #1"}, nil
}

// ExpireCall stores information about ExpireOrder invocations.
type ExpireCall struct {
	OrderID string
}

// ReaperFacadeStub mimics worker interactions with the mint facade.
type ReaperFacadeStub struct {
	Batches        [][]model.Order
	StaleFn        func(context.Context, time.Duration, int) ([]model.Order, error)
	ExpireFn       func(context.Context, string) error
	Expired        []ExpireCall
	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *ReaperFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *ReaperFacadeStub) Unlock() { s.mu.Unlock() }

// StalePendingOrders returns batches from configured queue.
func (s *ReaperFacadeStub) StalePendingOrders(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, olderThan, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ExpireOrder records expiration requests.
func (s *ReaperFacadeStub) ExpireOrder(ctx context.Context, orderID string) error {
	if s.ExpireFn != nil {
		return s.ExpireFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Expired = append(s.Expired, ExpireCall{OrderID: orderID})
	return nil
}
