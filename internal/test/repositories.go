package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
)

// ArtistRepositoryStub stores artists in-memory for tests.
type ArtistRepositoryStub struct {
	Artists map[string]*model.Artist
	ByID    map[int64]*model.Artist
	Next    int64
	Err     error
}

// NewArtistRepositoryStub constructs stub repository with initialized maps.
func NewArtistRepositoryStub() *ArtistRepositoryStub {
	return &ArtistRepositoryStub{
		Artists: make(map[string]*model.Artist),
		ByID:    make(map[int64]*model.Artist),
		Next:    1,
	}
}

// Create registers artist unless already exists or stub has explicit error.
func (s *ArtistRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.Artist, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Artists[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	artist := &model.Artist{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Artists[login] = artist
	s.ByID[artist.ID] = artist
	return artist, nil
}

// GetByLogin fetches artist by login or returns not found.
func (s *ArtistRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Artist, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if artist, ok := s.Artists[login]; ok {
		return artist, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches artist by identifier or returns not found.
func (s *ArtistRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Artist, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if artist, ok := s.ByID[id]; ok {
		return artist, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CollectionRepositoryStub allows tests to customize collection behaviour.
type CollectionRepositoryStub struct {
	CreateFn       func(context.Context, *model.Collection) (*model.Collection, error)
	GetByIDFn      func(context.Context, int64) (*model.Collection, error)
	ListByArtistFn func(context.Context, int64) ([]model.Collection, error)
	SetAddressesFn func(context.Context, int64, string, string) error

	Collections []model.Collection
	Next        int64
}

func (s *CollectionRepositoryStub) Create(ctx context.Context, collection *model.Collection) (*model.Collection, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, collection)
	}
	s.Next++
	out := *collection
	out.ID = s.Next
	out.CreatedAt = time.Now()
	s.Collections = append(s.Collections, out)
	return &out, nil
}

func (s *CollectionRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, c := range s.Collections {
		if c.ID == id {
			collection := c
			return &collection, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CollectionRepositoryStub) ListByArtist(ctx context.Context, artistID int64) ([]model.Collection, error) {
	if s.ListByArtistFn != nil {
		return s.ListByArtistFn(ctx, artistID)
	}
	var result []model.Collection
	for _, c := range s.Collections {
		if c.ArtistID == artistID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *CollectionRepositoryStub) SetAddresses(ctx context.Context, id int64, mintAddress, treeAddress string) error {
	if s.SetAddressesFn != nil {
		return s.SetAddressesFn(ctx, id, mintAddress, treeAddress)
	}
	for i := range s.Collections {
		if s.Collections[i].ID == id {
			s.Collections[i].MintAddress = &mintAddress
			s.Collections[i].TreeAddress = &treeAddress
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// CollectibleRepositoryStub allows tests to customize collectible behaviour.
type CollectibleRepositoryStub struct {
	CreateFn           func(context.Context, *model.Collectible) (*model.Collectible, error)
	GetByIDFn          func(context.Context, int64) (*model.Collectible, error)
	ListByCollectionFn func(context.Context, int64) ([]model.Collectible, error)

	Collectibles []model.Collectible
	Next         int64
}

func (s *CollectibleRepositoryStub) Create(ctx context.Context, collectible *model.Collectible) (*model.Collectible, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, collectible)
	}
	s.Next++
	out := *collectible
	out.ID = s.Next
	out.CreatedAt = time.Now()
	s.Collectibles = append(s.Collectibles, out)
	return &out, nil
}

func (s *CollectibleRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Collectible, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, c := range s.Collectibles {
		if c.ID == id {
			collectible := c
			return &collectible, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *CollectibleRepositoryStub) ListByCollection(ctx context.Context, collectionID int64) ([]model.Collectible, error) {
	if s.ListByCollectionFn != nil {
		return s.ListByCollectionFn(ctx, collectionID)
	}
	var result []model.Collectible
	for _, c := range s.Collectibles {
		if c.CollectionID == collectionID {
			result = append(result, c)
		}
	}
	return result, nil
}

// OrderRepositoryStub allows tests to customize order behaviour. Without
// overrides it keeps orders in-memory and mimics the uniqueness rules of
// the real store.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn            func(context.Context, string) (*model.Order, error)
	FindActiveFn         func(context.Context, int64, string, *string) (*model.Order, error)
	FinalizeFn           func(context.Context, string, model.OrderStatus, *string, *string) error
	SelectStalePendingFn func(context.Context, time.Duration, int) ([]model.Order, error)

	mu        sync.Mutex
	Orders    map[string]*model.Order
	Finalized []FinalizeCall
}

// FinalizeCall records one Finalize invocation.
type FinalizeCall struct {
	OrderID    string
	Status     model.OrderStatus
	PaymentSig *string
	MintSig    *string
}

// NewOrderRepositoryStub constructs stub repository with initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.CollectibleID == order.CollectibleID && o.Status != model.OrderStatusFailed && o.WalletAddress == order.WalletAddress {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	out := *order
	out.Status = model.OrderStatusPending
	out.CreatedAt = time.Now()
	out.UpdatedAt = out.CreatedAt
	s.Orders[out.ID] = &out
	result := out
	return &result, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		order := *o
		return &order, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) FindActive(ctx context.Context, collectibleID int64, wallet string, deviceID *string) (*model.Order, error) {
	if s.FindActiveFn != nil {
		return s.FindActiveFn(ctx, collectibleID, wallet, deviceID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.CollectibleID != collectibleID || o.Status == model.OrderStatusFailed {
			continue
		}
		if o.WalletAddress == wallet {
			order := *o
			return &order, nil
		}
		if deviceID != nil && o.DeviceID != nil && *o.DeviceID == *deviceID {
			order := *o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) Finalize(ctx context.Context, id string, status model.OrderStatus, paymentSig, mintSig *string) error {
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, id, status, paymentSig, mintSig)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Finalized = append(s.Finalized, FinalizeCall{OrderID: id, Status: status, PaymentSig: paymentSig, MintSig: mintSig})
	o, ok := s.Orders[id]
	if !ok || o.Status != model.OrderStatusPending {
		return domainErrors.ErrOrderNotPending
	}
	o.Status = status
	o.PaymentSig = paymentSig
	o.MintSig = mintSig
	o.UpdatedAt = time.Now()
	return nil
}

func (s *OrderRepositoryStub) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.SelectStalePendingFn != nil {
		return s.SelectStalePendingFn(ctx, olderThan, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var result []model.Order
	for _, o := range s.Orders {
		if o.Status == model.OrderStatusPending && o.CreatedAt.Before(cutoff) {
			result = append(result, *o)
			if len(result) == limit {
				break
			}
		}
	}
	return result, nil
}
