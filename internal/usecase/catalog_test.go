package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	testhelpers "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/test"
)

const (
	testMintAddress = "So11111111111111111111111111111111111111112"
	testTreeAddress = "11111111111111111111111111111111"
)

func TestCatalogCreateCollection(t *testing.T) {
	collections := &testhelpers.CollectionRepositoryStub{}
	uc := NewCatalogUseCase(collections, &testhelpers.CollectibleRepositoryStub{})

	created, err := uc.CreateCollection(context.Background(), 1, "  Street Walls ", "WALL", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Street Walls" || created.RoyaltyBps != 500 {
		t.Fatalf("unexpected collection: %+v", created)
	}

	if _, err := uc.CreateCollection(context.Background(), 1, "  ", "", 0); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank name, got %v", err)
	}

	clamped, err := uc.CreateCollection(context.Background(), 1, "Over", "", 20_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped.RoyaltyBps != 0 {
		t.Fatalf("expected out-of-range royalty to be zeroed, got %d", clamped.RoyaltyBps)
	}
}

func TestCatalogSetCollectionAddresses(t *testing.T) {
	collections := &testhelpers.CollectionRepositoryStub{
		Collections: []model.Collection{{ID: 1, ArtistID: 7, Name: "Walls"}},
	}
	uc := NewCatalogUseCase(collections, &testhelpers.CollectibleRepositoryStub{})

	if err := uc.SetCollectionAddresses(context.Background(), 7, 1, "bad", testTreeAddress); !errors.Is(err, domainErrors.ErrInvalidWallet) {
		t.Fatalf("expected invalid wallet, got %v", err)
	}

	if err := uc.SetCollectionAddresses(context.Background(), 99, 1, testMintAddress, testTreeAddress); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}

	if err := uc.SetCollectionAddresses(context.Background(), 7, 1, testMintAddress, testTreeAddress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := collections.GetByID(context.Background(), 1)
	if got.MintAddress == nil || *got.MintAddress != testMintAddress {
		t.Fatalf("mint address not stored: %+v", got)
	}
}

func TestCatalogCreateCollectible(t *testing.T) {
	collections := &testhelpers.CollectionRepositoryStub{
		Collections: []model.Collection{{ID: 1, ArtistID: 7, Name: "Walls"}},
	}
	collectibles := &testhelpers.CollectibleRepositoryStub{}
	uc := NewCatalogUseCase(collections, collectibles)

	ctx := context.Background()

	if _, err := uc.CreateCollectible(ctx, 2, &model.Collectible{CollectionID: 1}); !errors.Is(err, domainErrors.ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if _, err := uc.CreateCollectible(ctx, 7, &model.Collectible{CollectionID: 9}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := uc.CreateCollectible(ctx, 7, &model.Collectible{
		CollectionID: 1,
		SupplyType:   model.SupplyTypeLimited,
	}); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for limited supply without cap, got %v", err)
	}

	maxSupply := int32(10)
	created, err := uc.CreateCollectible(ctx, 7, &model.Collectible{
		CollectionID: 1,
		Name:         "Mural #1",
		SupplyType:   model.SupplyTypeLimited,
		MaxSupply:    &maxSupply,
		PriceUSD:     -3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PriceUSD != 0 {
		t.Fatalf("negative price should be zeroed, got %f", created.PriceUSD)
	}

	single, err := uc.CreateCollectible(ctx, 7, &model.Collectible{
		CollectionID: 1,
		Name:         "One-off",
		SupplyType:   model.SupplyTypeSingle,
		MaxSupply:    &maxSupply,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if single.MaxSupply != nil {
		t.Fatalf("single supply must not carry explicit cap")
	}

	unknown, err := uc.CreateCollectible(ctx, 7, &model.Collectible{
		CollectionID: 1,
		Name:         "Odd",
		SupplyType:   model.SupplyType("bogus"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unknown.SupplyType != model.SupplyTypeUnlimited {
		t.Fatalf("unknown supply type should fall back to unlimited, got %s", unknown.SupplyType)
	}
}

func TestCatalogLists(t *testing.T) {
	collections := &testhelpers.CollectionRepositoryStub{
		Collections: []model.Collection{
			{ID: 1, ArtistID: 7},
			{ID: 2, ArtistID: 8},
		},
	}
	collectibles := &testhelpers.CollectibleRepositoryStub{
		Collectibles: []model.Collectible{
			{ID: 1, CollectionID: 1},
			{ID: 2, CollectionID: 1},
			{ID: 3, CollectionID: 2},
		},
	}
	uc := NewCatalogUseCase(collections, collectibles)

	mine, err := uc.ListCollections(context.Background(), 7)
	if err != nil || len(mine) != 1 {
		t.Fatalf("unexpected result: %v err=%v", mine, err)
	}

	items, err := uc.ListCollectibles(context.Background(), 1)
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected result: %v err=%v", items, err)
	}
}
