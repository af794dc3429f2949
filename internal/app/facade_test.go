package app

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
	testhelpers "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/test"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/usecase"
)

const testWallet = "11111111111111111111111111111111"

type storageStub struct {
	err error
}

func (s storageStub) HealthCheck(context.Context) error { return s.err }

type facadeFixture struct {
	facade       *MintFacade
	artists      *testhelpers.ArtistRepositoryStub
	collections  *testhelpers.CollectionRepositoryStub
	collectibles *testhelpers.CollectibleRepositoryStub
	orders       *testhelpers.OrderRepositoryStub
	chain        *testhelpers.ChainClientStub
	storage      *storageStub
}

func newFacadeFixture() *facadeFixture {
	artistRepo := testhelpers.NewArtistRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(artistRepo, testhelpers.HasherStub{}, strategy)

	collections := &testhelpers.CollectionRepositoryStub{}
	collectibles := &testhelpers.CollectibleRepositoryStub{}
	catalogUC := usecase.NewCatalogUseCase(collections, collectibles)

	m := metrics.New()
	orders := testhelpers.NewOrderRepositoryStub()
	orderUC := usecase.NewOrderUseCase(orders, collections, collectibles, &testhelpers.RatesClientStub{}, m)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	chainStub := &testhelpers.ChainClientStub{}
	submitter := usecase.NewTxSubmitter(chainStub, usecase.SubmitOptions{SendRetries: 1, PollInterval: time.Millisecond, MaxPolls: 3}, m, logger)
	processor := usecase.NewMintProcessor(orders, collections, collectibles, usecase.NewPaymentVerifier(0.01), submitter, &testhelpers.MinterClientStub{}, "devnet", m, logger)

	storage := &storageStub{}
	facade := NewMintFacade(authUC, catalogUC, orderUC, processor, storage, chainStub)
	return &facadeFixture{
		facade:       facade,
		artists:      artistRepo,
		collections:  collections,
		collectibles: collectibles,
		orders:       orders,
		chain:        chainStub,
		storage:      storage,
	}
}

func (f *facadeFixture) seedCatalog(t *testing.T) *model.Collectible {
	t.Helper()
	ctx := context.Background()
	collection, err := f.facade.CreateCollection(ctx, 1, "Street Art", "STRT", 500)
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	err = f.facade.SetCollectionAddresses(ctx, 1, collection.ID, "So11111111111111111111111111111111111111112", testWallet)
	if err != nil {
		t.Fatalf("set addresses: %v", err)
	}
	collectible, err := f.facade.CreateCollectible(ctx, 1, &model.Collectible{
		CollectionID: collection.ID,
		Name:         "Sticker",
		MetadataURI:  "https://arweave.net/abc",
		SupplyType:   model.SupplyTypeUnlimited,
	})
	if err != nil {
		t.Fatalf("create collectible: %v", err)
	}
	return collectible
}

func TestMintFacadeAuth(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()

	token, err := f.facade.Register(ctx, "banksy", "secret")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected token from register")
	}

	stored, err := f.artists.GetByLogin(ctx, "banksy")
	if err != nil {
		t.Fatalf("artist not stored: %v", err)
	}
	if stored.Login != "banksy" {
		t.Fatalf("unexpected stored login %q", stored.Login)
	}

	if _, err := f.facade.Authenticate(ctx, "banksy", "secret"); err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}

	id, err := f.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("expected id 99, got %d", id)
	}
}

func TestMintFacadeCatalog(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	collectible := f.seedCatalog(t)

	collections, err := f.facade.Collections(ctx, 1)
	if err != nil || len(collections) != 1 {
		t.Fatalf("expected one collection, got %v err=%v", collections, err)
	}
	if !collections[0].ReadyForMint() {
		t.Fatal("expected collection ready for mint after addresses set")
	}

	items, err := f.facade.Collectibles(ctx, collectible.CollectionID)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one collectible, got %v err=%v", items, err)
	}

	fetched, err := f.facade.Collectible(ctx, collectible.ID)
	if err != nil || fetched.Name != "Sticker" {
		t.Fatalf("expected collectible by id, got %v err=%v", fetched, err)
	}
	if _, err := f.facade.Collection(ctx, collectible.CollectionID); err != nil {
		t.Fatalf("expected collection by id: %v", err)
	}
}

func TestMintFacadeMintFlow(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	collectible := f.seedCatalog(t)

	eligibility, err := f.facade.CheckEligibility(ctx, collectible.ID, testWallet, nil)
	if err != nil {
		t.Fatalf("eligibility returned error: %v", err)
	}
	if !eligibility.Eligible {
		t.Fatalf("expected eligible, got reason %q", eligibility.Reason)
	}

	initiated, err := f.facade.InitiateMint(ctx, collectible.ID, testWallet, nil)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if initiated.Order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", initiated.Order.Status)
	}

	result, err := f.facade.ProcessMint(ctx, initiated.Order.ID, nil, 0)
	if err != nil {
		t.Fatalf("process returned error: %v", err)
	}
	if result.MintSig != "mint-signature" {
		t.Fatalf("unexpected mint signature %q", result.MintSig)
	}

	order, err := f.orders.GetByID(ctx, initiated.Order.ID)
	if err != nil {
		t.Fatalf("order lookup failed: %v", err)
	}
	if order.Status != model.OrderStatusCompleted {
		t.Fatalf("expected completed order, got %s", order.Status)
	}
}

func TestMintFacadeExpireOrder(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()
	collectible := f.seedCatalog(t)

	initiated, err := f.facade.InitiateMint(ctx, collectible.ID, testWallet, nil)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}

	stale, err := f.facade.StalePendingOrders(ctx, 0, 10)
	if err != nil {
		t.Fatalf("stale lookup failed: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != initiated.Order.ID {
		t.Fatalf("expected the pending order to be stale, got %v", stale)
	}

	if err := f.facade.ExpireOrder(ctx, initiated.Order.ID); err != nil {
		t.Fatalf("expire returned error: %v", err)
	}
	order, err := f.orders.GetByID(ctx, initiated.Order.ID)
	if err != nil {
		t.Fatalf("order lookup failed: %v", err)
	}
	if order.Status != model.OrderStatusFailed {
		t.Fatalf("expected failed order, got %s", order.Status)
	}
}

func TestMintFacadeVerifyNfcTap(t *testing.T) {
	f := newFacadeFixture()
	ctx := context.Background()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	pubHex := hex.EncodeToString(elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y))

	collectible := f.seedCatalog(t)
	chipped, err := f.facade.CreateCollectible(ctx, 1, &model.Collectible{
		CollectionID: collectible.CollectionID,
		Name:         "Chipped Mural",
		MetadataURI:  "https://arweave.net/def",
		SupplyType:   model.SupplyTypeUnlimited,
		NFCPublicKey: &pubHex,
	})
	if err != nil {
		t.Fatalf("create collectible: %v", err)
	}

	nonce := "challenge-nonce"
	digest := sha256.Sum256([]byte(nonce))
	r, s, err := ecdsa.Sign(rand.Reader, key, digest[:])
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	raw := make([]byte, 64)
	r.FillBytes(raw[:32])
	s.FillBytes(raw[32:])
	signature := base64.StdEncoding.EncodeToString(raw)

	valid, err := f.facade.VerifyNfcTap(ctx, chipped.ID, nonce, signature)
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if !valid {
		t.Fatal("expected valid tap signature")
	}

	valid, err = f.facade.VerifyNfcTap(ctx, chipped.ID, "other-nonce", signature)
	if err != nil {
		t.Fatalf("verify returned error: %v", err)
	}
	if valid {
		t.Fatal("expected invalid signature for altered nonce")
	}

	if _, err := f.facade.VerifyNfcTap(ctx, collectible.ID, nonce, signature); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for chipless collectible, got %v", err)
	}
}

func TestMintFacadeHealthCheck(t *testing.T) {
	f := newFacadeFixture()
	if err := f.facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}

	f.storage.err = errors.New("database unavailable")
	if err := f.facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected storage failure to propagate")
	}

	f.storage.err = nil
	f.chain.PingErr = errors.New("rpc unavailable")
	if err := f.facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected rpc failure to propagate")
	}
}
