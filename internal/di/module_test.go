package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/minter"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/rates"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/app"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/storage/postgres"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:          ":0",
		DatabaseURI:         "postgres://stub",
		RPCNodeAddress:      "http://localhost",
		MintAPIAddress:      "http://localhost",
		RatesAddress:        "http://localhost",
		Cluster:             "devnet",
		AuthSecret:          "secret",
		PaymentTolerance:    0.01,
		SendMaxRetries:      1,
		ConfirmPollInterval: time.Millisecond,
		ConfirmMaxPolls:     1,
		PendingOrderTTL:     time.Minute,
		ReaperInterval:      time.Millisecond,
		ReaperBatch:         1,
		WorkerPoolSize:      1,
		ShutdownTimeout:     time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	artistRepo := test.NewArtistRepositoryStub()
	collectionRepo := &test.CollectionRepositoryStub{}
	collectibleRepo := &test.CollectibleRepositoryStub{}
	orderRepo := test.NewOrderRepositoryStub()

	var facade *app.MintFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.ArtistRepository(artistRepo)),
			fx.Replace(repository.CollectionRepository(collectionRepo)),
			fx.Replace(repository.CollectibleRepository(collectibleRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(chain.Client(&test.ChainClientStub{})),
			fx.Replace(minter.Client(&test.MinterClientStub{})),
			fx.Replace(rates.Client(&test.RatesClientStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected mint facade instance")
	}
}
