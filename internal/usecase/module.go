package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/minter"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/config"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCatalogUseCase,
	NewOrderUseCase,
	newPaymentVerifier,
	newTxSubmitter,
	newMintProcessor,
)

func newPaymentVerifier(cfg *config.Config) *PaymentVerifier {
	return NewPaymentVerifier(cfg.PaymentTolerance)
}

func newTxSubmitter(cfg *config.Config, chainClient chain.Client, m *metrics.Metrics, logger *slog.Logger) *TxSubmitter {
	return NewTxSubmitter(chainClient, SubmitOptions{
		SendRetries:  cfg.SendMaxRetries,
		PollInterval: cfg.ConfirmPollInterval,
		MaxPolls:     cfg.ConfirmMaxPolls,
	}, m, logger)
}

type processorParams struct {
	fx.In

	Config       *config.Config
	Orders       repository.OrderRepository
	Collections  repository.CollectionRepository
	Collectibles repository.CollectibleRepository
	Verifier     *PaymentVerifier
	Submitter    *TxSubmitter
	Minter       minter.Client
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

func newMintProcessor(p processorParams) *MintProcessor {
	return NewMintProcessor(
		p.Orders, p.Collections, p.Collectibles,
		p.Verifier, p.Submitter, p.Minter,
		p.Config.Cluster, p.Metrics, p.Logger,
	)
}
