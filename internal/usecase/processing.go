package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/minter"
	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/repository"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/txwire"
)

// ProcessResult carries the chain signatures of a completed order.
// PaymentSig is nil for free orders.
type ProcessResult struct {
	PaymentSig  *string
	MintSig     string
	ExplorerURL string
}

// MintProcessor drives a pending order through payment verification,
// transaction submission, mint invocation and finalization. Every exit
// path leaves the order in a terminal state.
type MintProcessor struct {
	orders       repository.OrderRepository
	collections  repository.CollectionRepository
	collectibles repository.CollectibleRepository
	verifier     *PaymentVerifier
	submitter    *TxSubmitter
	minter       minter.Client
	cluster      string
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewMintProcessor constructs MintProcessor.
func NewMintProcessor(
	orders repository.OrderRepository,
	collections repository.CollectionRepository,
	collectibles repository.CollectibleRepository,
	verifier *PaymentVerifier,
	submitter *TxSubmitter,
	minterClient minter.Client,
	cluster string,
	m *metrics.Metrics,
	logger *slog.Logger,
) *MintProcessor {
	return &MintProcessor{
		orders:       orders,
		collections:  collections,
		collectibles: collectibles,
		verifier:     verifier,
		submitter:    submitter,
		minter:       minterClient,
		cluster:      cluster,
		metrics:      m,
		logger:       logger,
	}
}

// Process completes the mint order. For paid orders the signed payment
// transaction is verified, submitted and confirmed before the mint is
// invoked; free orders skip payment entirely. The order reaches exactly
// one terminal state: completed only after a confirmed mint signature,
// failed on any error past the pending check.
func (p *MintProcessor) Process(ctx context.Context, orderID string, signedTxBase64 *string, priceSol float64) (*ProcessResult, error) {
	order, err := p.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending {
		return nil, domainErrors.ErrOrderNotPending
	}

	var paymentSig *string
	if !order.Free() {
		if signedTxBase64 == nil || *signedTxBase64 == "" {
			return nil, domainErrors.ErrPaymentRequired
		}

		tx, err := txwire.DecodeBase64(*signedTxBase64)
		if err != nil {
			p.fail(ctx, order.ID)
			p.metrics.PaymentVerified("malformed")
			return nil, fmt.Errorf("decode payment transaction: %w", err)
		}

		if err := p.verifier.Verify(tx, priceSol); err != nil {
			p.fail(ctx, order.ID)
			p.metrics.PaymentVerified("rejected")
			return nil, err
		}
		p.metrics.PaymentVerified("ok")

		sig, err := p.submitter.Submit(ctx, tx)
		if err != nil {
			p.fail(ctx, order.ID)
			return nil, err
		}
		paymentSig = &sig
	}

	mintSig, err := p.invokeMint(ctx, order)
	if err != nil {
		p.fail(ctx, order.ID)
		p.metrics.MintProcessed("failed")
		return nil, err
	}

	if err := p.orders.Finalize(ctx, order.ID, model.OrderStatusCompleted, paymentSig, &mintSig); err != nil {
		return nil, err
	}
	p.metrics.MintProcessed("completed")

	return &ProcessResult{
		PaymentSig:  paymentSig,
		MintSig:     mintSig,
		ExplorerURL: chain.ExplorerTxURL(p.cluster, mintSig),
	}, nil
}

func (p *MintProcessor) invokeMint(ctx context.Context, order *model.Order) (string, error) {
	collectible, err := p.collectibles.GetByID(ctx, order.CollectibleID)
	if err != nil {
		return "", err
	}

	collection, err := p.collections.GetByID(ctx, order.CollectionID)
	if err != nil {
		return "", err
	}
	if !collection.ReadyForMint() {
		return "", domainErrors.ErrCollectionNotReady
	}

	return p.minter.MintCompressed(ctx, minter.MintRequest{
		TreeAddress:    *collection.TreeAddress,
		CollectionMint: *collection.MintAddress,
		Recipient:      order.WalletAddress,
		Name:           collectible.Name,
		MetadataURI:    collectible.MetadataURI,
		RoyaltyBps:     collection.RoyaltyBps,
	})
}

// fail moves the order to its failed terminal state. A conditional
// update losing to a concurrent finalization is ignored.
func (p *MintProcessor) fail(ctx context.Context, orderID string) {
	if err := p.orders.Finalize(ctx, orderID, model.OrderStatusFailed, nil, nil); err != nil {
		if !errors.Is(err, domainErrors.ErrOrderNotPending) {
			p.logger.Error("failed to finalize order", "order", orderID, "error", err)
		}
	}
}
