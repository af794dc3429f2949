package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/txwire"
)

// ErrConfirmationTimeout indicates the transaction was sent but did not
// reach confirmed commitment within the polling budget. The transaction
// may still land; callers must treat the order as failed regardless.
var ErrConfirmationTimeout = errors.New("transaction confirmation timed out")

// SubmitOptions tune the submission and confirmation loop.
type SubmitOptions struct {
	SendRetries  int
	PollInterval time.Duration
	MaxPolls     int
}

// TxSubmitter pushes signed transactions to the node and awaits
// confirmation.
type TxSubmitter struct {
	chain   chain.Client
	opts    SubmitOptions
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewTxSubmitter constructs TxSubmitter.
func NewTxSubmitter(chainClient chain.Client, opts SubmitOptions, m *metrics.Metrics, logger *slog.Logger) *TxSubmitter {
	return &TxSubmitter{chain: chainClient, opts: opts, metrics: m, logger: logger}
}

// Submit sends the transaction with preflight disabled and polls until
// the node reports confirmed or finalized commitment. A send rejected
// for an expired blockhash is retried exactly once with a fresh
// blockhash; keeping the user's signature intact is impossible after a
// rewrite, so the retry only helps transactions signed over a still
// valid hash that the node has not yet seen.
func (s *TxSubmitter) Submit(ctx context.Context, tx *txwire.Transaction) (string, error) {
	sendOpts := chain.SendOptions{SkipPreflight: true, MaxRetries: s.opts.SendRetries}

	signature, err := s.chain.SendTransaction(ctx, tx.EncodeBase64(), sendOpts)
	if err != nil {
		var stale *chain.BlockhashNotFoundError
		if !errors.As(err, &stale) {
			s.metrics.TxSubmission("send_failed")
			return "", fmt.Errorf("send transaction: %w", err)
		}

		s.logger.Warn("blockhash expired, refreshing and resending", "tx", tx.ID())
		blockhash, bhErr := s.chain.LatestBlockhash(ctx)
		if bhErr != nil {
			s.metrics.TxSubmission("send_failed")
			return "", fmt.Errorf("refresh blockhash: %w", bhErr)
		}
		tx.Message.SetRecentBlockhash(blockhash)

		signature, err = s.chain.SendTransaction(ctx, tx.EncodeBase64(), sendOpts)
		if err != nil {
			s.metrics.TxSubmission("send_failed")
			return "", fmt.Errorf("resend transaction: %w", err)
		}
	}

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for polls := 0; polls < s.opts.MaxPolls; {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			polls++
			status, err := s.chain.SignatureStatus(ctx, signature)
			if err != nil {
				s.logger.Warn("signature status check failed", "signature", signature, "error", err)
				continue
			}
			if status == chain.StatusConfirmed || status == chain.StatusFinalized {
				s.metrics.TxSubmission("confirmed")
				return signature, nil
			}
		}
	}

	s.metrics.TxSubmission("timeout")
	return "", fmt.Errorf("%w: %s", ErrConfirmationTimeout, signature)
}
