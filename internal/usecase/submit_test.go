package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/metrics"
	testhelpers "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/test"
)

func newTestSubmitter(stub *testhelpers.ChainClientStub, maxPolls int) *TxSubmitter {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewTxSubmitter(stub, SubmitOptions{
		SendRetries:  3,
		PollInterval: time.Millisecond,
		MaxPolls:     maxPolls,
	}, metrics.New(), logger)
}

func TestSubmitConfirms(t *testing.T) {
	stub := &testhelpers.ChainClientStub{
		SendFn: func(_ context.Context, _ string, opts chain.SendOptions) (string, error) {
			if !opts.SkipPreflight {
				t.Error("preflight must be skipped")
			}
			return "sig-1", nil
		},
	}
	s := newTestSubmitter(stub, 5)

	sig, err := s.Submit(context.Background(), buildTransferTx(t, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != "sig-1" {
		t.Fatalf("unexpected signature %q", sig)
	}
}

func TestSubmitWaitsThroughUnknownStatuses(t *testing.T) {
	var polls int32
	stub := &testhelpers.ChainClientStub{
		StatusFn: func(context.Context, string) (string, error) {
			if atomic.AddInt32(&polls, 1) < 3 {
				return "", nil
			}
			return chain.StatusFinalized, nil
		},
	}
	s := newTestSubmitter(stub, 10)

	if _, err := s.Submit(context.Background(), buildTransferTx(t, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&polls); got != 3 {
		t.Fatalf("expected 3 status polls, got %d", got)
	}
}

func TestSubmitRetriesStaleBlockhashOnce(t *testing.T) {
	var sends int32
	fresh := [32]byte{0xAB}
	stub := &testhelpers.ChainClientStub{
		SendFn: func(context.Context, string, chain.SendOptions) (string, error) {
			if atomic.AddInt32(&sends, 1) == 1 {
				return "", &chain.BlockhashNotFoundError{Message: "Blockhash not found"}
			}
			return "sig-2", nil
		},
		BlockhashFn: func(context.Context) ([32]byte, error) {
			return fresh, nil
		},
	}
	s := newTestSubmitter(stub, 5)

	tx := buildTransferTx(t, 1)
	sig, err := s.Submit(context.Background(), tx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig != "sig-2" {
		t.Fatalf("unexpected signature %q", sig)
	}
	if got := atomic.LoadInt32(&sends); got != 2 {
		t.Fatalf("expected exactly 2 sends, got %d", got)
	}
	if tx.Message.RecentBlockhash() != fresh {
		t.Fatal("blockhash was not rewritten before resend")
	}
}

func TestSubmitStaleBlockhashTwiceFails(t *testing.T) {
	stub := &testhelpers.ChainClientStub{
		SendFn: func(context.Context, string, chain.SendOptions) (string, error) {
			return "", &chain.BlockhashNotFoundError{Message: "Blockhash not found"}
		},
	}
	s := newTestSubmitter(stub, 5)

	_, err := s.Submit(context.Background(), buildTransferTx(t, 1))
	var stale *chain.BlockhashNotFoundError
	if !errors.As(err, &stale) {
		t.Fatalf("expected stale blockhash error after single retry, got %v", err)
	}
	if got := atomic.LoadInt32(&stub.SendCalls); got != 2 {
		t.Fatalf("expected exactly 2 sends, got %d", got)
	}
}

func TestSubmitOtherSendErrorNotRetried(t *testing.T) {
	stub := &testhelpers.ChainClientStub{
		SendFn: func(context.Context, string, chain.SendOptions) (string, error) {
			return "", &chain.RPCError{Code: -32000, Message: "insufficient funds"}
		},
	}
	s := newTestSubmitter(stub, 5)

	if _, err := s.Submit(context.Background(), buildTransferTx(t, 1)); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&stub.SendCalls); got != 1 {
		t.Fatalf("expected single send, got %d", got)
	}
}

func TestSubmitConfirmationTimeout(t *testing.T) {
	stub := &testhelpers.ChainClientStub{
		StatusFn: func(context.Context, string) (string, error) {
			return chain.StatusProcessed, nil
		},
	}
	s := newTestSubmitter(stub, 4)

	_, err := s.Submit(context.Background(), buildTransferTx(t, 1))
	if !errors.Is(err, ErrConfirmationTimeout) {
		t.Fatalf("expected confirmation timeout, got %v", err)
	}
	if got := atomic.LoadInt32(&stub.StatusCalls); got != 4 {
		t.Fatalf("expected 4 polls, got %d", got)
	}
}

func TestSubmitContextCancelled(t *testing.T) {
	stub := &testhelpers.ChainClientStub{
		StatusFn: func(context.Context, string) (string, error) {
			return "", nil
		},
	}
	s := newTestSubmitter(stub, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	if _, err := s.Submit(ctx, buildTransferTx(t, 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestSubmitStatusErrorsAreTransient(t *testing.T) {
	var polls int32
	stub := &testhelpers.ChainClientStub{
		StatusFn: func(context.Context, string) (string, error) {
			if atomic.AddInt32(&polls, 1) == 1 {
				return "", errors.New("rpc hiccup")
			}
			return chain.StatusConfirmed, nil
		},
	}
	s := newTestSubmitter(stub, 5)

	if _, err := s.Submit(context.Background(), buildTransferTx(t, 1)); err != nil {
		t.Fatalf("transient status error must not abort: %v", err)
	}
}
