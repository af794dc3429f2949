package test

import (
	"context"
	"sync/atomic"

	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/chain"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/adapter/minter"
)

// ChainClientStub simulates the node client with controllable responses.
type ChainClientStub struct {
	SendFn      func(context.Context, string, chain.SendOptions) (string, error)
	StatusFn    func(context.Context, string) (string, error)
	BlockhashFn func(context.Context) ([32]byte, error)
	PingErr     error

	SendCalls   int32
	StatusCalls int32
}

func (s *ChainClientStub) SendTransaction(ctx context.Context, txBase64 string, opts chain.SendOptions) (string, error) {
	atomic.AddInt32(&s.SendCalls, 1)
	if s.SendFn != nil {
		return s.SendFn(ctx, txBase64, opts)
	}
	return "signature", nil
}

func (s *ChainClientStub) SignatureStatus(ctx context.Context, signature string) (string, error) {
	atomic.AddInt32(&s.StatusCalls, 1)
	if s.StatusFn != nil {
		return s.StatusFn(ctx, signature)
	}
	return chain.StatusConfirmed, nil
}

func (s *ChainClientStub) LatestBlockhash(ctx context.Context) ([32]byte, error) {
	if s.BlockhashFn != nil {
		return s.BlockhashFn(ctx)
	}
	var h [32]byte
	h[0] = 0xFF
	return h, nil
}

func (s *ChainClientStub) Ping(ctx context.Context) error {
	return s.PingErr
}

// MinterClientStub simulates the mint API client.
type MinterClientStub struct {
	MintFn func(context.Context, minter.MintRequest) (string, error)

	Requests []minter.MintRequest
}

func (s *MinterClientStub) MintCompressed(ctx context.Context, req minter.MintRequest) (string, error) {
	s.Requests = append(s.Requests, req)
	if s.MintFn != nil {
		return s.MintFn(ctx, req)
	}
	return "mint-signature", nil
}

// RatesClientStub returns a fixed SOL quote.
type RatesClientStub struct {
	SolUSDVal float64
	Err       error
}

func (s *RatesClientStub) SolUSD(ctx context.Context) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if s.SolUSDVal == 0 {
		return 100, nil
	}
	return s.SolUSDVal, nil
}
