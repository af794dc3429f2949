package minter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestMintCompressedSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/mint" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req MintRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.TreeAddress != "tree" || req.Recipient != "wallet" || req.RoyaltyBps != 500 {
			t.Fatalf("unexpected request %+v", req)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"signature": "mintSig"})
	}))
	defer srv.Close()

	client, err := NewHTTPClient(srv.URL, "test-key", discardLogger())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	sig, err := client.MintCompressed(context.Background(), MintRequest{
		TreeAddress:    "tree",
		CollectionMint: "mint",
		Recipient:      "wallet",
		Name:           "Poster #1",
		MetadataURI:    "https://meta.local/1.json",
		RoyaltyBps:     500,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if sig != "mintSig" {
		t.Fatalf("unexpected signature %q", sig)
	}
}

func TestMintCompressedRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"tree is full"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, "k", discardLogger())
	_, err := client.MintCompressed(context.Background(), MintRequest{})
	if !errors.Is(err, ErrMintRejected) {
		t.Fatalf("expected ErrMintRejected, got %v", err)
	}
}

func TestMintCompressedServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, "k", discardLogger())
	if _, err := client.MintCompressed(context.Background(), MintRequest{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestMintCompressedMissingSignature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, _ := NewHTTPClient(srv.URL, "k", discardLogger())
	if _, err := client.MintCompressed(context.Background(), MintRequest{}); err == nil {
		t.Fatal("expected error for empty signature")
	}
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("relative/path", "k", discardLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}
