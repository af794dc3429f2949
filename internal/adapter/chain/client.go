// Package chain talks JSON-RPC to a blockchain node: transaction
// submission, signature status polling and recency token (blockhash)
// retrieval.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mr-tron/base58"
)

// Confirmation levels reported by the node.
const (
	StatusProcessed = "processed"
	StatusConfirmed = "confirmed"
	StatusFinalized = "finalized"
)

// Node rejects sends referencing an expired blockhash with this code.
const rpcCodeBlockhashNotFound = -32002

// ErrEmptyResult indicates the node returned neither result nor error.
var ErrEmptyResult = errors.New("chain: empty rpc result")

// BlockhashNotFoundError marks the one transient send failure that the
// submission loop is allowed to retry after refreshing the blockhash.
type BlockhashNotFoundError struct {
	Message string
}

func (e *BlockhashNotFoundError) Error() string {
	return fmt.Sprintf("blockhash not found: %s", e.Message)
}

// RPCError is any other error object returned by the node.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// SendOptions tune a single transaction submission.
type SendOptions struct {
	SkipPreflight bool
	MaxRetries    int
}

// Client exposes node operations required by the mint workflow.
type Client interface {
	SendTransaction(ctx context.Context, txBase64 string, opts SendOptions) (string, error)
	SignatureStatus(ctx context.Context, signature string) (string, error)
	LatestBlockhash(ctx context.Context) ([32]byte, error)
	Ping(ctx context.Context) error
}

// HTTPClient implements Client over JSON-RPC 2.0.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a node client with a default timeout.
func NewHTTPClient(endpoint string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rpc url must be absolute")
	}
	return &HTTPClient{
		endpoint: endpoint,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcErrorBody   `json:"error"`
}

func (c *HTTPClient) call(ctx context.Context, method string, params []any) (json.RawMessage, error) {
	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("rpc request failed", slog.String("method", method), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("rpc http status %s", resp.Status)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}
	if parsed.Error != nil {
		if parsed.Error.Code == rpcCodeBlockhashNotFound ||
			strings.Contains(parsed.Error.Message, "Blockhash not found") {
			return nil, &BlockhashNotFoundError{Message: parsed.Error.Message}
		}
		return nil, &RPCError{Code: parsed.Error.Code, Message: parsed.Error.Message}
	}
	if parsed.Result == nil {
		return nil, ErrEmptyResult
	}
	return parsed.Result, nil
}

// SendTransaction submits base64 transaction bytes and returns the base58
// transaction signature assigned by the network.
func (c *HTTPClient) SendTransaction(ctx context.Context, txBase64 string, opts SendOptions) (string, error) {
	params := []any{txBase64, map[string]any{
		"encoding":      "base64",
		"skipPreflight": opts.SkipPreflight,
		"maxRetries":    opts.MaxRetries,
	}}
	result, err := c.call(ctx, "sendTransaction", params)
	if err != nil {
		return "", err
	}
	var signature string
	if err := json.Unmarshal(result, &signature); err != nil {
		return "", fmt.Errorf("decode signature: %w", err)
	}
	return signature, nil
}

// SignatureStatus returns the confirmation status of a signature, or an
// empty string while the network does not know it yet. Historical
// transactions are included in the search.
func (c *HTTPClient) SignatureStatus(ctx context.Context, signature string) (string, error) {
	params := []any{[]string{signature}, map[string]any{"searchTransactionHistory": true}}
	result, err := c.call(ctx, "getSignatureStatuses", params)
	if err != nil {
		return "", err
	}

	var parsed struct {
		Value []*struct {
			ConfirmationStatus string `json:"confirmationStatus"`
		} `json:"value"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return "", fmt.Errorf("decode signature status: %w", err)
	}
	if len(parsed.Value) == 0 || parsed.Value[0] == nil {
		return "", nil
	}
	return parsed.Value[0].ConfirmationStatus, nil
}

// LatestBlockhash fetches a fresh recency token for transaction rewrite.
func (c *HTTPClient) LatestBlockhash(ctx context.Context) ([32]byte, error) {
	var hash [32]byte
	result, err := c.call(ctx, "getLatestBlockhash", nil)
	if err != nil {
		return hash, err
	}

	var parsed struct {
		Value struct {
			Blockhash string `json:"blockhash"`
		} `json:"value"`
	}
	if err := json.Unmarshal(result, &parsed); err != nil {
		return hash, fmt.Errorf("decode blockhash: %w", err)
	}
	raw, err := base58.Decode(parsed.Value.Blockhash)
	if err != nil || len(raw) != len(hash) {
		return hash, fmt.Errorf("malformed blockhash %q", parsed.Value.Blockhash)
	}
	copy(hash[:], raw)
	return hash, nil
}

// Ping verifies node reachability.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.call(ctx, "getHealth", nil)
	return err
}

// ExplorerTxURL builds the public explorer link for a transaction.
func ExplorerTxURL(cluster, signature string) string {
	base := fmt.Sprintf("https://explorer.solana.com/tx/%s", signature)
	if cluster == "" || strings.HasPrefix(cluster, "mainnet") {
		return base
	}
	return base + "?cluster=" + cluster
}
