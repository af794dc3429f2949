// Package rates resolves the live USD price of the network native currency,
// used to derive the payable amount for a fiat-priced collectible.
package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ErrNoQuote indicates the rate API answered without a usable price.
var ErrNoQuote = errors.New("rates: no quote in response")

// Client exposes the exchange rate lookup.
type Client interface {
	SolUSD(ctx context.Context) (float64, error)
}

// HTTPClient implements Client against a coingecko-compatible API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates rate client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse rates url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("rates url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SolUSD returns the current USD price of one unit of native currency.
func (c *HTTPClient) SolUSD(ctx context.Context) (float64, error) {
	endpoint := c.baseURL.JoinPath("/simple/price")
	query := endpoint.Query()
	query.Set("ids", "solana")
	query.Set("vs_currencies", "usd")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("rates request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return 0, fmt.Errorf("rates error: %s", resp.Status)
	}

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, err
	}
	price, ok := data["solana"]["usd"]
	if !ok || price <= 0 {
		return 0, ErrNoQuote
	}
	return price, nil
}

// USDToSol converts a fiat price through the provided quote.
func USDToSol(usd, solUSD float64) (float64, error) {
	if solUSD <= 0 {
		return 0, ErrNoQuote
	}
	return usd / solUSD, nil
}
