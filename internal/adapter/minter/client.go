// Package minter calls the hosted token-metadata/compression API that
// issues compressed tokens into a collection tree.
package minter

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
	"time"
)

// ErrMintRejected indicates the mint API refused the request outright.
var ErrMintRejected = errors.New("mint request rejected")

// MintRequest describes one compressed token issuance.
type MintRequest struct {
	TreeAddress    string `json:"treeAddress"`
	CollectionMint string `json:"collectionMint"`
	Recipient      string `json:"recipient"`
	Name           string `json:"name"`
	MetadataURI    string `json:"metadataUri"`
	RoyaltyBps     int32  `json:"sellerFeeBasisPoints"`
}

// Client exposes the single irreversible operation of the mint API.
type Client interface {
	MintCompressed(ctx context.Context, req MintRequest) (string, error)
}

// HTTPClient implements Client via the hosted REST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates mint API client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mint api url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mint api url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type mintResponse struct {
	Signature string `json:"signature"`
}

// MintCompressed issues one compressed token to the recipient and returns
// the mint transaction signature.
func (c *HTTPClient) MintCompressed(ctx context.Context, req MintRequest) (string, error) {
	endpoint := c.baseURL.JoinPath("/v1/mint")

	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data mintResponse
		if err := json.Unmarshal(body, &data); err != nil {
			return "", fmt.Errorf("decode mint response: %w", err)
		}
		if data.Signature == "" {
			return "", fmt.Errorf("mint response carried no signature")
		}
		return data.Signature, nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		c.logger.Error("mint rejected", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", ErrMintRejected
	default:
		c.logger.Error("mint request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return "", fmt.Errorf("mint api error: %s", resp.Status)
	}
}
