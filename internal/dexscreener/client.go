// internal/dexscreener/client.go
package dexscreener

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public DexScreener API root.
	DefaultBaseURL = "https://api.dexscreener.com"

	// rateLimit is the documented request budget per minute.
	rateLimit = 300
)

// Client is a rate-limited HTTP client for the DexScreener API. All calls
// honor ctx cancellation and retry transient failures with exponential
// backoff; 4xx responses are permanent and never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	limiter    *time.Ticker
	maxElapsed time.Duration
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	MaxElapsed time.Duration
}

// DefaultClientOptions returns the production settings.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		BaseURL:    DefaultBaseURL,
		Timeout:    10 * time.Second,
		MaxElapsed: 15 * time.Second,
	}
}

// NewClient creates a new API client.
func NewClient(logger *zap.Logger, opts ...ClientOptions) *Client {
	options := DefaultClientOptions()
	if len(opts) > 0 {
		options = opts[0]
		if options.BaseURL == "" {
			options.BaseURL = DefaultBaseURL
		}
		if options.Timeout <= 0 {
			options.Timeout = 10 * time.Second
		}
		if options.MaxElapsed <= 0 {
			options.MaxElapsed = 15 * time.Second
		}
	}

	return &Client{
		httpClient: &http.Client{Timeout: options.Timeout},
		baseURL:    options.BaseURL,
		logger:     logger.Named("dexscreener"),
		limiter:    time.NewTicker(time.Minute / rateLimit),
		maxElapsed: options.MaxElapsed,
	}
}

// Close releases the rate limiter.
func (c *Client) Close() {
	c.limiter.Stop()
}

// SearchPairs searches pairs matching the query (symbol, name or address).
func (c *Client) SearchPairs(ctx context.Context, query string) ([]Pair, error) {
	path := "/latest/dex/search?q=" + url.QueryEscape(query)

	var resp SearchResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("search pairs: %w", err)
	}

	c.logger.Debug("pairs search completed",
		zap.String("query", query),
		zap.Int("pairs", len(resp.Pairs)))
	return resp.Pairs, nil
}

// GetTokenPairs returns all pairs for a token address on one chain.
func (c *Client) GetTokenPairs(ctx context.Context, chain, address string) ([]Pair, error) {
	path := fmt.Sprintf("/token-pairs/v1/%s/%s", url.PathEscape(chain), url.PathEscape(address))

	var pairs []Pair
	if err := c.getJSON(ctx, path, &pairs); err != nil {
		return nil, fmt.Errorf("get token pairs: %w", err)
	}
	return pairs, nil
}

// GetLatestBoostedTokens returns the most recently boosted tokens.
func (c *Client) GetLatestBoostedTokens(ctx context.Context) ([]BoostedToken, error) {
	var tokens []BoostedToken
	if err := c.getJSON(ctx, "/token-boosts/latest/v1", &tokens); err != nil {
		return nil, fmt.Errorf("get latest boosted tokens: %w", err)
	}
	return tokens, nil
}

// GetTopBoostedTokens returns tokens with the most active boosts.
func (c *Client) GetTopBoostedTokens(ctx context.Context) ([]BoostedToken, error) {
	var tokens []BoostedToken
	if err := c.getJSON(ctx, "/token-boosts/top/v1", &tokens); err != nil {
		return nil, fmt.Errorf("get top boosted tokens: %w", err)
	}
	return tokens, nil
}

// GetLatestTokenProfiles returns the most recent token profiles.
func (c *Client) GetLatestTokenProfiles(ctx context.Context) ([]TokenProfile, error) {
	var profiles []TokenProfile
	if err := c.getJSON(ctx, "/token-profiles/latest/v1", &profiles); err != nil {
		return nil, fmt.Errorf("get latest token profiles: %w", err)
	}
	return profiles, nil
}

// getJSON performs a rate-limited GET with retry and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.limiter.C:
	}

	op := func() ([]byte, error) {
		return c.doRequest(ctx, c.baseURL+path)
	}

	body, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(c.maxElapsed),
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors are retryable.
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body)))
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
