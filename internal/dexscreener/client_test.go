package dexscreener

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(zap.NewNop(), ClientOptions{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxElapsed: 2 * time.Second,
	})
	t.Cleanup(c.Close)
	return c
}

func TestSearchPairs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/dex/search", r.URL.Path)
		assert.Equal(t, "pepe usdc", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{
			"schemaVersion": "1.0.0",
			"pairs": [{
				"chainId": "ethereum",
				"pairAddress": "0xPAIR",
				"baseToken": {"address": "0xBASE", "symbol": "PEPE", "name": "Pepe"},
				"quoteToken": {"address": "0xUSDC", "symbol": "USDC"},
				"priceUsd": "0.0000012",
				"volume": {"h24": 1234567.8},
				"priceChange": {"h24": -4.2},
				"liquidity": {"usd": 987654.3},
				"marketCap": 500000000
			}]
		}`))
	})

	pairs, err := c.SearchPairs(context.Background(), "pepe usdc")
	require.NoError(t, err)
	require.Len(t, pairs, 1)

	p := pairs[0]
	assert.Equal(t, "ethereum", p.ChainID)
	assert.Equal(t, "PEPE", p.BaseToken.Symbol)
	assert.Equal(t, "0.0000012", p.PriceUsd)
	assert.Equal(t, 1234567.8, p.Volume.H24)
	assert.Equal(t, -4.2, p.PriceChange.H24)
	require.NotNil(t, p.Liquidity)
	assert.Equal(t, 987654.3, p.Liquidity.USD)
}

func TestGetTokenPairsBareArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token-pairs/v1/solana/So11111", r.URL.Path)
		_, _ = w.Write([]byte(`[{"chainId": "solana", "pairAddress": "p1"}]`))
	})

	pairs, err := c.GetTokenPairs(context.Background(), "solana", "So11111")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "p1", pairs[0].PairAddress)
}

func TestGetBoostedTokens(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token-boosts/top/v1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"chainId": "base", "tokenAddress": "0xT", "totalAmount": 500}]`))
	})

	tokens, err := c.GetTopBoostedTokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "base", tokens[0].ChainID)
	assert.Equal(t, 500.0, tokens[0].TotalAmount)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.GetLatestTokenProfiles(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetTokenPairs(context.Background(), "solana", "nope")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "4xx must be permanent")
}

func TestClientHonorsContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetLatestBoostedTokens(ctx)
	assert.Error(t, err)
}
