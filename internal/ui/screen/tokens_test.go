package screen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dexwatch/dexwatch/internal/dexscreener"
	"github.com/dexwatch/dexwatch/internal/logger"
	"github.com/dexwatch/dexwatch/internal/market"
	"github.com/dexwatch/dexwatch/internal/screener"
	"github.com/dexwatch/dexwatch/internal/ui"
	"github.com/dexwatch/dexwatch/internal/watchlist"
)

type memStore struct {
	blobs map[string][]byte
}

func (m *memStore) Load(key string) ([]byte, bool, error) {
	data, ok := m.blobs[key]
	return data, ok, nil
}

func (m *memStore) Save(key string, data []byte) error {
	m.blobs[key] = data
	return nil
}

// stubServices satisfies ui.ServiceProvider for screen tests.
type stubServices struct {
	svc *market.Service
	wl  *watchlist.Store
	buf *logger.LogBuffer
	log *zap.Logger
}

func (s *stubServices) GetMarket() *market.Service        { return s.svc }
func (s *stubServices) GetWatchlist() *watchlist.Store    { return s.wl }
func (s *stubServices) GetLogBuffer() *logger.LogBuffer   { return s.buf }
func (s *stubServices) GetLogger() *zap.Logger            { return s.log }
func (s *stubServices) GetContext() context.Context       { return context.Background() }
func (s *stubServices) GetChains() []string               { return []string{"solana"} }
func (s *stubServices) GetDebounceDelay() time.Duration   { return 10 * time.Millisecond }
func (s *stubServices) GetRefreshInterval() time.Duration { return time.Second }

func newTestServices(t *testing.T) ui.ServiceProvider {
	t.Helper()
	log := zap.NewNop()
	return &stubServices{
		svc: market.NewService(nil, log),
		wl:  watchlist.New(&memStore{blobs: map[string][]byte{}}, log),
		buf: logger.NewLogBuffer(8),
		log: log,
	}
}

func TestPairForMatchesMixedCaseBaseAddress(t *testing.T) {
	s := NewTokensScreen(newTestServices(t))

	// Without a pair address the token ID falls back to the base-token
	// address in its original casing; lookup must still find the pair.
	pair := dexscreener.Pair{
		ChainID:   "ethereum",
		BaseToken: dexscreener.TokenInfo{Address: "0xAbCdEf", Symbol: "ABC"},
	}
	s.snapshot = market.Snapshot{Pairs: []dexscreener.Pair{pair}}

	tok := screener.NormalizePair(pair)
	require.Equal(t, "0xAbCdEf", tok.ID)

	found, ok := s.pairFor(tok.ID)
	require.True(t, ok)
	assert.Equal(t, "ethereum", found.ChainID)
}

func TestPairForMatchesPairAddress(t *testing.T) {
	s := NewTokensScreen(newTestServices(t))
	s.snapshot = market.Snapshot{Pairs: []dexscreener.Pair{
		{PairAddress: "PAIR1", BaseToken: dexscreener.TokenInfo{Address: "base1"}},
	}}

	found, ok := s.pairFor("PAIR1")
	require.True(t, ok)
	assert.Equal(t, "PAIR1", found.PairAddress)

	_, ok = s.pairFor("missing")
	assert.False(t, ok)
}
