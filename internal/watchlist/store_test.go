package watchlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dexwatch/dexwatch/internal/dexscreener"
)

// memStore is an in-memory storage.Store for tests.
type memStore struct {
	blobs   map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (m *memStore) Load(key string) ([]byte, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	data, ok := m.blobs[key]
	return data, ok, nil
}

func (m *memStore) Save(key string, data []byte) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.blobs[key] = data
	return nil
}

func testPair(pairAddr, baseAddr, symbol string) dexscreener.Pair {
	return dexscreener.Pair{
		PairAddress: pairAddr,
		BaseToken:   dexscreener.TokenInfo{Address: baseAddr, Symbol: symbol},
		PriceUsd:    "1.0",
	}
}

func TestStoreAddRemoveContains(t *testing.T) {
	s := New(newMemStore(), zap.NewNop())

	require.True(t, s.Add(testPair("p1", "0xA", "AAA")))
	require.True(t, s.Add(testPair("p2", "0xB", "BBB")))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("p1"))
	assert.False(t, s.Contains("nope"))

	assert.True(t, s.Remove("p1"))
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Contains("p1"))
}

func TestStoreAddIsAtMostOnce(t *testing.T) {
	s := New(newMemStore(), zap.NewNop())

	assert.True(t, s.Add(testPair("p1", "0xA", "AAA")))
	assert.False(t, s.Add(testPair("p1", "0xA", "AAA")), "same ID twice must be a no-op")
	assert.Equal(t, 1, s.Len())
}

func TestStoreRemoveAbsentIsNoOp(t *testing.T) {
	kv := newMemStore()
	s := New(kv, zap.NewNop())
	s.Add(testPair("p1", "0xA", "AAA"))
	savesBefore := kv.saves

	assert.False(t, s.Remove("missing"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, savesBefore, kv.saves, "no-op remove must not rewrite the blob")
}

func TestStoreInsertionOrderSurvivesRemoval(t *testing.T) {
	s := New(newMemStore(), zap.NewNop())
	s.Add(testPair("p1", "0xA", "AAA"))
	s.Add(testPair("p2", "0xB", "BBB"))
	s.Add(testPair("p3", "0xC", "CCC"))

	s.Remove("p2")

	entries := s.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "AAA", entries[0].Token.Symbol)
	assert.Equal(t, "CCC", entries[1].Token.Symbol)
}

func TestStorePersistsOnEveryMutation(t *testing.T) {
	kv := newMemStore()
	s := New(kv, zap.NewNop())

	s.Add(testPair("p1", "0xA", "AAA"))
	s.Remove("p1")

	assert.Equal(t, 2, kv.saves)
}

func TestStoreRehydratesFromBlob(t *testing.T) {
	kv := newMemStore()
	first := New(kv, zap.NewNop())
	first.Add(testPair("p1", "0xA", "AAA"))
	first.Add(testPair("p2", "0xB", "BBB"))

	second := New(kv, zap.NewNop())
	entries := second.List()
	require.Len(t, entries, 2)
	assert.Equal(t, "AAA", entries[0].Token.Symbol)
	assert.True(t, second.Contains("p2"))
	require.NotNil(t, entries[0].BaseToken)
	assert.Equal(t, "0xA", entries[0].BaseToken.Address)
}

func TestStoreCorruptBlobStartsEmpty(t *testing.T) {
	kv := newMemStore()
	kv.blobs[StorageKey] = []byte("{not json")

	s := New(kv, zap.NewNop())
	assert.Equal(t, 0, s.Len())

	// And the store still works afterwards.
	assert.True(t, s.Add(testPair("p1", "0xA", "AAA")))
}

func TestStoreLoadErrorStartsEmpty(t *testing.T) {
	kv := newMemStore()
	kv.loadErr = errors.New("disk on fire")

	s := New(kv, zap.NewNop())
	assert.Equal(t, 0, s.Len())
}

func TestStoreSaveFailureIsNotFatal(t *testing.T) {
	kv := newMemStore()
	kv.saveErr = errors.New("read-only filesystem")

	s := New(kv, zap.NewNop())
	assert.True(t, s.Add(testPair("p1", "0xA", "AAA")))
	// In-memory state stays authoritative for the session.
	assert.True(t, s.Contains("p1"))
}

func TestStoreAddBoostedToken(t *testing.T) {
	s := New(newMemStore(), zap.NewNop())

	assert.True(t, s.Add(dexscreener.BoostedToken{TokenAddress: "0xBOOST"}))
	assert.True(t, s.Contains("0xBOOST"))

	entries := s.List()
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].PairAddress)
}
