// Package watchlist owns the user's persisted set of tracked tokens. The
// store is an explicit handle created by the composition root and passed to
// consumers; there is no package-global instance.
package watchlist

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dexwatch/dexwatch/internal/dexscreener"
	"github.com/dexwatch/dexwatch/internal/screener"
	"github.com/dexwatch/dexwatch/internal/storage"
)

// StorageKey is the fixed key the serialized watchlist lives under.
const StorageKey = "watchlist"

// Entry is the persisted subset of a token plus origin metadata kept for
// display fallback when the record cannot be re-fetched.
type Entry struct {
	Token       screener.Token         `json:"token"`
	PairAddress string                 `json:"pairAddress,omitempty"`
	BaseToken   *dexscreener.TokenInfo `json:"baseToken,omitempty"`
	AddedAt     time.Time              `json:"addedAt"`
}

// Store is a mutex-guarded, insertion-ordered collection of entries backed by
// a key-value blob. Every mutation rewrites the full blob; the blob is read
// once at construction. A corrupt or missing blob is an empty watchlist,
// never an error.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]struct{}
	kv      storage.Store
	logger  *zap.Logger
}

// New hydrates the store from the persistence layer.
func New(kv storage.Store, logger *zap.Logger) *Store {
	s := &Store{
		index:  make(map[string]struct{}),
		kv:     kv,
		logger: logger.Named("watchlist"),
	}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	data, ok, err := s.kv.Load(StorageKey)
	if err != nil {
		s.logger.Warn("failed to load persisted watchlist, starting empty", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("corrupt watchlist blob, starting empty", zap.Error(err))
		return
	}

	s.entries = entries
	for _, e := range entries {
		s.index[e.Token.ID] = struct{}{}
	}
	s.logger.Info("watchlist loaded", zap.Int("entries", len(entries)))
}

// Add normalizes the raw record and appends it. Adding a record whose ID is
// already present is a no-op, which keeps entries at-most-once.
// Returns true if the list changed.
func (s *Store) Add(raw any) bool {
	tok := screener.Normalize(raw)

	entry := Entry{
		Token:   tok,
		AddedAt: time.Now().UTC(),
	}
	switch rec := raw.(type) {
	case dexscreener.Pair:
		entry.PairAddress = rec.PairAddress
		base := rec.BaseToken
		entry.BaseToken = &base
	case *dexscreener.Pair:
		if rec != nil {
			entry.PairAddress = rec.PairAddress
			base := rec.BaseToken
			entry.BaseToken = &base
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[tok.ID]; exists {
		return false
	}

	s.entries = append(s.entries, entry)
	s.index[tok.ID] = struct{}{}
	s.persistLocked()

	s.logger.Info("token added to watchlist",
		zap.String("id", tok.ID),
		zap.String("symbol", tok.Symbol))
	return true
}

// Remove deletes the entry with the given ID; removing an absent ID is a
// no-op. Remaining entries keep their relative order. Returns true if the
// list changed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[id]; !exists {
		return false
	}

	for i, e := range s.entries {
		if e.Token.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	delete(s.index, id)
	s.persistLocked()

	s.logger.Info("token removed from watchlist", zap.String("id", id))
	return true
}

// Contains reports whether a token with the given ID is tracked.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.index[id]
	return exists
}

// List returns a copy of all entries in insertion order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of tracked tokens.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// persistLocked serializes the full list. A failed save is logged and
// otherwise ignored: the in-memory state stays authoritative for the session.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("failed to serialize watchlist", zap.Error(err))
		return
	}
	if err := s.kv.Save(StorageKey, data); err != nil {
		s.logger.Warn("failed to persist watchlist", zap.Error(err))
	}
}
