// Package market orchestrates fetches against the market-data service and
// feeds the results through the screener pipeline. Each remote source fails
// soft: partial data is always preferred over total failure.
package market

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dexwatch/dexwatch/internal/dexscreener"
	"github.com/dexwatch/dexwatch/internal/screener"
)

// API is the subset of the market-data client the service depends on.
type API interface {
	SearchPairs(ctx context.Context, query string) ([]dexscreener.Pair, error)
	GetTokenPairs(ctx context.Context, chain, address string) ([]dexscreener.Pair, error)
	GetLatestBoostedTokens(ctx context.Context) ([]dexscreener.BoostedToken, error)
	GetTopBoostedTokens(ctx context.Context) ([]dexscreener.BoostedToken, error)
	GetLatestTokenProfiles(ctx context.Context) ([]dexscreener.TokenProfile, error)
}

// State describes what the presentation layer may render: a spinner, results
// (possibly zero of them), or a terminal failure requiring explicit retry.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is one completed fetch cycle. Generation identifies which request
// produced it so stale results can be discarded.
type Snapshot struct {
	Tokens     []screener.Token
	Pairs      []dexscreener.Pair
	State      State
	Generation uint64
}

// Service wraps the API client with failure isolation and request sequencing.
type Service struct {
	api    API
	logger *zap.Logger

	maxConcurrent int
	interleave    int

	// generation increases on every user-initiated fetch; results carrying an
	// older generation are stale and must be dropped by the caller.
	generation atomic.Uint64
}

// ServiceOptions configures a Service.
type ServiceOptions struct {
	// MaxConcurrent bounds parallel per-token pair lookups during trending
	// resolution.
	MaxConcurrent int
	// InterleaveLimit caps the merged trending display list.
	InterleaveLimit int
}

// DefaultServiceOptions returns production settings.
func DefaultServiceOptions() ServiceOptions {
	return ServiceOptions{
		MaxConcurrent:   4,
		InterleaveLimit: screener.DefaultInterleaveLimit,
	}
}

// NewService creates the orchestration service.
func NewService(api API, logger *zap.Logger, opts ...ServiceOptions) *Service {
	options := DefaultServiceOptions()
	if len(opts) > 0 {
		options = opts[0]
		if options.MaxConcurrent <= 0 {
			options.MaxConcurrent = 4
		}
		if options.InterleaveLimit <= 0 {
			options.InterleaveLimit = screener.DefaultInterleaveLimit
		}
	}

	return &Service{
		api:           api,
		logger:        logger.Named("market"),
		maxConcurrent: options.MaxConcurrent,
		interleave:    options.InterleaveLimit,
	}
}

// NextGeneration claims a new request generation. Call once per user-initiated
// fetch and stamp the resulting snapshot with the returned value.
func (s *Service) NextGeneration() uint64 {
	return s.generation.Add(1)
}

// IsCurrent reports whether gen is still the most recent claimed generation.
// The last request wins: anything older should be discarded unrendered.
func (s *Service) IsCurrent(gen uint64) bool {
	return s.generation.Load() == gen
}

// Search fetches pairs matching query and aggregates them into tokens.
// A transport failure degrades to an empty, Failed snapshot.
func (s *Service) Search(ctx context.Context, gen uint64, query string) Snapshot {
	pairs, err := s.api.SearchPairs(ctx, query)
	if err != nil {
		s.logger.Warn("pair search failed",
			zap.String("query", query),
			zap.Error(err))
		return Snapshot{State: StateFailed, Generation: gen}
	}

	s.fillMissingNames(ctx, pairs)
	return Snapshot{
		Tokens:     screener.Aggregate(pairs),
		Pairs:      pairs,
		State:      StateLoaded,
		Generation: gen,
	}
}

// fillMissingNames enriches pairs whose base token carries no name from the
// latest token profiles. Purely cosmetic, so a failed profile fetch is a no-op.
func (s *Service) fillMissingNames(ctx context.Context, pairs []dexscreener.Pair) {
	missing := false
	for _, p := range pairs {
		if p.BaseToken.Name == "" && p.BaseToken.Address != "" {
			missing = true
			break
		}
	}
	if !missing {
		return
	}

	profiles := s.Profiles(ctx)
	if len(profiles) == 0 {
		return
	}

	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		if p.Description != "" {
			names[screener.CanonicalAddress(p.TokenAddress)] = p.Description
		}
	}
	for i := range pairs {
		if pairs[i].BaseToken.Name == "" {
			pairs[i].BaseToken.Name = names[screener.CanonicalAddress(pairs[i].BaseToken.Address)]
		}
	}
}

// Trending resolves the top boosted tokens on the configured chains into an
// interleaved, aggregated display list.
//
// All per-token pair queries are joined before aggregation and interleaving
// run, since both need the full set of per-chain results to be deterministic.
// Individual query failures contribute an empty result for that source; the
// snapshot is Failed only when every source failed and nothing is available.
func (s *Service) Trending(ctx context.Context, gen uint64, chains []string) Snapshot {
	boosted, err := s.api.GetTopBoostedTokens(ctx)
	if err != nil {
		s.logger.Warn("boosted tokens fetch failed", zap.Error(err))
		return Snapshot{State: StateFailed, Generation: gen}
	}

	wanted := make(map[string]bool, len(chains))
	for _, c := range chains {
		wanted[c] = true
	}

	type result struct {
		pairs []dexscreener.Pair
		ok    bool
	}

	var (
		mu      sync.Mutex
		results []result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, b := range boosted {
		if !wanted[b.ChainID] {
			continue
		}
		g.Go(func() error {
			pairs, err := s.api.GetTokenPairs(gctx, b.ChainID, b.TokenAddress)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Debug("token pairs fetch failed, skipping source",
					zap.String("chain", b.ChainID),
					zap.String("token", b.TokenAddress),
					zap.Error(err))
				results = append(results, result{})
				return nil
			}
			results = append(results, result{pairs: pairs, ok: true})
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; the barrier is what matters

	var (
		pairs     []dexscreener.Pair
		succeeded int
	)
	for _, r := range results {
		if r.ok {
			succeeded++
		}
		pairs = append(pairs, r.pairs...)
	}

	if len(results) > 0 && succeeded == 0 {
		return Snapshot{State: StateFailed, Generation: gen}
	}

	display := screener.Interleave(pairs, chains, s.interleave)
	return Snapshot{
		Tokens:     screener.Aggregate(display),
		Pairs:      display,
		State:      StateLoaded,
		Generation: gen,
	}
}

// TokenPairs fetches all pairs for one token, used by the detail screen to
// refresh price history. Fails soft to an empty slice.
func (s *Service) TokenPairs(ctx context.Context, chain, address string) []dexscreener.Pair {
	pairs, err := s.api.GetTokenPairs(ctx, chain, address)
	if err != nil {
		s.logger.Debug("token detail refresh failed",
			zap.String("chain", chain),
			zap.String("token", address),
			zap.Error(err))
		return nil
	}
	return pairs
}

// Profiles fetches the latest token profiles, used to enrich names for
// records that arrive without one. Fails soft to an empty slice.
func (s *Service) Profiles(ctx context.Context) []dexscreener.TokenProfile {
	profiles, err := s.api.GetLatestTokenProfiles(ctx)
	if err != nil {
		s.logger.Debug("profiles fetch failed", zap.Error(err))
		return nil
	}
	return profiles
}
