package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTokens() []Token {
	return []Token{
		{ID: "t1", Symbol: "BIG", PriceUsd: 1, Volume24h: 500000, PriceChange24h: 1, LiquidityUsd: 1000, Verified: true},
		{ID: "t2", Symbol: "UP", PriceUsd: 2, Volume24h: 50000, PriceChange24h: 12, LiquidityUsd: 2000},
		{ID: "t3", Symbol: "DOWN", PriceUsd: 3, Volume24h: 70000, PriceChange24h: -9, LiquidityUsd: 3000},
		{ID: "t4", Symbol: "FLAT", PriceUsd: 4, Volume24h: 70000, PriceChange24h: 0.2, LiquidityUsd: 4000, MarketCap: 9_000_000},
	}
}

func TestFilterDefaultIsIdentityPlusSort(t *testing.T) {
	tokens := sampleTokens()

	out := Filter(tokens, nil, DefaultAdvancedFilters())

	require.Len(t, out, len(tokens), "default state must not exclude any token")
	assert.Equal(t, "BIG", out[0].Symbol)
	// t3 and t4 tie on volume: input order preserved.
	assert.Equal(t, "DOWN", out[1].Symbol)
	assert.Equal(t, "FLAT", out[2].Symbol)
	assert.Equal(t, "UP", out[3].Symbol)
}

func TestFilterQuickHighVolume(t *testing.T) {
	out := Filter(sampleTokens(), map[QuickFilter]bool{QuickHighVolume: true}, DefaultAdvancedFilters())
	require.Len(t, out, 1)
	assert.Equal(t, "BIG", out[0].Symbol)
}

func TestFilterQuickGainersAndLosers(t *testing.T) {
	gainers := Filter(sampleTokens(), map[QuickFilter]bool{QuickTopGainers: true}, DefaultAdvancedFilters())
	require.Len(t, gainers, 1)
	assert.Equal(t, "UP", gainers[0].Symbol)

	losers := Filter(sampleTokens(), map[QuickFilter]bool{QuickTopLosers: true}, DefaultAdvancedFilters())
	require.Len(t, losers, 1)
	assert.Equal(t, "DOWN", losers[0].Symbol)

	// AND-combined: nothing is both a gainer and a loser.
	both := Filter(sampleTokens(), map[QuickFilter]bool{
		QuickTopGainers: true,
		QuickTopLosers:  true,
	}, DefaultAdvancedFilters())
	assert.Empty(t, both)
}

func TestFilterPlaceholdersPassThrough(t *testing.T) {
	// New Listings / DeFi / Meme have no taxonomy backing and pass every
	// well-formed token.
	out := Filter(sampleTokens(), map[QuickFilter]bool{
		QuickNewListings: true,
		QuickDeFi:        true,
		QuickMeme:        true,
	}, DefaultAdvancedFilters())
	assert.Len(t, out, len(sampleTokens()))
}

func TestFilterAdvancedRanges(t *testing.T) {
	adv := DefaultAdvancedFilters()
	adv.Price = Range{Min: 2, Max: 3}

	out := Filter(sampleTokens(), nil, adv)
	require.Len(t, out, 2)
	assert.Equal(t, "DOWN", out[0].Symbol)
	assert.Equal(t, "UP", out[1].Symbol)

	adv = DefaultAdvancedFilters()
	adv.Liquidity = Range{Min: 3500, Max: 10000}
	out = Filter(sampleTokens(), nil, adv)
	require.Len(t, out, 1)
	assert.Equal(t, "FLAT", out[0].Symbol)
}

func TestFilterOnlyVerified(t *testing.T) {
	adv := DefaultAdvancedFilters()
	adv.OnlyVerified = true

	out := Filter(sampleTokens(), nil, adv)
	require.Len(t, out, 1)
	assert.Equal(t, "BIG", out[0].Symbol)
}

func TestFilterInvertedRangeMatchesNothing(t *testing.T) {
	// Min > Max is documented to produce an empty result, not an error.
	adv := DefaultAdvancedFilters()
	adv.Volume = Range{Min: 100, Max: 10}

	assert.Empty(t, Filter(sampleTokens(), nil, adv))
}

func TestFilterIdempotent(t *testing.T) {
	quick := map[QuickFilter]bool{QuickHighVolume: false, QuickTopGainers: true}
	adv := DefaultAdvancedFilters()
	adv.PriceChange = Range{Min: 0, Max: 100}

	once := Filter(sampleTokens(), quick, adv)
	twice := Filter(once, quick, adv)

	assert.Equal(t, once, twice)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tokens := sampleTokens()
	_ = Filter(tokens, nil, DefaultAdvancedFilters())
	assert.Equal(t, sampleTokens(), tokens)
}
