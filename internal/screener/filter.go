package screener

import (
	"math"
	"sort"
)

// QuickFilter is a named boolean predicate toggled on/off as a set.
type QuickFilter string

const (
	QuickHighVolume  QuickFilter = "High Volume"
	QuickNewListings QuickFilter = "New Listings"
	QuickTopGainers  QuickFilter = "Top Gainers"
	QuickTopLosers   QuickFilter = "Top Losers"
	QuickDeFi        QuickFilter = "DeFi"
	QuickMeme        QuickFilter = "Meme"
)

// QuickFilters lists the fixed vocabulary in display order.
var QuickFilters = []QuickFilter{
	QuickHighVolume,
	QuickNewListings,
	QuickTopGainers,
	QuickTopLosers,
	QuickDeFi,
	QuickMeme,
}

const (
	highVolumeThreshold = 100_000
	gainerThreshold     = 5
	loserThreshold      = -5
)

// Range is an inclusive [Min, Max] bound. The engine does not enforce
// Min <= Max; an inverted range simply matches nothing.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// AdvancedFilters holds the multi-field numeric range filter. Missing optional
// token fields compare as 0.
type AdvancedFilters struct {
	Price        Range
	Volume       Range
	MarketCap    Range
	Liquidity    Range
	PriceChange  Range
	OnlyVerified bool
}

// DefaultAdvancedFilters returns ranges wide enough to pass every well-formed
// token, so the default engine state is an identity filter.
func DefaultAdvancedFilters() AdvancedFilters {
	wide := Range{Min: 0, Max: math.MaxFloat64}
	return AdvancedFilters{
		Price:       wide,
		Volume:      wide,
		MarketCap:   wide,
		Liquidity:   wide,
		PriceChange: Range{Min: -math.MaxFloat64, Max: math.MaxFloat64},
	}
}

// Filter applies the enabled quick filters (AND-combined) and the advanced
// ranges to tokens, returning a new slice descending-sorted by 24h volume.
// Ties preserve relative input order.
//
// New Listings, DeFi and Meme are pass-through placeholders: the service
// exposes no listing-age or category taxonomy, so their predicate is just
// "token has a symbol". Kept deliberately rather than inventing one.
func Filter(tokens []Token, quick map[QuickFilter]bool, adv AdvancedFilters) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if matchesQuick(t, quick) && matchesAdvanced(t, adv) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Volume24h > out[j].Volume24h
	})
	return out
}

func matchesQuick(t Token, quick map[QuickFilter]bool) bool {
	for name, enabled := range quick {
		if !enabled {
			continue
		}
		switch name {
		case QuickHighVolume:
			if t.Volume24h <= highVolumeThreshold {
				return false
			}
		case QuickTopGainers:
			if t.PriceChange24h <= gainerThreshold {
				return false
			}
		case QuickTopLosers:
			if t.PriceChange24h >= loserThreshold {
				return false
			}
		case QuickNewListings, QuickDeFi, QuickMeme:
			if t.Symbol == "" {
				return false
			}
		}
	}
	return true
}

func matchesAdvanced(t Token, adv AdvancedFilters) bool {
	if adv.OnlyVerified && !t.Verified {
		return false
	}
	return adv.Price.Contains(t.PriceUsd) &&
		adv.Volume.Contains(t.Volume24h) &&
		adv.MarketCap.Contains(t.MarketCap) &&
		adv.Liquidity.Contains(t.LiquidityUsd) &&
		adv.PriceChange.Contains(t.PriceChange24h)
}
