package screener

import (
	"github.com/dexwatch/dexwatch/internal/dexscreener"
)

// Aggregate merges pair records that reference the same base token into one
// Token per distinct lowercase base-token address. Volume and liquidity are
// summed across contributing pairs; price and 24h change always come from the
// single contributing pair with maximal liquidity, so the displayed price
// reflects the deepest market. A liquidity tie keeps the first-seen price.
//
// Pairs whose base token address is absent are skipped. That is a filtering
// rule, not an error: the service legitimately returns such records.
//
// Output order is the insertion order of each token's first occurrence.
func Aggregate(pairs []dexscreener.Pair) []Token {
	type aggregate struct {
		token   Token
		bestLiq float64
	}

	index := make(map[string]int, len(pairs))
	aggs := make([]aggregate, 0, len(pairs))

	for _, p := range pairs {
		addr := CanonicalAddress(p.BaseToken.Address)
		if addr == "" {
			continue
		}

		var pairLiq float64
		if p.Liquidity != nil {
			pairLiq = p.Liquidity.USD
		}

		i, seen := index[addr]
		if !seen {
			index[addr] = len(aggs)
			aggs = append(aggs, aggregate{token: NormalizePair(p), bestLiq: pairLiq})
			continue
		}

		agg := &aggs[i]
		agg.token.Volume24h += p.Volume.H24
		agg.token.LiquidityUsd += pairLiq
		if pairLiq > agg.bestLiq {
			agg.token.PriceUsd = ParsePrice(p.PriceUsd)
			agg.token.PriceChange24h = p.PriceChange.H24
			agg.bestLiq = pairLiq
		}
	}

	tokens := make([]Token, len(aggs))
	for i, agg := range aggs {
		tokens[i] = agg.token
	}
	return tokens
}
