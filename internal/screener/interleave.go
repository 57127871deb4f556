package screener

import (
	"github.com/dexwatch/dexwatch/internal/dexscreener"
)

// DefaultInterleaveLimit caps the merged display list.
const DefaultInterleaveLimit = 16

// Interleave merges per-chain pair lists into one display list using
// round-robin sweeps over chains, so every chain gets fair representation
// instead of chain-by-chain concatenation. Per-chain order is preserved.
// Chains with exhausted supply are skipped while the rest keep contributing.
// Pairs tagged with a chain not present in chains are dropped.
//
// limit caps the output length; limit <= 0 means DefaultInterleaveLimit.
func Interleave(pairs []dexscreener.Pair, chains []string, limit int) []dexscreener.Pair {
	if limit <= 0 {
		limit = DefaultInterleaveLimit
	}

	byChain := make(map[string][]dexscreener.Pair, len(chains))
	for _, p := range pairs {
		byChain[p.ChainID] = append(byChain[p.ChainID], p)
	}

	out := make([]dexscreener.Pair, 0, limit)
	cursor := make(map[string]int, len(chains))

	for len(out) < limit {
		emitted := false
		for _, chain := range chains {
			group := byChain[chain]
			if cursor[chain] >= len(group) {
				continue
			}
			out = append(out, group[cursor[chain]])
			cursor[chain]++
			emitted = true
			if len(out) == limit {
				break
			}
		}
		if !emitted {
			break
		}
	}
	return out
}
