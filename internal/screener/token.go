// Package screener implements the client-side token pipeline: normalizing raw
// market-data records into canonical tokens, merging pairs into per-token
// aggregates, filtering, and interleaving per-chain result lists.
//
// Everything here is pure computation over data already fetched; no I/O.
package screener

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dexwatch/dexwatch/internal/dexscreener"
)

// UnknownSymbol is displayed for records that carry no symbol at all.
const UnknownSymbol = "UNKNOWN"

// Token is the canonical per-asset aggregate used across the application.
// ID is stable for the lifetime of the record: re-aggregation never changes it.
type Token struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name,omitempty"`
	PriceUsd       float64 `json:"priceUsd"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume24h      float64 `json:"volume24h"`
	MarketCap      float64 `json:"marketCap,omitempty"`
	LiquidityUsd   float64 `json:"liquidityUsd,omitempty"`
	Verified       bool    `json:"verified,omitempty"`
}

// Normalize converts one raw service record into a Token. It accepts any of
// the known source-record shapes (Pair, BoostedToken, TokenProfile, by value
// or pointer) and never fails: malformed or unrecognized input still yields a
// token with a non-empty, locally-unique ID and zeroed numeric fields.
func Normalize(raw any) Token {
	switch rec := raw.(type) {
	case Token:
		return normalizedToken(rec)
	case *Token:
		if rec != nil {
			return normalizedToken(*rec)
		}
	case dexscreener.Pair:
		return NormalizePair(rec)
	case *dexscreener.Pair:
		if rec != nil {
			return NormalizePair(*rec)
		}
	case dexscreener.BoostedToken:
		return normalizeTokenRecord(rec.TokenAddress, rec.Description)
	case *dexscreener.BoostedToken:
		if rec != nil {
			return normalizeTokenRecord(rec.TokenAddress, rec.Description)
		}
	case dexscreener.TokenProfile:
		return normalizeTokenRecord(rec.TokenAddress, rec.Description)
	case *dexscreener.TokenProfile:
		if rec != nil {
			return normalizeTokenRecord(rec.TokenAddress, rec.Description)
		}
	}
	return Token{ID: generateID(), Symbol: UnknownSymbol}
}

// NormalizePair builds a Token from a single pair record. The pair address is
// the preferred ID; the base token address is what aggregation keys on, but a
// lone pair viewed outside aggregation is identified by its pair.
func NormalizePair(p dexscreener.Pair) Token {
	id := p.PairAddress
	if id == "" {
		id = p.BaseToken.Address
	}
	if id == "" {
		id = generateID()
	}

	symbol := p.BaseToken.Symbol
	if symbol == "" {
		symbol = UnknownSymbol
	}

	t := Token{
		ID:             id,
		Symbol:         symbol,
		Name:           p.BaseToken.Name,
		PriceUsd:       ParsePrice(p.PriceUsd),
		PriceChange24h: p.PriceChange.H24,
		Volume24h:      p.Volume.H24,
		MarketCap:      p.MarketCap,
		Verified:       p.BaseToken.Verified,
	}
	if p.Liquidity != nil {
		t.LiquidityUsd = p.Liquidity.USD
	}
	return t
}

// normalizedToken repairs an already-shaped token so the ID and symbol
// invariants hold even for hand-built values.
func normalizedToken(t Token) Token {
	if t.ID == "" {
		t.ID = generateID()
	}
	if t.Symbol == "" {
		t.Symbol = UnknownSymbol
	}
	return t
}

func normalizeTokenRecord(address, description string) Token {
	id := address
	if id == "" {
		id = generateID()
	}
	return Token{
		ID:     id,
		Symbol: UnknownSymbol,
		Name:   description,
	}
}

// ParsePrice parses a decimal-encoded price string, defaulting to 0 on any
// ambiguity. Parse failures never propagate past the normalization boundary.
func ParsePrice(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// CanonicalAddress lower-cases an on-chain address so that differently-cased
// references to the same token aggregate together.
func CanonicalAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func generateID() string {
	return uuid.New().String()
}
