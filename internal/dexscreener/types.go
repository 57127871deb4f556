package dexscreener

// Wire types for the DexScreener latest/dex API. Fields mirror the JSON schema;
// numeric prices arrive as decimal-encoded strings and are parsed at the
// normalization boundary, not here.

// SearchResponse is the envelope returned by the pair search and token-pairs
// endpoints.
type SearchResponse struct {
	SchemaVersion string `json:"schemaVersion"`
	Pairs         []Pair `json:"pairs"`
}

// Pair is a single tradable base/quote combination as reported by the service.
type Pair struct {
	ChainID       string        `json:"chainId"`
	DexID         string        `json:"dexId"`
	URL           string        `json:"url"`
	PairAddress   string        `json:"pairAddress"`
	BaseToken     TokenInfo     `json:"baseToken"`
	QuoteToken    TokenInfo     `json:"quoteToken"`
	PriceNative   string        `json:"priceNative"`
	PriceUsd      string        `json:"priceUsd"`
	Txns          TxnsInfo      `json:"txns"`
	Volume        PeriodValues  `json:"volume"`
	PriceChange   PeriodValues  `json:"priceChange"`
	Liquidity     *LiquidityInfo `json:"liquidity"`
	FDV           float64       `json:"fdv"`
	MarketCap     float64       `json:"marketCap"`
	PairCreatedAt int64         `json:"pairCreatedAt"`
}

// TokenInfo identifies one side of a pair.
type TokenInfo struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Verified bool   `json:"verified,omitempty"`
}

// LiquidityInfo is nullable in the API, hence the pointer on Pair.
type LiquidityInfo struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// PeriodValues holds per-window metrics (volume, price change).
type PeriodValues struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// TxnsInfo holds buy/sell counts per window.
type TxnsInfo struct {
	M5  TxnCounts `json:"m5"`
	H1  TxnCounts `json:"h1"`
	H6  TxnCounts `json:"h6"`
	H24 TxnCounts `json:"h24"`
}

type TxnCounts struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// BoostedToken is an entry from the token-boosts endpoints. It references a
// token, not a pair; pair data has to be resolved separately.
type BoostedToken struct {
	URL          string      `json:"url"`
	ChainID      string      `json:"chainId"`
	TokenAddress string      `json:"tokenAddress"`
	Icon         string      `json:"icon"`
	Header       string      `json:"header"`
	Description  string      `json:"description"`
	Amount       float64     `json:"amount"`
	TotalAmount  float64     `json:"totalAmount"`
	Links        []TokenLink `json:"links"`
}

// TokenProfile is an entry from the token-profiles endpoint.
type TokenProfile struct {
	URL          string      `json:"url"`
	ChainID      string      `json:"chainId"`
	TokenAddress string      `json:"tokenAddress"`
	Icon         string      `json:"icon"`
	Header       string      `json:"header"`
	Description  string      `json:"description"`
	Links        []TokenLink `json:"links"`
}

type TokenLink struct {
	Type  string `json:"type,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url"`
}
