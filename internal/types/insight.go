package types

import "encoding/json"

// MarketData is the slice of CoinGecko market data the insight prompt uses.
type MarketData struct {
	CurrentPriceUsd   float64 `json:"current_price_usd"`
	MarketCapUsd      float64 `json:"market_cap_usd"`
	TotalVolumeUsd    float64 `json:"total_volume_usd"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	PriceChangePct7d  float64 `json:"price_change_percentage_7d"`
	PriceChangePct30d float64 `json:"price_change_percentage_30d"`
}

// TokenData is a token market snapshot from the price source.
type TokenData struct {
	ID             string          `json:"id"`
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	MarketData     MarketData      `json:"market_data"`
	HistoricalData json.RawMessage `json:"historical_data,omitempty"`
}

// Insight is an LLM-generated read on a token.
type Insight struct {
	Reasoning string `json:"reasoning"`
	Sentiment string `json:"sentiment"` // Bullish, Bearish, or Neutral
	Provider  string `json:"provider"`
	Model     string `json:"model"`
}
