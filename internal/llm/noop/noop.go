package noop

import (
	"context"
	"fmt"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/types"
)

// InsightGenerator is the keyless fallback: a deterministic mock derived
// from the 24h price change, so the insight route still answers when no
// LLM provider is configured.
type InsightGenerator struct{}

// Compile-time interface check
var _ interfaces.InsightGenerator = (*InsightGenerator)(nil)

func NewInsightGenerator() *InsightGenerator {
	return &InsightGenerator{}
}

// Generate produces a mock insight from the market snapshot alone.
func (g *InsightGenerator) Generate(_ context.Context, token *types.TokenData) (types.Insight, error) {
	change24h := token.MarketData.PriceChangePct24h

	sentiment := "Neutral"
	switch {
	case change24h > 5:
		sentiment = "Bullish"
	case change24h < -5:
		sentiment = "Bearish"
	}

	direction := "negative"
	if change24h > 0 {
		direction = "positive"
	}

	return types.Insight{
		Reasoning: fmt.Sprintf("%s trading at $%v with %s 24h change of %v%%.",
			token.Name, token.MarketData.CurrentPriceUsd, direction, change24h),
		Sentiment: sentiment,
		Provider:  "mock",
		Model:     "mock",
	}, nil
}
