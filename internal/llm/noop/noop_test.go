package noop

import (
	"context"
	"testing"

	"perp-pnl-service/internal/types"
)

func TestGenerateSentimentThresholds(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{8.2, "Bullish"},
		{5.0, "Neutral"},
		{0, "Neutral"},
		{-5.0, "Neutral"},
		{-6.1, "Bearish"},
	}
	g := NewInsightGenerator()
	for _, tt := range tests {
		token := &types.TokenData{
			Name:       "Bitcoin",
			MarketData: types.MarketData{PriceChangePct24h: tt.change},
		}
		insight, err := g.Generate(context.Background(), token)
		if err != nil {
			t.Fatal(err)
		}
		if insight.Sentiment != tt.want {
			t.Errorf("change %v: sentiment = %s, want %s", tt.change, insight.Sentiment, tt.want)
		}
		if insight.Provider != "mock" || insight.Model != "mock" {
			t.Errorf("attribution = %s/%s", insight.Provider, insight.Model)
		}
	}
}
