package llm

import (
	"fmt"
	"strings"

	"perp-pnl-service/internal/types"
)

// BuildPrompt renders the structured analyst prompt for a token snapshot.
// The model is instructed to answer with JSON only; ParseInsight handles
// the models that ignore that.
func BuildPrompt(token *types.TokenData) string {
	md := token.MarketData

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following cryptocurrency token and provide insights:\n\n")
	fmt.Fprintf(&b, "Token: %s (%s)\n", token.Name, strings.ToUpper(token.Symbol))
	fmt.Fprintf(&b, "Current Price: $%v\n", md.CurrentPriceUsd)
	fmt.Fprintf(&b, "Market Cap: $%.2fB\n", md.MarketCapUsd/1e9)
	fmt.Fprintf(&b, "24h Volume: $%.2fM\n", md.TotalVolumeUsd/1e6)
	fmt.Fprintf(&b, "24h Change: %v%%\n", md.PriceChangePct24h)
	fmt.Fprintf(&b, "7d Change: %v%%\n", md.PriceChangePct7d)
	fmt.Fprintf(&b, "30d Change: %v%%", md.PriceChangePct30d)

	if len(token.HistoricalData) > 0 {
		b.WriteString("\n\nHistorical data available for analysis.")
	}

	b.WriteString("\n\nRespond with valid JSON only:\n")
	b.WriteString(`{
  "reasoning": "Brief analysis of the token's market position and trends",
  "sentiment": "Bullish" | "Bearish" | "Neutral"
}`)

	return b.String()
}
