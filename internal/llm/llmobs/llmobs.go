package llmobs

import (
	"context"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/trace"
	"perp-pnl-service/internal/types"
)

// observableGenerator wraps an InsightGenerator with observability
// (logging & tracing)
type observableGenerator struct {
	generator interfaces.InsightGenerator
}

// Compile-time interface check
var _ interfaces.InsightGenerator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(generator interfaces.InsightGenerator) interfaces.InsightGenerator {
	return &observableGenerator{
		generator: generator,
	}
}

// Generate produces a token insight with observability
func (og *observableGenerator) Generate(ctx context.Context, token *types.TokenData) (types.Insight, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting token insight",
		"token", token.ID,
		"price", token.MarketData.CurrentPriceUsd,
	)

	insight, err := og.generator.Generate(ctx, token)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to generate insight", err,
			"token", token.ID,
		)
		return types.Insight{}, err
	}

	logger.InfoSkip(ctx, 1, "Token insight generated",
		"token", token.ID,
		"sentiment", insight.Sentiment,
		"provider", insight.Provider,
		"model", insight.Model,
	)

	return insight, nil
}
