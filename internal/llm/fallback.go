package llm

import (
	"context"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/types"
)

// fallbackGenerator tries a primary generator and degrades to a fallback
// (normally the deterministic mock) when the provider errors. The insight
// route answers with a mock rather than a 5xx when the model is down.
type fallbackGenerator struct {
	primary  interfaces.InsightGenerator
	fallback interfaces.InsightGenerator
}

// Compile-time interface check
var _ interfaces.InsightGenerator = (*fallbackGenerator)(nil)

// WithFallback chains two generators, primary first.
func WithFallback(primary, fallback interfaces.InsightGenerator) interfaces.InsightGenerator {
	return &fallbackGenerator{primary: primary, fallback: fallback}
}

func (g *fallbackGenerator) Generate(ctx context.Context, token *types.TokenData) (types.Insight, error) {
	insight, err := g.primary.Generate(ctx, token)
	if err == nil {
		return insight, nil
	}
	logger.Warn(ctx, "Primary insight provider failed, using fallback",
		"token", token.ID, "error", err)
	return g.fallback.Generate(ctx, token)
}
