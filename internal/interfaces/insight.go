package interfaces

import (
	"context"

	"perp-pnl-service/internal/types"
)

// InsightGenerator turns a token market snapshot into a short analyst read.
type InsightGenerator interface {
	Generate(ctx context.Context, token *types.TokenData) (types.Insight, error)
}
