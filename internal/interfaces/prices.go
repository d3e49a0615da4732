package interfaces

import (
	"context"

	"perp-pnl-service/internal/types"
)

// PriceSource supplies historical close prices and token market snapshots.
type PriceSource interface {
	// DailyCloses returns one reference close per UTC day key for the
	// instrument across the inclusive range. Unknown instruments return an
	// empty map, not an error.
	DailyCloses(ctx context.Context, coin, start, end string) (map[string]float64, error)

	// TokenData fetches metadata and market data for a token, optionally
	// with historyDays of historical prices (0 = none).
	TokenData(ctx context.Context, tokenID, vsCurrency string, historyDays int) (*types.TokenData, error)
}
