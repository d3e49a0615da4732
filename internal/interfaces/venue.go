package interfaces

import (
	"context"

	"perp-pnl-service/internal/types"
)

// Venue provides the three account-scoped fetches the PnL engine consumes.
// Implementations degrade to empty/zero results on upstream failure rather
// than returning an error the engine would have to handle.
type Venue interface {
	FetchTrades(ctx context.Context, wallet string) ([]types.RawTrade, error)
	FetchFunding(ctx context.Context, wallet string) ([]types.FundingRecord, error)
	FetchState(ctx context.Context, wallet string) (types.AccountState, error)
}
