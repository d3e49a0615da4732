package interfaces

import (
	"context"

	"perp-pnl-service/internal/types"
)

// Reporter computes the daily PnL report for a wallet. Only Report-level
// types cross this boundary; the engine's internals stay internal.
type Reporter interface {
	GetWalletPnL(ctx context.Context, wallet, start, end string) (*types.Report, error)
}
