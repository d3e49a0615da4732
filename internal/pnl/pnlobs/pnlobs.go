package pnlobs

import (
	"context"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/trace"
	"perp-pnl-service/internal/types"
)

// observableReporter wraps a Reporter with observability (logging & tracing)
type observableReporter struct {
	reporter interfaces.Reporter
}

// Compile-time interface check
var _ interfaces.Reporter = (*observableReporter)(nil)

// Wrap wraps a reporter with observability middleware
func Wrap(reporter interfaces.Reporter) interfaces.Reporter {
	return &observableReporter{
		reporter: reporter,
	}
}

// GetWalletPnL computes a PnL report with observability
func (or *observableReporter) GetWalletPnL(ctx context.Context, wallet, start, end string) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "pnl.GetWalletPnL")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Computing wallet PnL report",
		"wallet", wallet,
		"start", start,
		"end", end,
	)

	report, err := or.reporter.GetWalletPnL(ctx, wallet, start, end)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to compute PnL report", err,
			"wallet", wallet,
			"start", start,
			"end", end,
		)
		return nil, err
	}

	logger.InfoSkip(ctx, 1, "PnL report computed",
		"wallet", wallet,
		"days", len(report.Daily),
		"trades_found", report.Diagnostics.TradesFound,
		"funding_records_found", report.Diagnostics.FundingRecordsFound,
		"data_source", report.Diagnostics.DataSource,
	)

	return report, nil
}
