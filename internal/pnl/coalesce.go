package pnl

import (
	"encoding/json"
	"strconv"

	"perp-pnl-service/internal/types"
)

// Upstream record shapes alias their fields depending on source and API
// version. The resolution order for each record kind is enumerated here,
// once, so the coalescing policy stays auditable and testable apart from
// the reduction logic.

// numberValue parses a json.Number, tolerating string-encoded floats.
// Absent or malformed values report ok=false.
func numberValue(n json.Number) (float64, bool) {
	s := n.String()
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// firstNumber returns the first alias that parses as a number, or 0.
// A malformed record degrades to a zero contribution, never an error.
func firstNumber(aliases ...json.Number) float64 {
	for _, n := range aliases {
		if f, ok := numberValue(n); ok {
			return f
		}
	}
	return 0
}

// firstTimestamp normalizes the first alias carrying a usable timestamp.
func firstTimestamp(aliases ...json.Number) (int64, bool) {
	for _, n := range aliases {
		if ts, ok := NormalizeTimestamp(n); ok {
			return ts, true
		}
	}
	return 0, false
}

// tradeTimestamp resolves a trade's instant: time, timestamp, closedPxTime.
func tradeTimestamp(t types.RawTrade) (int64, bool) {
	return firstTimestamp(t.Time, t.Timestamp, t.ClosedPxTime)
}

// tradeRealized resolves realized PnL: realizedPnl, then pnl.
func tradeRealized(t types.RawTrade) float64 {
	return firstNumber(t.RealizedPnl, t.Pnl)
}

func tradeFee(t types.RawTrade) float64 {
	return firstNumber(t.Fee)
}

// fundingTimestamp resolves a funding record's instant: time, timestamp.
func fundingTimestamp(f types.FundingRecord) (int64, bool) {
	return firstTimestamp(f.Time, f.Timestamp)
}

// fundingAmount resolves the payment: nested delta.usdc, then the
// top-level funding and amount aliases.
func fundingAmount(f types.FundingRecord) float64 {
	return firstNumber(f.Delta.Usdc, f.Funding, f.Amount)
}
