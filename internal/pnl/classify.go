package pnl

import "perp-pnl-service/internal/types"

// TradesOn returns the trades whose normalized timestamp falls on the UTC
// day identified by day. Records with no resolvable timestamp belong to no
// day and are excluded from every total. Input is never mutated; across the
// full range the per-day subsets exactly partition the resolvable records.
func TradesOn(trades []types.RawTrade, day string) []types.RawTrade {
	var out []types.RawTrade
	for _, t := range trades {
		ts, ok := tradeTimestamp(t)
		if !ok {
			continue
		}
		if DayKeyOf(ts) == day {
			out = append(out, t)
		}
	}
	return out
}

// FundingOn is the funding-record counterpart of TradesOn.
func FundingOn(records []types.FundingRecord, day string) []types.FundingRecord {
	var out []types.FundingRecord
	for _, f := range records {
		ts, ok := fundingTimestamp(f)
		if !ok {
			continue
		}
		if DayKeyOf(ts) == day {
			out = append(out, f)
		}
	}
	return out
}
