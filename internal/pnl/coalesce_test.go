package pnl

import (
	"encoding/json"
	"testing"

	"perp-pnl-service/internal/types"
)

func TestTradeRealizedAliasOrder(t *testing.T) {
	// realizedPnl wins even when pnl is also present.
	both := types.RawTrade{RealizedPnl: json.Number("150"), Pnl: json.Number("-9")}
	if got := tradeRealized(both); got != 150 {
		t.Errorf("got %v, want 150", got)
	}
	// pnl is the fallback.
	only := types.RawTrade{Pnl: json.Number("-9")}
	if got := tradeRealized(only); got != -9 {
		t.Errorf("got %v, want -9", got)
	}
	// Neither alias contributes zero, not an error.
	if got := tradeRealized(types.RawTrade{}); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestTradeTimestampAliasOrder(t *testing.T) {
	tr := types.RawTrade{
		Timestamp:    json.Number("1735862400000"),
		ClosedPxTime: json.Number("1735948800000"),
	}
	ts, ok := tradeTimestamp(tr)
	if !ok || ts != 1735862400000 {
		t.Fatalf("got %d ok=%v, want timestamp alias 1735862400000", ts, ok)
	}

	tr.Time = json.Number("1735776000000")
	ts, ok = tradeTimestamp(tr)
	if !ok || ts != 1735776000000 {
		t.Fatalf("got %d ok=%v, want time alias 1735776000000", ts, ok)
	}
}

func TestTradeTimestampSkipsZeroAlias(t *testing.T) {
	// A zero first alias falls through to the next one.
	tr := types.RawTrade{Time: json.Number("0"), Timestamp: json.Number("1735776000")}
	ts, ok := tradeTimestamp(tr)
	if !ok || ts != 1735776000000 {
		t.Fatalf("got %d ok=%v, want fallback 1735776000000", ts, ok)
	}
}

func TestFundingAmountAliasOrder(t *testing.T) {
	rec := types.FundingRecord{
		Delta:   types.FundingDelta{Usdc: json.Number("-0.42")},
		Funding: json.Number("99"),
		Amount:  json.Number("7"),
	}
	if got := fundingAmount(rec); got != -0.42 {
		t.Errorf("got %v, want nested delta.usdc -0.42", got)
	}

	rec.Delta.Usdc = ""
	if got := fundingAmount(rec); got != 99 {
		t.Errorf("got %v, want funding alias 99", got)
	}

	rec.Funding = ""
	if got := fundingAmount(rec); got != 7 {
		t.Errorf("got %v, want amount alias 7", got)
	}
}

func TestTradesOnPartitionsResolvableRecords(t *testing.T) {
	trades := []types.RawTrade{
		{Time: json.Number("1735776000000"), RealizedPnl: json.Number("1")}, // 2025-01-02
		{Time: json.Number("1735862400000"), RealizedPnl: json.Number("2")}, // 2025-01-03
		{RealizedPnl: json.Number("3")},                                     // no timestamp, belongs nowhere
	}

	start, _ := ParseDayKey("2025-01-01")
	end, _ := ParseDayKey("2025-01-04")
	var matched int
	for _, day := range DayKeysBetween(start, end) {
		matched += len(TradesOn(trades, day))
	}
	if matched != 2 {
		t.Errorf("matched %d trades across range, want 2 (timestampless record excluded)", matched)
	}

	if got := TradesOn(trades, "2025-01-02"); len(got) != 1 || got[0].RealizedPnl != "1" {
		t.Errorf("day 2025-01-02 got %v", got)
	}
}
