package types

import "encoding/json"

// RawTrade is a trade fill as returned by the venue. Upstream sources are
// inconsistent about field names and number encoding, so every known alias
// is kept and decoded as json.Number (accepts both numeric and
// string-encoded JSON). Resolution order lives in the pnl package.
type RawTrade struct {
	Time         json.Number `json:"time"`
	Timestamp    json.Number `json:"timestamp"`
	ClosedPxTime json.Number `json:"closedPxTime"`
	Coin         string      `json:"coin"`
	RealizedPnl  json.Number `json:"realizedPnl"`
	Pnl          json.Number `json:"pnl"`
	Fee          json.Number `json:"fee"`
}

// FundingDelta is the nested payload carrying the funding payment amount.
type FundingDelta struct {
	Coin string      `json:"coin"`
	Usdc json.Number `json:"usdc"`
}

// FundingRecord is a periodic funding payment tied to an open position.
type FundingRecord struct {
	Time      json.Number  `json:"time"`
	Timestamp json.Number  `json:"timestamp"`
	Delta     FundingDelta `json:"delta"`
	Funding   json.Number  `json:"funding"`
	Amount    json.Number  `json:"amount"`
}

// Position is an open position snapshot at query time. It is NOT a
// historical series: mark-to-market retroactively assumes the position was
// open for the whole queried range, a documented approximation forced by
// the venue exposing no historical position snapshots.
type Position struct {
	Coin    string      `json:"coin"`
	Szi     json.Number `json:"szi"`
	EntryPx json.Number `json:"entryPx"`
}

// AccountState is the venue's current view of the account.
type AccountState struct {
	Positions    []Position
	AccountValue float64
}

// DailyRow is one computed day of the PnL series. All values are rounded to
// cents at emission; equity is the running account value after the day's
// net PnL.
type DailyRow struct {
	Date       string  `json:"date"`
	Realized   float64 `json:"realized_pnl_usd"`
	Unrealized float64 `json:"unrealized_pnl_usd"`
	Fees       float64 `json:"fees_usd"`
	Funding    float64 `json:"funding_usd"`
	Net        float64 `json:"net_pnl_usd"`
	Equity     float64 `json:"equity_usd"`
}

// Summary holds range totals, each a sum of the already-rounded daily
// values.
type Summary struct {
	TotalRealized   float64 `json:"total_realized_usd"`
	TotalUnrealized float64 `json:"total_unrealized_usd"`
	TotalFees       float64 `json:"total_fees_usd"`
	TotalFunding    float64 `json:"total_funding_usd"`
	NetPnl          float64 `json:"net_pnl_usd"`
}

// Diagnostics lets a caller tell "genuinely no activity" apart from
// "upstream fetch degraded to empty".
type Diagnostics struct {
	DataSource          string `json:"data_source"`
	TradesFound         int    `json:"trades_found"`
	FundingRecordsFound int    `json:"funding_records_found"`
}

// Report is the full PnL reconstruction for one wallet and day range.
// Constructed fresh per request and immutable once returned.
type Report struct {
	Wallet      string      `json:"wallet"`
	Start       string      `json:"start"`
	End         string      `json:"end"`
	Daily       []DailyRow  `json:"daily"`
	Summary     Summary     `json:"summary"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
