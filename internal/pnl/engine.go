package pnl

import (
	"context"
	"errors"
	"math"
	"time"

	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/types"
)

// ErrInvalidRange is the engine's only fatal precondition: an end date
// before the start date. Every other upstream problem degrades to a
// zero/skip/reset recorded in diagnostics.
var ErrInvalidRange = errors.New("invalid day range: end precedes start")

// Inputs are the already-materialized collaborator results one report is
// computed from. The engine performs no I/O of its own.
type Inputs struct {
	Trades         []types.RawTrade
	Funding        []types.FundingRecord
	Positions      []types.Position
	StartingEquity float64
	// Closes maps coin → day key → reference close price.
	Closes map[string]map[string]float64
}

// ComputeReport reconstructs the daily PnL series and equity curve for one
// wallet across an inclusive day range. It is a pure function of its
// inputs: same inputs, byte-identical report. ctx is used only to attach
// data-quality log events.
//
// Per day: realized, fees, and funding are coalesced sums over that day's
// records; unrealized marks every open position against the day's close
// (the position snapshot is assumed open for the whole range — there are no
// historical snapshots to do better with); net = realized + unrealized -
// fees + funding; equity rolls the unrounded net onto the previous day's
// unrounded equity. Rounding to cents happens only at emission.
func ComputeReport(ctx context.Context, wallet string, start, end time.Time, in Inputs) (*types.Report, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	days := DayKeysBetween(start, end)
	daily := make([]types.DailyRow, 0, len(days))
	equity := in.StartingEquity

	for _, day := range days {
		var realized, fees float64
		for _, t := range TradesOn(in.Trades, day) {
			realized += tradeRealized(t)
			fees += tradeFee(t)
		}

		var funding float64
		for _, f := range FundingOn(in.Funding, day) {
			funding += fundingAmount(f)
		}

		var unrealized float64
		for _, p := range in.Positions {
			size, okSize := numberValue(p.Szi)
			entry, okEntry := numberValue(p.EntryPx)
			close, okClose := closeFor(in.Closes, p.Coin, day)
			// A missing factor skips the whole term. Substituting zero
			// inside the product would fabricate PnL.
			if !okSize || size == 0 || !okEntry || entry == 0 || !okClose || close == 0 {
				continue
			}
			unrealized += size * (close - entry)
		}

		net := realized + unrealized - fees + funding
		equity += net
		if math.IsNaN(equity) || math.IsInf(equity, 0) {
			// One corrupted day must not poison the rest of the series.
			logger.DataQuality(ctx, wallet, "non_finite_equity_reset", "date", day)
			equity = in.StartingEquity
		}

		daily = append(daily, types.DailyRow{
			Date:       day,
			Realized:   round2(realized),
			Unrealized: round2(unrealized),
			Fees:       round2(fees),
			Funding:    round2(funding),
			Net:        round2(net),
			Equity:     round2(equity),
		})
	}

	return &types.Report{
		Wallet:      wallet,
		Start:       start.UTC().Format(dayKeyLayout),
		End:         end.UTC().Format(dayKeyLayout),
		Daily:       daily,
		Summary:     summarize(daily),
		Diagnostics: diagnose(in),
	}, nil
}

// summarize reduces the daily series to range totals. Deliberately a sum of
// the already-rounded daily values, not a re-derivation from raw inputs, to
// stay reproducible against the reference output.
func summarize(daily []types.DailyRow) types.Summary {
	var s types.Summary
	for _, d := range daily {
		s.TotalRealized += d.Realized
		s.TotalUnrealized += d.Unrealized
		s.TotalFees += d.Fees
		s.TotalFunding += d.Funding
		s.NetPnl += d.Net
	}
	s.TotalRealized = round2(s.TotalRealized)
	s.TotalUnrealized = round2(s.TotalUnrealized)
	s.TotalFees = round2(s.TotalFees)
	s.TotalFunding = round2(s.TotalFunding)
	s.NetPnl = round2(s.NetPnl)
	return s
}

func diagnose(in Inputs) types.Diagnostics {
	source := "hyperliquid_api"
	if len(in.Trades) == 0 && len(in.Funding) == 0 {
		source = "hyperliquid_api_no_data"
	}
	return types.Diagnostics{
		DataSource:          source,
		TradesFound:         len(in.Trades),
		FundingRecordsFound: len(in.Funding),
	}
}

func closeFor(closes map[string]map[string]float64, coin, day string) (float64, bool) {
	series, ok := closes[coin]
	if !ok {
		return 0, false
	}
	price, ok := series[day]
	return price, ok
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
