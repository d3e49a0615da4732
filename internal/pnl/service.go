package pnl

import (
	"context"
	"fmt"
	"sync"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/types"
)

// Service joins the venue and price collaborators to the pure engine. The
// three account fetches are independent and issued concurrently; a failure
// in any one degrades to an empty result at the join point and never fails
// the others.
type Service struct {
	venue          interfaces.Venue
	prices         interfaces.PriceSource
	fallbackEquity float64
}

// Compile-time interface check
var _ interfaces.Reporter = (*Service)(nil)

// NewService creates a PnL reporter over the given collaborators.
// fallbackEquity is the placeholder starting equity used when the venue
// reports no account value.
func NewService(venue interfaces.Venue, prices interfaces.PriceSource, fallbackEquity float64) *Service {
	return &Service{venue: venue, prices: prices, fallbackEquity: fallbackEquity}
}

// GetWalletPnL computes the daily PnL report for a wallet between two
// YYYY-MM-DD day keys, both inclusive.
func (s *Service) GetWalletPnL(ctx context.Context, wallet, start, end string) (*types.Report, error) {
	startT, err := ParseDayKey(start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endT, err := ParseDayKey(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if endT.Before(startT) {
		return nil, ErrInvalidRange
	}

	var (
		wg      sync.WaitGroup
		trades  []types.RawTrade
		funding []types.FundingRecord
		state   types.AccountState
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		t, err := s.venue.FetchTrades(ctx, wallet)
		if err != nil {
			logger.Warn(ctx, "Trade fetch failed, continuing with no trades", "wallet", wallet, "error", err)
			return
		}
		trades = t
	}()
	go func() {
		defer wg.Done()
		f, err := s.venue.FetchFunding(ctx, wallet)
		if err != nil {
			logger.Warn(ctx, "Funding fetch failed, continuing with no funding", "wallet", wallet, "error", err)
			return
		}
		funding = f
	}()
	go func() {
		defer wg.Done()
		st, err := s.venue.FetchState(ctx, wallet)
		if err != nil {
			logger.Warn(ctx, "State fetch failed, continuing with empty account state", "wallet", wallet, "error", err)
			return
		}
		state = st
	}()
	wg.Wait()

	startingEquity := state.AccountValue
	if startingEquity == 0 {
		logger.Warn(ctx, "No account value from venue, using placeholder starting equity",
			"wallet", wallet, "fallback", s.fallbackEquity)
		startingEquity = s.fallbackEquity
	}

	resolver := newPriceResolver(s.prices)
	resolver.Prefetch(ctx, state.Positions, start, end)

	return ComputeReport(ctx, wallet, startT, endT, Inputs{
		Trades:         trades,
		Funding:        funding,
		Positions:      state.Positions,
		StartingEquity: startingEquity,
		Closes:         resolver.Snapshot(),
	})
}
