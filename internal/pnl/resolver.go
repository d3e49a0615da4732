package pnl

import (
	"context"
	"sync"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/types"
)

// priceResolver materializes daily close series for mark-to-market. Each
// distinct instrument is fetched at most once per engine run; the cache is
// owned by one resolver instance and never shared across requests, so
// reports stay reproducible and isolated.
type priceResolver struct {
	src    interfaces.PriceSource
	mu     sync.Mutex
	series map[string]map[string]float64
}

func newPriceResolver(src interfaces.PriceSource) *priceResolver {
	return &priceResolver{
		src:    src,
		series: make(map[string]map[string]float64),
	}
}

// Prefetch loads close series for every distinct instrument referenced by
// the positions, fetching instruments concurrently. A failed or empty fetch
// stores an empty series: unrealized PnL is best-effort, and a missing
// price must cost that term zero rather than the whole report.
func (r *priceResolver) Prefetch(ctx context.Context, positions []types.Position, start, end string) {
	coins := make([]string, 0, len(positions))
	seen := make(map[string]bool)
	for _, p := range positions {
		if p.Coin == "" || seen[p.Coin] {
			continue
		}
		seen[p.Coin] = true
		if _, cached := r.series[p.Coin]; cached {
			continue
		}
		coins = append(coins, p.Coin)
	}

	var wg sync.WaitGroup
	for _, coin := range coins {
		wg.Add(1)
		go func(coin string) {
			defer wg.Done()
			closes, err := r.src.DailyCloses(ctx, coin, start, end)
			if err != nil {
				logger.Warn(ctx, "Close price fetch failed, mark-to-market degraded",
					"coin", coin, "error", err)
				closes = map[string]float64{}
			}
			r.mu.Lock()
			r.series[coin] = closes
			r.mu.Unlock()
		}(coin)
	}
	wg.Wait()
}

// Snapshot returns the materialized coin → day → close mapping for the pure
// report computation.
func (r *priceResolver) Snapshot() map[string]map[string]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]map[string]float64, len(r.series))
	for coin, closes := range r.series {
		out[coin] = closes
	}
	return out
}
