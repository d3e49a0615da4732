package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"perp-pnl-service/internal/httpapi"
	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/trace"
	"perp-pnl-service/internal/types"
)

// ErrTokenNotFound is returned when CoinGecko does not know the token id.
var ErrTokenNotFound = errors.New("token not found")

// coinIDs maps venue coin symbols to CoinGecko ids. Instruments outside
// this map get no mark-to-market prices (empty series, not an error).
var coinIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
}

// Client fetches prices and token data from the public CoinGecko API.
// The public tier is aggressively rate limited, so every request goes
// through a client-side limiter.
type Client struct {
	api        *httpapi.Client
	vsCurrency string
	limiter    *rate.Limiter
}

// Compile-time interface check
var _ interfaces.PriceSource = (*Client)(nil)

// NewClient creates a price-source client.
func NewClient(baseURL, vsCurrency string, timeout time.Duration, ratePerSecond float64, burst int) *Client {
	return &Client{
		api: httpapi.NewClient(
			httpapi.WithBaseURL(baseURL),
			httpapi.WithTimeout(timeout),
		),
		vsCurrency: vsCurrency,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), burst),
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	resp, err := c.api.GET(ctx, path)
	if err != nil {
		return err
	}
	return json.Unmarshal(resp.Body, out)
}

// DailyCloses returns one close price per UTC day for the coin across the
// inclusive range. CoinGecko returns intraday samples; the last sample
// observed for a day wins, which is what "daily close" means here. Unknown
// coins return an empty map so mark-to-market degrades instead of failing.
func (c *Client) DailyCloses(ctx context.Context, coin, start, end string) (map[string]float64, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko.DailyCloses")
	defer span.End()

	id, ok := coinIDs[coin]
	if !ok {
		logger.Debug(ctx, "No CoinGecko id for coin, returning empty close series", "coin", coin)
		return map[string]float64{}, nil
	}

	startT, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endT, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	path := fmt.Sprintf("/coins/%s/market_chart/range?vs_currency=%s&from=%d&to=%d",
		id, c.vsCurrency, startT.Unix(), endT.Unix())

	var chart struct {
		Prices [][2]float64 `json:"prices"`
	}
	if err := c.get(ctx, path, &chart); err != nil {
		return nil, fmt.Errorf("coingecko market chart for %s: %w", coin, err)
	}

	daily := make(map[string]float64, len(chart.Prices))
	for _, sample := range chart.Prices {
		day := time.UnixMilli(int64(sample[0])).UTC().Format("2006-01-02")
		daily[day] = sample[1] // last sample of the day wins
	}
	return daily, nil
}

// tokenResponse is the subset of /coins/{id} the insight route needs.
type tokenResponse struct {
	ID         string `json:"id"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	MarketData struct {
		CurrentPrice   map[string]float64 `json:"current_price"`
		MarketCap      map[string]float64 `json:"market_cap"`
		TotalVolume    map[string]float64 `json:"total_volume"`
		PriceChange24h map[string]float64 `json:"price_change_percentage_24h_in_currency"`
		PriceChange7d  map[string]float64 `json:"price_change_percentage_7d_in_currency"`
		PriceChange30d map[string]float64 `json:"price_change_percentage_30d_in_currency"`
	} `json:"market_data"`
}

// TokenData fetches token metadata and market data, optionally with
// historyDays of price history. History is best-effort: a failed history
// fetch logs a warning and returns the snapshot without it.
func (c *Client) TokenData(ctx context.Context, tokenID, vsCurrency string, historyDays int) (*types.TokenData, error) {
	ctx, span := trace.StartSpan(ctx, "coingecko.TokenData")
	defer span.End()

	if vsCurrency == "" {
		vsCurrency = c.vsCurrency
	}

	path := fmt.Sprintf("/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false",
		url.PathEscape(tokenID))

	var raw tokenResponse
	if err := c.get(ctx, path, &raw); err != nil {
		var statusErr *httpapi.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrTokenNotFound, tokenID)
		}
		return nil, fmt.Errorf("coingecko token data for %s: %w", tokenID, err)
	}

	token := &types.TokenData{
		ID:     raw.ID,
		Symbol: raw.Symbol,
		Name:   raw.Name,
		MarketData: types.MarketData{
			CurrentPriceUsd:   raw.MarketData.CurrentPrice[vsCurrency],
			MarketCapUsd:      raw.MarketData.MarketCap[vsCurrency],
			TotalVolumeUsd:    raw.MarketData.TotalVolume[vsCurrency],
			PriceChangePct24h: raw.MarketData.PriceChange24h[vsCurrency],
			PriceChangePct7d:  raw.MarketData.PriceChange7d[vsCurrency],
			PriceChangePct30d: raw.MarketData.PriceChange30d[vsCurrency],
		},
	}

	if historyDays > 0 {
		historyPath := fmt.Sprintf("/coins/%s/market_chart?vs_currency=%s&days=%d",
			url.PathEscape(tokenID), vsCurrency, historyDays)
		var history json.RawMessage
		if err := c.get(ctx, historyPath, &history); err != nil {
			logger.Warn(ctx, "Failed to fetch token price history", "token", tokenID, "error", err)
		} else {
			token.HistoricalData = history
		}
	}

	return token, nil
}
