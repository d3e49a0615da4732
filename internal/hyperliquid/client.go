package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"perp-pnl-service/internal/httpapi"
	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/trace"
	"perp-pnl-service/internal/types"
)

// Client talks to the Hyperliquid info endpoint. All queries are POSTs to
// /info with a type discriminator.
type Client struct {
	api *httpapi.Client
}

// Compile-time interface check
var _ interfaces.Venue = (*Client)(nil)

// NewClient creates a venue client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		api: httpapi.NewClient(
			httpapi.WithBaseURL(baseURL),
			httpapi.WithTimeout(timeout),
		),
	}
}

type infoRequest struct {
	Type string `json:"type"`
	User string `json:"user"`
}

func (c *Client) info(ctx context.Context, reqType, wallet string, out any) error {
	resp, err := c.api.POST(ctx, "/info", infoRequest{Type: reqType, User: wallet})
	if err != nil {
		return fmt.Errorf("hyperliquid %s: %w", reqType, err)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("hyperliquid %s: decoding response: %w", reqType, err)
	}
	return nil
}

// FetchTrades retrieves the wallet's trade fills. The userTrades query is
// tried first, then the userFills variant some deployments expose instead;
// the chain stands in for the original SDK-then-raw-request fallback.
func (c *Client) FetchTrades(ctx context.Context, wallet string) ([]types.RawTrade, error) {
	ctx, span := trace.StartSpan(ctx, "hyperliquid.FetchTrades")
	defer span.End()

	var trades []types.RawTrade
	if err := c.info(ctx, "userTrades", wallet, &trades); err != nil {
		logger.Debug(ctx, "userTrades query failed, trying userFills", "wallet", wallet, "error", err)
		if err2 := c.info(ctx, "userFills", wallet, &trades); err2 != nil {
			return nil, err2
		}
	}
	return trades, nil
}

// FetchFunding retrieves the wallet's funding payment history.
func (c *Client) FetchFunding(ctx context.Context, wallet string) ([]types.FundingRecord, error) {
	ctx, span := trace.StartSpan(ctx, "hyperliquid.FetchFunding")
	defer span.End()

	var funding []types.FundingRecord
	if err := c.info(ctx, "userFunding", wallet, &funding); err != nil {
		return nil, err
	}
	return funding, nil
}

// assetPosition tolerates both the flat position shape and the
// clearinghouse shape that nests it under "position".
type assetPosition struct {
	types.Position
	Nested *types.Position `json:"position"`
}

type clearinghouseState struct {
	AssetPositions []assetPosition `json:"assetPositions"`
	MarginSummary  struct {
		AccountValue json.Number `json:"accountValue"`
	} `json:"marginSummary"`
	AccountValue json.Number `json:"accountValue"`
}

// FetchState retrieves open positions and the current account value.
func (c *Client) FetchState(ctx context.Context, wallet string) (types.AccountState, error) {
	ctx, span := trace.StartSpan(ctx, "hyperliquid.FetchState")
	defer span.End()

	var raw clearinghouseState
	if err := c.info(ctx, "clearinghouseState", wallet, &raw); err != nil {
		return types.AccountState{}, err
	}

	state := types.AccountState{
		Positions: make([]types.Position, 0, len(raw.AssetPositions)),
	}
	for _, ap := range raw.AssetPositions {
		pos := ap.Position
		if ap.Nested != nil {
			pos = *ap.Nested
		}
		state.Positions = append(state.Positions, pos)
	}

	// marginSummary.accountValue first, top-level accountValue as fallback
	if v, err := raw.MarginSummary.AccountValue.Float64(); err == nil {
		state.AccountValue = v
	} else if v, err := raw.AccountValue.Float64(); err == nil {
		state.AccountValue = v
	}

	return state, nil
}
