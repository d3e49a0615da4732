package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"perp-pnl-service/internal/coingecko"
	"perp-pnl-service/internal/store"
	"perp-pnl-service/internal/types"
)

type stubReporter struct {
	report *types.Report
	err    error
}

func (s *stubReporter) GetWalletPnL(_ context.Context, wallet, start, end string) (*types.Report, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.report != nil {
		return s.report, nil
	}
	return &types.Report{Wallet: wallet, Start: start, End: end}, nil
}

type stubPrices struct {
	token *types.TokenData
	err   error
}

func (s *stubPrices) DailyCloses(context.Context, string, string, string) (map[string]float64, error) {
	return map[string]float64{}, nil
}

func (s *stubPrices) TokenData(context.Context, string, string, int) (*types.TokenData, error) {
	return s.token, s.err
}

type stubInsight struct {
	insight types.Insight
	err     error
}

func (s *stubInsight) Generate(context.Context, *types.TokenData) (types.Insight, error) {
	return s.insight, s.err
}

func newTestServer(reporter *stubReporter, prices *stubPrices, insight *stubInsight) *Server {
	gin.SetMode(gin.TestMode)
	cfg := store.DefaultConfig()
	return NewServer(cfg, reporter, prices, insight)
}

func doRequest(s *Server, method, target string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(&stubReporter{}, &stubPrices{}, &stubInsight{})
	w := doRequest(s, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestWalletPnLValidation(t *testing.T) {
	s := newTestServer(&stubReporter{}, &stubPrices{}, &stubInsight{})

	tests := []struct {
		name   string
		target string
	}{
		{"missing dates", "/api/hyperliquid/0xabc/pnl"},
		{"missing end", "/api/hyperliquid/0xabc/pnl?start=2025-01-01"},
		{"bad format", "/api/hyperliquid/0xabc/pnl?start=01-01-2025&end=2025-01-03"},
		{"reversed range", "/api/hyperliquid/0xabc/pnl?start=2025-01-03&end=2025-01-01"},
		{"range too long", "/api/hyperliquid/0xabc/pnl?start=2024-01-01&end=2025-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(s, http.MethodGet, tt.target, "")
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestWalletPnLHappyPath(t *testing.T) {
	report := &types.Report{
		Wallet: "0xabc",
		Start:  "2025-01-01",
		End:    "2025-01-03",
		Daily: []types.DailyRow{
			{Date: "2025-01-01", Equity: 10000},
			{Date: "2025-01-02", Realized: 150, Fees: 2, Net: 148, Equity: 10148},
			{Date: "2025-01-03", Equity: 10148},
		},
		Summary:     types.Summary{TotalRealized: 150, TotalFees: 2, NetPnl: 148},
		Diagnostics: types.Diagnostics{DataSource: "hyperliquid_api", TradesFound: 1},
	}
	s := newTestServer(&stubReporter{report: report}, &stubPrices{}, &stubInsight{})

	w := doRequest(s, http.MethodGet, "/api/hyperliquid/0xabc/pnl?start=2025-01-01&end=2025-01-03", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got types.Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Wallet != "0xabc" || len(got.Daily) != 3 {
		t.Errorf("report = %+v", got)
	}
	if got.Daily[1].Net != 148 || got.Summary.NetPnl != 148 {
		t.Errorf("daily[1] = %+v summary = %+v", got.Daily[1], got.Summary)
	}
	if got.Diagnostics.DataSource != "hyperliquid_api" {
		t.Errorf("data_source = %s", got.Diagnostics.DataSource)
	}
}

func TestWalletPnLReporterError(t *testing.T) {
	s := newTestServer(&stubReporter{err: errors.New("venue exploded")}, &stubPrices{}, &stubInsight{})
	w := doRequest(s, http.MethodGet, "/api/hyperliquid/0xabc/pnl?start=2025-01-01&end=2025-01-03", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestTokenInsightHappyPath(t *testing.T) {
	prices := &stubPrices{token: &types.TokenData{
		ID: "bitcoin", Symbol: "btc", Name: "Bitcoin",
		MarketData:     types.MarketData{CurrentPriceUsd: 43000, PriceChangePct24h: 2.5},
		HistoricalData: json.RawMessage(`{"prices": []}`),
	}}
	insight := &stubInsight{insight: types.Insight{
		Reasoning: "Steady uptrend.",
		Sentiment: "Bullish",
		Provider:  "openai",
		Model:     "gpt-4o-mini",
	}}
	s := newTestServer(&stubReporter{}, prices, insight)

	w := doRequest(s, http.MethodPost, "/api/token/bitcoin/insight", `{"vs_currency": "usd", "history_days": 7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got insightResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Source != "coingecko" || got.Token.ID != "bitcoin" {
		t.Errorf("source/token = %s/%+v", got.Source, got.Token)
	}
	if got.Insight.Sentiment != "Bullish" || got.Model.Provider != "openai" {
		t.Errorf("insight = %+v model = %+v", got.Insight, got.Model)
	}
	// History feeds the prompt only, never the response.
	if got.Token.HistoricalData != nil {
		t.Error("historical data leaked into the response")
	}
}

func TestTokenInsightEmptyBody(t *testing.T) {
	prices := &stubPrices{token: &types.TokenData{ID: "bitcoin"}}
	s := newTestServer(&stubReporter{}, prices, &stubInsight{insight: types.Insight{Sentiment: "Neutral"}})

	w := doRequest(s, http.MethodPost, "/api/token/bitcoin/insight", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestTokenInsightHistoryDaysOutOfRange(t *testing.T) {
	s := newTestServer(&stubReporter{}, &stubPrices{}, &stubInsight{})

	for _, days := range []int{-1, 366} {
		body := fmt.Sprintf(`{"history_days": %d}`, days)
		w := doRequest(s, http.MethodPost, "/api/token/bitcoin/insight", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("history_days %d: status = %d, want 400", days, w.Code)
		}
	}
}

func TestTokenInsightUnknownToken(t *testing.T) {
	prices := &stubPrices{err: fmt.Errorf("%w: nope", coingecko.ErrTokenNotFound)}
	s := newTestServer(&stubReporter{}, prices, &stubInsight{})

	w := doRequest(s, http.MethodPost, "/api/token/nope/insight", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestTokenInsightUpstreamFailure(t *testing.T) {
	prices := &stubPrices{err: errors.New("coingecko down")}
	s := newTestServer(&stubReporter{}, prices, &stubInsight{})

	w := doRequest(s, http.MethodPost, "/api/token/bitcoin/insight", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}
