package server

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"perp-pnl-service/internal/coingecko"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/pnl"
	"perp-pnl-service/internal/types"
)

var dayKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func errorResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleWalletPnL serves the daily PnL report for a wallet.
// GET /api/hyperliquid/:wallet/pnl?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) handleWalletPnL(c *gin.Context) {
	ctx := c.Request.Context()

	wallet := c.Param("wallet")
	start := c.Query("start")
	end := c.Query("end")

	if wallet == "" || start == "" || end == "" {
		errorResponse(c, http.StatusBadRequest, "wallet, start and end are required")
		return
	}
	if !dayKeyRe.MatchString(start) || !dayKeyRe.MatchString(end) {
		errorResponse(c, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	startT, errStart := pnl.ParseDayKey(start)
	endT, errEnd := pnl.ParseDayKey(end)
	if errStart != nil || errEnd != nil || endT.Before(startT) {
		errorResponse(c, http.StatusBadRequest, "Invalid date range")
		return
	}

	if days := int(endT.Sub(startT).Hours() / 24); days > s.cfg.PnL.MaxRangeDays {
		errorResponse(c, http.StatusBadRequest,
			fmt.Sprintf("Date range cannot exceed %d days", s.cfg.PnL.MaxRangeDays))
		return
	}

	report, err := s.reporter.GetWalletPnL(ctx, wallet, start, end)
	if err != nil {
		if errors.Is(err, pnl.ErrInvalidRange) {
			errorResponse(c, http.StatusBadRequest, "Invalid date range")
			return
		}
		logger.ErrorWithErr(ctx, "PnL report failed", err, "wallet", wallet)
		errorResponse(c, http.StatusInternalServerError, "Failed to compute PnL report")
		return
	}

	c.JSON(http.StatusOK, report)
}

type insightRequest struct {
	VsCurrency  string `json:"vs_currency"`
	HistoryDays int    `json:"history_days"`
}

type insightResponse struct {
	Source  string          `json:"source"`
	Token   *types.TokenData `json:"token"`
	Insight struct {
		Reasoning string `json:"reasoning"`
		Sentiment string `json:"sentiment"`
	} `json:"insight"`
	Model struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	} `json:"model"`
}

// handleTokenInsight serves a token market snapshot with an LLM read.
// POST /api/token/:id/insight  {"vs_currency": "usd", "history_days": 7}
func (s *Server) handleTokenInsight(c *gin.Context) {
	ctx := c.Request.Context()

	tokenID := c.Param("id")
	if tokenID == "" {
		errorResponse(c, http.StatusBadRequest, "token id is required")
		return
	}

	var req insightRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if req.VsCurrency == "" {
		req.VsCurrency = "usd"
	}
	if req.HistoryDays < 0 || req.HistoryDays > 365 {
		errorResponse(c, http.StatusBadRequest, "history_days must be between 1 and 365")
		return
	}

	token, err := s.prices.TokenData(ctx, tokenID, req.VsCurrency, req.HistoryDays)
	if err != nil {
		if errors.Is(err, coingecko.ErrTokenNotFound) {
			errorResponse(c, http.StatusNotFound, "Token '"+tokenID+"' not found")
			return
		}
		logger.ErrorWithErr(ctx, "Token data fetch failed", err, "token", tokenID)
		errorResponse(c, http.StatusBadGateway, "Failed to fetch token data")
		return
	}

	insight, err := s.insight.Generate(ctx, token)
	if err != nil {
		logger.ErrorWithErr(ctx, "Insight generation failed", err, "token", tokenID)
		errorResponse(c, http.StatusInternalServerError, "Failed to generate insight")
		return
	}

	// Historical data is prompt input, not response payload
	token.HistoricalData = nil

	resp := insightResponse{Source: "coingecko", Token: token}
	resp.Insight.Reasoning = insight.Reasoning
	resp.Insight.Sentiment = insight.Sentiment
	resp.Model.Provider = insight.Provider
	resp.Model.Model = insight.Model

	c.JSON(http.StatusOK, resp)
}
