package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"perp-pnl-service/internal/coingecko"
	"perp-pnl-service/internal/hyperliquid"
	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/llm"
	"perp-pnl-service/internal/llm/claude"
	"perp-pnl-service/internal/llm/llmobs"
	"perp-pnl-service/internal/llm/noop"
	"perp-pnl-service/internal/llm/openai"
	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/pnl"
	"perp-pnl-service/internal/pnl/pnlobs"
	"perp-pnl-service/internal/store"
	"perp-pnl-service/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes the logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeVenue creates the Hyperliquid client
func initializeVenue(cfg *store.Config) interfaces.Venue {
	return hyperliquid.NewClient(
		cfg.Hyperliquid.BaseURL,
		time.Duration(cfg.Hyperliquid.TimeoutSeconds)*time.Second,
	)
}

// initializePrices creates the rate-limited CoinGecko client
func initializePrices(cfg *store.Config) interfaces.PriceSource {
	return coingecko.NewClient(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.VsCurrency,
		time.Duration(cfg.CoinGecko.TimeoutSeconds)*time.Second,
		cfg.CoinGecko.RatePerSecond,
		cfg.CoinGecko.RateBurst,
	)
}

// initializeReporter creates the PnL reporter with observability
func initializeReporter(cfg *store.Config, venue interfaces.Venue, prices interfaces.PriceSource) interfaces.Reporter {
	svc := pnl.NewService(venue, prices, cfg.PnL.FallbackEquity)

	// Wrap with observability middleware
	return pnlobs.Wrap(svc)
}

// initializeInsight creates the LLM insight generator with observability.
// The configured provider is always backed by the deterministic mock, so
// the insight route answers even when the provider is down or keyless.
func initializeInsight(ctx context.Context, cfg *store.Config) interfaces.InsightGenerator {
	var generator interfaces.InsightGenerator

	switch cfg.LLM.Provider {
	case "OPENAI":
		generator = openai.NewInsightGenerator(cfg)
	case "CLAUDE":
		generator = claude.NewInsightGenerator(cfg)
	default:
		generator = noop.NewInsightGenerator()
		logger.Warn(ctx, "No LLM provider configured - using deterministic mock insights")
	}

	if cfg.LLM.Provider == "OPENAI" || cfg.LLM.Provider == "CLAUDE" {
		generator = llm.WithFallback(generator, noop.NewInsightGenerator())
	}

	// Wrap with observability middleware
	return llmobs.Wrap(generator)
}
