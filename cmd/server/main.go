package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"perp-pnl-service/internal/logger"
	"perp-pnl-service/internal/server"
	"perp-pnl-service/internal/trace"
)

func main() {
	ctx := context.Background()

	if err := initializeSystem(); err != nil {
		os.Exit(1)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	venue := initializeVenue(cfg)
	prices := initializePrices(cfg)
	reporter := initializeReporter(cfg, venue, prices)
	insight := initializeInsight(ctx, cfg)

	srv := server.NewServer(cfg, reporter, prices, insight)

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "API server starting",
			"host", cfg.Server.Host, "port", cfg.Server.Port)
		errc <- srv.Start()
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigc:
		logger.Info(ctx, "Shutting down", "signal", sig.String())
	case err := <-errc:
		if err != nil {
			logger.ErrorWithErr(ctx, "Server failed", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(ctx, "Graceful shutdown failed", err)
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "Tracer shutdown failed", "error", err)
	}
}
