package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 9090\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Hyperliquid.BaseURL != "https://api.hyperliquid.xyz" {
		t.Errorf("hyperliquid url = %s", cfg.Hyperliquid.BaseURL)
	}
	if cfg.CoinGecko.VsCurrency != "usd" {
		t.Errorf("vs_currency = %s", cfg.CoinGecko.VsCurrency)
	}
	if cfg.PnL.MaxRangeDays != 90 {
		t.Errorf("max_range_days = %d", cfg.PnL.MaxRangeDays)
	}
	if cfg.PnL.FallbackEquity != 10000 {
		t.Errorf("fallback_equity = %v", cfg.PnL.FallbackEquity)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("HYPERLIQUID_API_URL", "http://localhost:9999")
	cfg, err := LoadConfig(writeConfig(t, "server:\n  port: 8080\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Hyperliquid.BaseURL != "http://localhost:9999" {
		t.Errorf("hyperliquid url = %s", cfg.Hyperliquid.BaseURL)
	}
}

func TestLoadConfigRejectsBadProvider(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "llm:\n  provider: GEMINI\n"))
	if err == nil {
		t.Fatal("invalid provider accepted")
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}
