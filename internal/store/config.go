package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		ProductionMode bool     `yaml:"production_mode"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Hyperliquid struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"hyperliquid"`
	CoinGecko struct {
		BaseURL        string  `yaml:"base_url"`
		VsCurrency     string  `yaml:"vs_currency"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RatePerSecond  float64 `yaml:"rate_per_second"`
		RateBurst      int     `yaml:"rate_burst"`
	} `yaml:"coingecko"`
	PnL struct {
		MaxRangeDays int `yaml:"max_range_days"`
		// Placeholder used when the venue reports no account value.
		// Not a real account balance.
		FallbackEquity float64 `yaml:"fallback_equity"`
	} `yaml:"pnl"`
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1-65535", c.Server.Port)
	}
	if c.PnL.MaxRangeDays <= 0 {
		return fmt.Errorf("pnl.max_range_days must be positive, got %d", c.PnL.MaxRangeDays)
	}
	if c.PnL.FallbackEquity < 0 {
		return fmt.Errorf("pnl.fallback_equity must not be negative, got %.2f", c.PnL.FallbackEquity)
	}
	switch c.LLM.Provider {
	case "", "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE', or 'NOOP'", c.LLM.Provider)
	}
	return nil
}

// DefaultConfig returns a config with every default applied, suitable for
// tests and for running without a config file.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	// Environment overrides for the upstream URLs, matching deployment envs
	if v := os.Getenv("HYPERLIQUID_API_URL"); v != "" {
		c.Hyperliquid.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_URL"); v != "" {
		c.CoinGecko.BaseURL = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Hyperliquid.BaseURL == "" {
		c.Hyperliquid.BaseURL = "https://api.hyperliquid.xyz"
	}
	if c.Hyperliquid.TimeoutSeconds == 0 {
		c.Hyperliquid.TimeoutSeconds = 15
	}
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if c.CoinGecko.VsCurrency == "" {
		c.CoinGecko.VsCurrency = "usd"
	}
	if c.CoinGecko.TimeoutSeconds == 0 {
		c.CoinGecko.TimeoutSeconds = 15
	}
	if c.CoinGecko.RatePerSecond == 0 {
		// Public CoinGecko API allows roughly 10-30 calls/min without a key
		c.CoinGecko.RatePerSecond = 0.5
	}
	if c.CoinGecko.RateBurst == 0 {
		c.CoinGecko.RateBurst = 3
	}
	if c.PnL.MaxRangeDays == 0 {
		c.PnL.MaxRangeDays = 90
	}
	if c.PnL.FallbackEquity == 0 {
		c.PnL.FallbackEquity = 10000
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
}
