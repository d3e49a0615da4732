package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"perp-pnl-service/internal/interfaces"
	"perp-pnl-service/internal/llm"
	"perp-pnl-service/internal/store"
	"perp-pnl-service/internal/trace"
	"perp-pnl-service/internal/types"
)

// InsightGenerator implements insight generation using the Anthropic
// messages API.
type InsightGenerator struct {
	cfg      *store.Config
	endpoint string
}

// Compile-time interface check
var _ interfaces.InsightGenerator = (*InsightGenerator)(nil)

// NewInsightGenerator creates a Claude-backed generator.
func NewInsightGenerator(cfg *store.Config) *InsightGenerator {
	// default messages endpoint (public Anthropic)
	endpoint := "https://api.anthropic.com/v1/messages"
	// If you use a proxy/bedrock/vertex, set endpoint via CLAUDE_API_ENDPOINT env var
	if ep := os.Getenv("CLAUDE_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &InsightGenerator{cfg: cfg, endpoint: endpoint}
}

// Generate asks the model for a token insight.
func (g *InsightGenerator) Generate(ctx context.Context, token *types.TokenData) (types.Insight, error) {
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	apiKey := os.Getenv("CLAUDE_API_KEY")
	if apiKey == "" {
		return types.Insight{}, errors.New("CLAUDE_API_KEY missing")
	}

	system := g.cfg.LLM.System
	if system == "" {
		system = "You are a cryptocurrency analyst. Respond with valid JSON only."
	}

	reqBody := map[string]any{
		"model":  g.cfg.LLM.Model,
		"system": system,
		"messages": []map[string]string{
			{"role": "user", "content": llm.BuildPrompt(token)},
		},
		"max_tokens":  g.cfg.LLM.MaxTokens,
		"temperature": g.cfg.LLM.Temperature,
	}

	bb, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(bb))
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.Insight{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.Insight{}, fmt.Errorf("claude http %d", resp.StatusCode)
	}

	var r struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Insight{}, err
	}
	if len(r.Content) == 0 {
		return types.Insight{}, errors.New("no content")
	}

	return llm.ParseInsight(r.Content[0].Text, "claude", g.cfg.LLM.Model), nil
}
