package openai

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

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

// InsightGenerator implements insight generation via the OpenAI chat
// completions API.
type InsightGenerator struct {
	cfg      *store.Config
	endpoint string
}

// Compile-time interface check
var _ interfaces.InsightGenerator = (*InsightGenerator)(nil)

// NewInsightGenerator creates an OpenAI-backed generator.
func NewInsightGenerator(cfg *store.Config) *InsightGenerator {
	endpoint := defaultEndpoint
	if ep := os.Getenv("OPENAI_API_ENDPOINT"); ep != "" {
		endpoint = ep
	}
	return &InsightGenerator{cfg: cfg, endpoint: endpoint}
}

// Generate asks the model for a token insight.
func (g *InsightGenerator) Generate(ctx context.Context, token *types.TokenData) (types.Insight, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return types.Insight{}, errors.New("OPENAI_API_KEY missing")
	}

	system := g.cfg.LLM.System
	if system == "" {
		system = "You are a cryptocurrency analyst. Respond with valid JSON only."
	}

	body := map[string]any{
		"model":       g.cfg.LLM.Model,
		"messages":    []map[string]string{{"role": "system", "content": system}, {"role": "user", "content": llm.BuildPrompt(token)}},
		"temperature": g.cfg.LLM.Temperature,
		"max_tokens":  g.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.Insight{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.Insight{}, fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Insight{}, err
	}
	if len(r.Choices) == 0 {
		return types.Insight{}, errors.New("no choices")
	}

	return llm.ParseInsight(r.Choices[0].Message.Content, "openai", g.cfg.LLM.Model), nil
}
