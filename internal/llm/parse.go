package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"perp-pnl-service/internal/types"
)

var (
	jsonBlockRe = regexp.MustCompile(`\{[\s\S]*\}`)
	sentimentRe = regexp.MustCompile(`(?i)(bullish|bearish|neutral)`)
)

// validSentiments whitelists the sentiment values the API contract allows.
var validSentiments = map[string]bool{
	"Bullish": true,
	"Bearish": true,
	"Neutral": true,
}

// ParseInsight extracts a structured insight from raw model output. Models
// frequently wrap their JSON in prose, so the first {...} block is pulled
// out and parsed; if that fails, a sentiment word is scavenged from the
// plain text and the leading text becomes the reasoning. The sentiment is
// always normalized to Bullish/Bearish/Neutral.
func ParseInsight(content, provider, model string) types.Insight {
	content = strings.TrimSpace(content)

	var parsed struct {
		Reasoning string `json:"reasoning"`
		Sentiment string `json:"sentiment"`
	}
	if block := jsonBlockRe.FindString(content); block != "" {
		if err := json.Unmarshal([]byte(block), &parsed); err != nil {
			parsed.Reasoning, parsed.Sentiment = "", ""
		}
	}

	if parsed.Reasoning == "" {
		parsed.Reasoning = textReasoning(content)
	}
	if !validSentiments[parsed.Sentiment] {
		parsed.Sentiment = textSentiment(content)
	}

	return types.Insight{
		Reasoning: parsed.Reasoning,
		Sentiment: parsed.Sentiment,
		Provider:  provider,
		Model:     model,
	}
}

// textReasoning falls back to the first 200 characters of the raw output.
func textReasoning(content string) string {
	if len(content) > 200 {
		content = content[:200]
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "No analysis produced."
	}
	return content
}

// textSentiment scans free text for a sentiment word, defaulting Neutral.
func textSentiment(content string) string {
	m := sentimentRe.FindString(content)
	if m == "" {
		return "Neutral"
	}
	s := strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
	if !validSentiments[s] {
		return "Neutral"
	}
	return s
}
