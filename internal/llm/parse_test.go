package llm

import (
	"strings"
	"testing"
)

func TestParseInsightCleanJSON(t *testing.T) {
	content := `{"reasoning": "Strong accumulation, rising volume.", "sentiment": "Bullish"}`
	insight := ParseInsight(content, "openai", "gpt-4o-mini")

	if insight.Reasoning != "Strong accumulation, rising volume." {
		t.Errorf("reasoning = %q", insight.Reasoning)
	}
	if insight.Sentiment != "Bullish" {
		t.Errorf("sentiment = %q, want Bullish", insight.Sentiment)
	}
	if insight.Provider != "openai" || insight.Model != "gpt-4o-mini" {
		t.Errorf("attribution = %s/%s", insight.Provider, insight.Model)
	}
}

func TestParseInsightJSONWrappedInProse(t *testing.T) {
	content := "Sure, here is my analysis:\n" +
		`{"reasoning": "Momentum is fading.", "sentiment": "Bearish"}` +
		"\nLet me know if you need more."
	insight := ParseInsight(content, "claude", "claude-3")

	if insight.Reasoning != "Momentum is fading." {
		t.Errorf("reasoning = %q", insight.Reasoning)
	}
	if insight.Sentiment != "Bearish" {
		t.Errorf("sentiment = %q, want Bearish", insight.Sentiment)
	}
}

func TestParseInsightInvalidSentimentNormalized(t *testing.T) {
	content := `{"reasoning": "Mixed signals.", "sentiment": "SuperBullish"}`
	insight := ParseInsight(content, "openai", "gpt-4o-mini")

	if insight.Reasoning != "Mixed signals." {
		t.Errorf("reasoning = %q", insight.Reasoning)
	}
	// Off-whitelist sentiment falls through to the text scan; the raw text
	// contains "Bullish" inside "SuperBullish", which the scan picks up.
	if insight.Sentiment != "Bullish" {
		t.Errorf("sentiment = %q, want Bullish", insight.Sentiment)
	}
}

func TestParseInsightPlainTextFallback(t *testing.T) {
	content := "The token looks bearish given declining volume and weak support."
	insight := ParseInsight(content, "openai", "gpt-4o-mini")

	if insight.Reasoning != content {
		t.Errorf("reasoning = %q, want raw text", insight.Reasoning)
	}
	if insight.Sentiment != "Bearish" {
		t.Errorf("sentiment = %q, want Bearish from text scan", insight.Sentiment)
	}
}

func TestParseInsightLongTextTruncated(t *testing.T) {
	content := strings.Repeat("a", 300)
	insight := ParseInsight(content, "openai", "gpt-4o-mini")

	if len(insight.Reasoning) != 200 {
		t.Errorf("reasoning length = %d, want 200", len(insight.Reasoning))
	}
	if insight.Sentiment != "Neutral" {
		t.Errorf("sentiment = %q, want Neutral default", insight.Sentiment)
	}
}

func TestParseInsightEmpty(t *testing.T) {
	insight := ParseInsight("", "openai", "gpt-4o-mini")

	if insight.Reasoning != "No analysis produced." {
		t.Errorf("reasoning = %q", insight.Reasoning)
	}
	if insight.Sentiment != "Neutral" {
		t.Errorf("sentiment = %q, want Neutral", insight.Sentiment)
	}
}

func TestTextSentimentCaseInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clearly BULLISH setup", "Bullish"},
		{"Looks NeUtRaL to me", "Neutral"},
		{"no opinion here", "Neutral"},
	}
	for _, tt := range tests {
		if got := textSentiment(tt.in); got != tt.want {
			t.Errorf("textSentiment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
