package pnl

import (
	"encoding/json"
	"testing"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		raw    json.Number
		want   int64
		wantOK bool
	}{
		{"milliseconds pass through", json.Number("1735776000000"), 1735776000000, true},
		{"seconds scaled to ms", json.Number("1735776000"), 1735776000000, true},
		{"string float accepted", json.Number("1735776000.0"), 1735776000000, true},
		{"zero excluded", json.Number("0"), 0, false},
		{"absent excluded", json.Number(""), 0, false},
		{"garbage excluded", json.Number("not-a-time"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTimestamp(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeTimestampSameInstant(t *testing.T) {
	ms, ok := NormalizeTimestamp(json.Number("1735776000000"))
	if !ok {
		t.Fatal("ms form not ok")
	}
	sec, ok := NormalizeTimestamp(json.Number("1735776000"))
	if !ok {
		t.Fatal("seconds form not ok")
	}
	if ms != sec {
		t.Errorf("same instant diverged: %d vs %d", ms, sec)
	}
	if DayKeyOf(ms) != DayKeyOf(sec) {
		t.Errorf("day keys diverged: %s vs %s", DayKeyOf(ms), DayKeyOf(sec))
	}
}
