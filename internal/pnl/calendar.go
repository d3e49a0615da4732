package pnl

import "time"

// dayKeyLayout is the calendar-date key format used throughout the engine.
// Day keys are always the UTC date of the underlying instant.
const dayKeyLayout = "2006-01-02"

// ParseDayKey parses a YYYY-MM-DD day key into a UTC midnight instant.
func ParseDayKey(s string) (time.Time, error) {
	return time.Parse(dayKeyLayout, s)
}

// DayKeysBetween returns the inclusive, contiguous, ascending sequence of
// day keys from start to end, stepping one calendar day at a time. An empty
// slice is returned when end precedes start.
func DayKeysBetween(start, end time.Time) []string {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)

	var keys []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, d.Format(dayKeyLayout))
	}
	return keys
}

// DayKeyOf maps a normalized epoch-millisecond timestamp to the UTC
// calendar date it falls on.
func DayKeyOf(epochMillis int64) string {
	return time.UnixMilli(epochMillis).UTC().Format(dayKeyLayout)
}
