package pnl

import (
	"encoding/json"
	"strconv"
)

// millisYear2000 is midnight 2000-01-01 UTC in epoch milliseconds. Any
// timestamp numerically below it is assumed to be in seconds and scaled up.
// Upstream sources mix second and millisecond precision; this fixed
// threshold is a compatibility contract with their data and must not be
// replaced with a smarter unit detector.
const millisYear2000 = 946_684_800_000

// NormalizeTimestamp canonicalizes a raw timestamp (numeric epoch or
// numeric-string epoch, seconds or milliseconds) to epoch milliseconds.
// Returns ok=false for absent, zero, or unparseable values; callers must
// exclude such records from every day bucket rather than defaulting them.
func NormalizeTimestamp(raw json.Number) (int64, bool) {
	s := raw.String()
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, false
		}
		n = int64(f)
	}
	if n == 0 {
		return 0, false
	}
	if n < millisYear2000 {
		n *= 1000 // seconds → ms
	}
	return n, true
}
