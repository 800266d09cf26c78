// Package query parses listing query parameters. Malformed values never
// produce errors; they fall back to defaults or are dropped.
package query

import (
	"strconv"
	"strings"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200

	DefaultDays = 30
	MaxDays     = 365
)

// Limit parses a page size. Absent or non-numeric input yields DefaultLimit;
// numeric input is clamped to [1, MaxLimit].
func Limit(raw string) int {
	return clampedInt(raw, DefaultLimit, 1, MaxLimit)
}

// Days parses a lookback window in days, clamped to [1, MaxDays].
func Days(raw string) int {
	return clampedInt(raw, DefaultDays, 1, MaxDays)
}

// ID parses a positive numeric identifier.
func ID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Bool accepts true/false/1/0 in any case. Anything else is reported as absent.
func Bool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func clampedInt(raw string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
