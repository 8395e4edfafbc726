package utils

import "time"

// NowUTC returns the current time normalized to UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// NormalizeUTC converts any timestamp entering persistence to UTC so
// naive/aware mismatches cannot occur downstream.
func NormalizeUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
