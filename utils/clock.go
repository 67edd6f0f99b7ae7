package utils

import "time"

// ClockIn returns a clock reporting wall time in loc.
func ClockIn(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}

// StartOfDay is local midnight of t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
