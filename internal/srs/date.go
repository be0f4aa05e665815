package srs

import "time"

// DateOf truncates t to its calendar date, represented as midnight UTC.
// All scheduling arithmetic in this package is calendar-day based and
// timezone naive; callers should normalize through DateOf before comparing
// dates they obtained elsewhere.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
