package service

import "time"

// Clock is the single source of "now" for an operation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the server wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// dayBounds returns the [start, end) of the calendar day containing t in loc, in UTC.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
