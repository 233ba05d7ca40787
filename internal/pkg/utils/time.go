package utils

import "time"

const DateLayout = "2006-01-02"

// DayBounds returns the calendar day containing t in loc as [start, end).
// The end is the next local midnight, so DST days are 23 or 25 hours long.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// WholeMinutes truncates d to whole minutes, never below zero.
func WholeMinutes(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}
