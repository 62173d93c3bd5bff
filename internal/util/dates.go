package util

import "time"

// DateOnly strips the time-of-day from t and pins it to UTC.
// All contract date arithmetic works on whole calendar days.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// AddDays returns the date n days after t, time-of-day stripped.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}
