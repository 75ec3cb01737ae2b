package utils

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used throughout the calibration
// configuration and data files.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date (YYYY-MM-DD) in UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats a time as an ISO calendar date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays returns the date n calendar days after t
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days in the half-open
// range [first, last). A non-positive range yields zero.
func DaysBetween(first, last time.Time) int {
	days := int(last.Sub(first).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DateRange returns every date in the half-open range [first, last)
func DateRange(first, last time.Time) []time.Time {
	n := DaysBetween(first, last)
	dates := make([]time.Time, 0, n)
	for d := first; d.Before(last); d = AddDays(d, 1) {
		dates = append(dates, d)
	}
	return dates
}
