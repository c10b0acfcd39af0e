package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO-8601 calendar date used in URLs and month keys
	DateLayout = "2006-01-02"
	// MonthLayout is accepted wherever a whole month is addressed
	MonthLayout = "2006-01"
)

// salesHour is the fixed instant within a sales date at which a batch is
// recorded, far from either day boundary.
const salesHour = 12

// MonthRange returns the first and last instants of the calendar month that
// contains t, in UTC. The end is the last nanosecond of the last day.
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := MonthStart(t)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// MonthStart returns midnight UTC on day 1 of t's month
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the first and last instants of t's calendar day in UTC
func DayRange(t time.Time) (time.Time, time.Time) {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// MonthKey formats the exact-match key used for monthly expenses (YYYY-MM-01)
func MonthKey(t time.Time) string {
	return MonthStart(t).Format(DateLayout)
}

// SalesTimestamp pins a sales date to noon UTC
func SalesTimestamp(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, salesHour, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD as a UTC date
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseMonth accepts either YYYY-MM or any YYYY-MM-DD within the month
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(MonthLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return MonthStart(t), nil
}
