package utils

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart string
		wantEnd   string
	}{
		{"december", time.Date(2024, 12, 15, 9, 30, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{"january", time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC), "2025-01-01", "2025-01-31"},
		{"leap february", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{"plain february", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), "2023-02-01", "2023-02-28"},
		{"century non-leap", time.Date(2100, 2, 1, 0, 0, 0, 0, time.UTC), "2100-02-01", "2100-02-28"},
		{"thirty days", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), "2024-04-01", "2024-04-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthRange(tt.in)
			if got := start.Format(DateLayout); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format(DateLayout); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if start.Hour() != 0 || start.Minute() != 0 || start.Nanosecond() != 0 {
				t.Errorf("start is not midnight: %v", start)
			}
			if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 || end.Nanosecond() != 999999999 {
				t.Errorf("end is not the last instant of the day: %v", end)
			}
		})
	}
}

func TestMonthRangeRollsIntoNextYear(t *testing.T) {
	_, end := MonthRange(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))
	next := end.Add(time.Nanosecond)
	if next.Year() != 2025 || next.Month() != time.January || next.Day() != 1 {
		t.Errorf("instant after december end = %v, want 2025-01-01", next)
	}
}

func TestDayRange(t *testing.T) {
	start, end := DayRange(time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC))
	if !start.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2024, 3, 5, 23, 59, 59, 999999999, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

func TestMonthKeyAndSalesTimestamp(t *testing.T) {
	d := time.Date(2024, 2, 17, 3, 4, 5, 0, time.UTC)
	if got := MonthKey(d); got != "2024-02-01" {
		t.Errorf("MonthKey = %s, want 2024-02-01", got)
	}
	ts := SalesTimestamp(d)
	if !ts.Equal(time.Date(2024, 2, 17, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("SalesTimestamp = %v", ts)
	}
}

func TestParseMonth(t *testing.T) {
	for _, in := range []string{"2024-02", "2024-02-29"} {
		got, err := ParseMonth(in)
		if err != nil {
			t.Fatalf("ParseMonth(%q): %v", in, err)
		}
		if got.Format(DateLayout) != "2024-02-01" {
			t.Errorf("ParseMonth(%q) = %v", in, got)
		}
	}
	if _, err := ParseMonth("Feb 2024"); err == nil {
		t.Error("expected error for malformed month")
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("expected error for invalid date")
	}
}
