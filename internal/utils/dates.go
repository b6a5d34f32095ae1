package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts either a plain YYYY-MM-DD date or a full RFC 3339
// timestamp and returns the value truncated to calendar-day granularity.
// Rentals are billed per full day, so time-of-day is discarded.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return NormalizeDate(t), nil
}

// NormalizeDate truncates t to midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the number of billable days in the half-open
// interval [start, end).
func RentalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Adjacent intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FormatDate renders t as YYYY-MM-DD for API responses.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
