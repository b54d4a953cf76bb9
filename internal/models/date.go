// ABOUTME: Calendar-date helpers for sessions stored without time-of-day.
// ABOUTME: Dates are normalized to midnight UTC and serialized as YYYY-MM-DD.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the storage and wire format for workout dates.
const DateLayout = "2006-01-02"

// DateOf returns t's calendar date (in t's own location) as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
