package models

import (
	"errors"
	"strings"
	"time"
)

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

var (
	ErrInvalidPeriod = errors.New("period must be 'weekly' or 'monthly'")
	ErrInvalidDate   = errors.New("invalid start date")
)

// ParsePeriod normalizes a user-supplied period string.
// Input is trimmed and lowercased before matching.
func ParsePeriod(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// IsValidPeriod checks if the period string is one of the allowed kinds
func IsValidPeriod(period string) bool {
	switch period {
	case PeriodWeekly, PeriodMonthly:
		return true
	default:
		return false
	}
}

// ComputeWindow derives a budget's [start, end) window from its period kind
// and anchor date. Weekly windows span exactly 7 days. Monthly windows end on
// the same day-of-month one month later, clamped to the last day of the
// target month when the anchor day does not exist there (Jan 31 -> Feb 28/29).
// Both bounds are normalized to midnight UTC; the end bound is exclusive.
func ComputeWindow(period string, startDate time.Time) (time.Time, time.Time, error) {
	if startDate.IsZero() {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	start := NormalizeDate(startDate)

	switch period {
	case PeriodWeekly:
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonthly:
		return start, addCalendarMonth(start), nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
}

// NormalizeDate truncates a timestamp to midnight UTC. All date-only
// comparisons in the budget engine happen in UTC so window membership does
// not depend on the server's local timezone.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addCalendarMonth advances a date by one calendar month, clamping to the
// last valid day of the target month. time.AddDate alone would normalize
// Jan 31 + 1 month to Mar 2/3, which is not what a monthly budget means.
func addCalendarMonth(start time.Time) time.Time {
	y, m, d := start.Date()

	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := daysInMonth(firstOfNext.Year(), firstOfNext.Month())
	if d > lastDay {
		d = lastDay
	}

	return time.Date(firstOfNext.Year(), firstOfNext.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
