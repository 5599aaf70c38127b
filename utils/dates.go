// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// SameDate compares two timestamps by calendar date only.
func SameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// FormatEventDate renders a calendar date the way reminder emails show it,
// e.g. "September 07, 2026".
func FormatEventDate(t time.Time) string {
	return t.Format("January 02, 2006")
}
