package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, 9, 7, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, 7, DaysBetween(start, end))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 9, 7, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, 9, 7, 23, 0, 0, 0, time.UTC)
	c := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}

func TestFormatEventDate(t *testing.T) {
	d := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "September 07, 2026", FormatEventDate(d))
}
