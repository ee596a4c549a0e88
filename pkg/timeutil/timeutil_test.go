package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	loc := time.UTC
	base := time.Date(2026, 3, 10, 23, 30, 0, 0, loc)

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day different hours", time.Date(2026, 3, 10, 0, 5, 0, 0, loc), base, 0},
		{"late night to early morning", base, time.Date(2026, 3, 11, 0, 10, 0, 0, loc), 1},
		{"across month boundary", time.Date(2026, 2, 28, 12, 0, 0, 0, loc), time.Date(2026, 3, 2, 1, 0, 0, 0, loc), 2},
		{"reverse order is negative", base, time.Date(2026, 3, 8, 9, 0, 0, 0, loc), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetween_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 2026-03-29 is the spring-forward day in Europe: only 23 hours long.
	before := time.Date(2026, 3, 29, 0, 30, 0, 0, loc)
	after := time.Date(2026, 3, 30, 0, 10, 0, 0, loc)
	assert.Equal(t, 1, DaysBetween(before, after))
}

func TestStartOfWeek(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, StartOfWeek(sunday))
	assert.Equal(t, monday, StartOfWeek(monday.Add(3*time.Hour)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February, time.UTC))
	assert.Equal(t, 28, DaysInMonth(2026, time.February, time.UTC))
	assert.Equal(t, 31, DaysInMonth(2026, time.December, time.UTC))
}

func TestAddMonths(t *testing.T) {
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"mid month", at(2026, time.October, 17), -1, at(2026, time.September, 17)},
		{"march 31 back one month", at(2026, time.March, 31), -1, at(2026, time.February, 28)},
		{"march 31 in a leap year", at(2028, time.March, 31), -1, at(2028, time.February, 29)},
		{"may 31 back one month", at(2026, time.May, 31), -1, at(2026, time.April, 30)},
		{"leap day back one year", at(2028, time.February, 29), -12, at(2027, time.February, 28)},
		{"january back across the year", at(2026, time.January, 31), -1, at(2025, time.December, 31)},
		{"forward to a shorter month", at(2026, time.January, 31), 1, at(2026, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h 5m", FormatDuration(2*time.Hour+5*time.Minute+30*time.Second))
	assert.Equal(t, "0m", FormatDuration(-time.Minute))
}
