package leave_test

import (
	"testing"
	"time"

	"leavetrack/internal/leave"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculateWorkDays_BusinessDays(t *testing.T) {
	t.Run("monday to friday counts five", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 1), date(2024, time.January, 5), true)
		assert.Equal(t, 5, got)
	})

	t.Run("monday to sunday still counts five", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 1), date(2024, time.January, 7), true)
		assert.Equal(t, 5, got)
	})

	t.Run("weekend only counts zero", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 6), date(2024, time.January, 7), true)
		assert.Equal(t, 0, got)
	})

	t.Run("single weekday counts one", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 3), date(2024, time.January, 3), true)
		assert.Equal(t, 1, got)
	})

	t.Run("weekday-only span equals calendar length", func(t *testing.T) {
		start := date(2024, time.March, 4) // Monday
		end := date(2024, time.March, 8)   // Friday
		business := leave.CalculateWorkDays(start, end, true)
		calendar := leave.CalculateWorkDays(start, end, false)
		assert.Equal(t, calendar, business)
	})
}

func TestCalculateWorkDays_CalendarDays(t *testing.T) {
	t.Run("monday to sunday counts seven", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 1), date(2024, time.January, 7), false)
		assert.Equal(t, 7, got)
	})

	t.Run("same day counts one", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 6), date(2024, time.January, 6), false)
		assert.Equal(t, 1, got)
	})

	t.Run("spans month boundary", func(t *testing.T) {
		got := leave.CalculateWorkDays(date(2024, time.January, 30), date(2024, time.February, 2), false)
		assert.Equal(t, 4, got)
	})
}
