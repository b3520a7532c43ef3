package internship

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProgressAt(t *testing.T) {
	i := Internship{
		StartDate: day(2026, 1, 1),
		EndDate:   day(2026, 1, 10), // 10 days inclusive
		Status:    StatusActive,
	}

	t.Run("before start", func(t *testing.T) {
		p := i.ProgressAt(day(2025, 12, 31))
		assert.Equal(t, 10, p.TotalDays)
		assert.Equal(t, 0, p.DaysPassed)
		assert.Equal(t, 10, p.DaysRemaining)
		assert.Equal(t, 0, p.Percentage)
	})

	t.Run("first day counts", func(t *testing.T) {
		p := i.ProgressAt(day(2026, 1, 1))
		assert.Equal(t, 1, p.DaysPassed)
		assert.Equal(t, 10, p.Percentage)
	})

	t.Run("midway", func(t *testing.T) {
		p := i.ProgressAt(day(2026, 1, 5))
		assert.Equal(t, 5, p.DaysPassed)
		assert.Equal(t, 5, p.DaysRemaining)
		assert.Equal(t, 50, p.Percentage)
	})

	t.Run("clamped past end", func(t *testing.T) {
		p := i.ProgressAt(day(2026, 3, 1))
		assert.Equal(t, 10, p.DaysPassed)
		assert.Equal(t, 0, p.DaysRemaining)
		assert.Equal(t, 100, p.Percentage)
	})

	t.Run("single day internship", func(t *testing.T) {
		one := Internship{StartDate: day(2026, 1, 1), EndDate: day(2026, 1, 1)}
		p := one.ProgressAt(day(2026, 1, 1))
		assert.Equal(t, 1, p.TotalDays)
		assert.Equal(t, 100, p.Percentage)
	})

	t.Run("timestamps normalized to dates", func(t *testing.T) {
		noisy := Internship{
			StartDate: time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 1, 10, 1, 0, 0, 0, time.UTC),
		}
		p := noisy.ProgressAt(time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC))
		assert.Equal(t, 10, p.TotalDays)
		assert.Equal(t, 5, p.DaysPassed)
	})
}
