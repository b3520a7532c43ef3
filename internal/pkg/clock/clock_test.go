package clock

import (
	"testing"
	"time"
)

func TestToday(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2026, 2, 6, 15, 4, 5, 0, time.UTC), time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)},
		{time.Date(2026, 2, 6, 23, 59, 59, 0, time.UTC), time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)},
		// A non-UTC wall clock must normalize to the UTC calendar date.
		{time.Date(2026, 2, 7, 2, 0, 0, 0, time.FixedZone("WIB", 7*3600)), time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got := Today(Fixed(c.now))
		if !got.Equal(c.want) {
			t.Errorf("Today(%v) = %v, want %v", c.now, got, c.want)
		}
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2026, 2, 6, 13, 30, 0, 0, time.UTC))
	if !start.Equal(time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Errorf("day spans %v, want 24h", end.Sub(start))
	}
}

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2026, time.February)
	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}

	// December rolls into January of the next year.
	start, end = MonthBounds(2026, time.December)
	if !start.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}
