package internship

import (
	"time"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusCompleted  Status = "completed"
	StatusTerminated Status = "terminated"
)

func ValidStatuses() []string {
	return []string{string(StatusActive), string(StatusCompleted), string(StatusTerminated)}
}

type Internship struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserFullName *string
	UserEmail    *string
	UserPosition *string
}

// Progress summarizes how far along an internship is as of today. Computed at
// read time, never persisted.
type Progress struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalDays     int    `json:"total_days"`
	DaysPassed    int    `json:"days_passed"`
	DaysRemaining int    `json:"days_remaining"`
	Percentage    int    `json:"percentage"`
	Status        string `json:"status"`
}

// ProgressAt computes the internship's progress as of the given UTC day.
// Day counts are inclusive of both endpoints and the percentage is clamped
// to [0, 100].
func (i Internship) ProgressAt(today time.Time) Progress {
	start := dateOnly(i.StartDate)
	end := dateOnly(i.EndDate)
	today = dateOnly(today)

	totalDays := int(end.Sub(start).Hours()/24) + 1
	if totalDays < 1 {
		totalDays = 1
	}

	daysPassed := 0
	if !today.Before(start) {
		daysPassed = int(today.Sub(start).Hours()/24) + 1
		if daysPassed > totalDays {
			daysPassed = totalDays
		}
	}

	percentage := daysPassed * 100 / totalDays
	if percentage > 100 {
		percentage = 100
	}

	return Progress{
		StartDate:     start.Format("2006-01-02"),
		EndDate:       end.Format("2006-01-02"),
		TotalDays:     totalDays,
		DaysPassed:    daysPassed,
		DaysRemaining: totalDays - daysPassed,
		Percentage:    percentage,
		Status:        string(i.Status),
	}
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
