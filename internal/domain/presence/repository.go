package presence

import (
	"context"
	"time"
)

type ListFilter struct {
	InternshipID *string
	Status       *Status
	DateFrom     *time.Time
	DateTo       *time.Time
	Limit        int
	Offset       int
}

// CheckOutUpdate carries the check-out side of a record. It never touches the
// check-in columns.
type CheckOutUpdate struct {
	Time      time.Time
	PhotoPath string
	Latitude  float64
	Longitude float64
	Location  *string
}

type PresenceRepository interface {
	// Create inserts a new record. The (internship_id, date) pair is unique;
	// a conflicting insert returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, p *Presence) error

	// SetCheckOut fills the check-out fields of the given day's record only
	// when check_out is still empty. It returns ErrNotCheckedInYet when no
	// record exists and ErrAlreadyCheckedOut when one exists but is closed.
	SetCheckOut(ctx context.Context, internshipID string, date time.Time, upd CheckOutUpdate) (*Presence, error)

	GetByID(ctx context.Context, id string) (*Presence, error)
	GetByDate(ctx context.Context, internshipID string, date time.Time) (*Presence, error)
	List(ctx context.Context, filter ListFilter) ([]Presence, int, error)
	CountByStatus(ctx context.Context, internshipID string, from, to time.Time) (map[Status]int, error)
}
