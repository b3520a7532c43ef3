package presence

import "time"

type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusSick       Status = "sick"
	StatusPermission Status = "permission"

	// StatusAlpha marks an unexcused absence. It is never stored: days with
	// no record and no approved leave are classified as alpha at read time.
	StatusAlpha Status = "alpha"
)

// Presence keeps the check-in and check-out sides apart: each carries its own
// timestamp, photo, coordinates, and free-form location label.
type Presence struct {
	ID           string
	InternshipID string
	Date         time.Time
	Status       Status

	CheckIn          *time.Time
	CheckInPhoto     *string
	CheckInLatitude  *float64
	CheckInLongitude *float64
	CheckInLocation  *string

	CheckOut          *time.Time
	CheckOutPhoto     *string
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	CheckOutLocation  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserFullName *string
	UserPosition *string
}

// Stats summarizes an internship's attendance over a date range. Alpha counts
// working days that passed with neither a record nor an approved leave.
type Stats struct {
	Present    int `json:"present"`
	Late       int `json:"late"`
	Sick       int `json:"sick"`
	Permission int `json:"permission"`
	Alpha      int `json:"alpha"`
}
