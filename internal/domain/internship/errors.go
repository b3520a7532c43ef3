package internship

import "errors"

var (
	ErrInternshipNotFound   = errors.New("internship not found")
	ErrNoActiveInternship   = errors.New("no active internship for this user")
	ErrInvalidDateRange     = errors.New("end date must not be earlier than start date")
	ErrActiveInternshipOpen = errors.New("user already has an active internship")
)
