package presence

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyCheckedIn     = errors.New("already checked in today")
	ErrNotCheckedInYet      = errors.New("not checked in yet today")
	ErrAlreadyCheckedOut    = errors.New("already checked out today")
	ErrOutsideAllowedRadius = errors.New("location is outside the allowed radius")
	ErrPresenceNotFound     = errors.New("presence record not found")
	ErrPhotoRequired        = errors.New("a photo is required for attendance")
)

// OutOfRadiusError carries the measured distance so handlers can report how
// far outside the geofence the caller was.
type OutOfRadiusError struct {
	DistanceMeters  float64
	MaxRadiusMeters float64
}

func (e *OutOfRadiusError) Error() string {
	return fmt.Sprintf("location is %.0fm from the office, outside the allowed %.0fm radius", e.DistanceMeters, e.MaxRadiusMeters)
}

func (e *OutOfRadiusError) Is(target error) bool {
	return target == ErrOutsideAllowedRadius
}
