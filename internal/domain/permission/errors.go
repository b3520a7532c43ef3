package permission

import "errors"

var (
	ErrPermissionNotFound = errors.New("permission request not found")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrOverlappingRequest = errors.New("an open request already covers part of this date range")
	ErrNotOwner           = errors.New("permission request does not belong to this internship")
)
