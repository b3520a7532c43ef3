package approval

import "errors"

var (
	ErrStatusNotReviewable = errors.New("status not eligible for review")
	ErrInvalidAction       = errors.New("invalid review action, use approve or reject")
	ErrNotEditable         = errors.New("record has already been processed and cannot be updated")
	ErrNotDeletable        = errors.New("record has already been processed and cannot be deleted")
)
