package logbook

import "errors"

var (
	ErrLogbookNotFound = errors.New("logbook entry not found")
	ErrDuplicateDate   = errors.New("a logbook entry already exists for this date")
	ErrNotOwner        = errors.New("logbook entry does not belong to this internship")
	ErrResultRequired  = errors.New("result_output is required unless the entry is a draft")
)
