package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailExists            = errors.New("email already registered")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrInternRoleRequired     = errors.New("intern role required")
	ErrReviewerRoleRequired   = errors.New("mentor or kadiv role required")
)
