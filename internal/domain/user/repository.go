package user

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error

	// RecordFailedLogin atomically increments the failed-login counter, stamps
	// last_failed_login, and sets locked_until once the counter reaches
	// maxFailures. A single UPDATE so concurrent login attempts never lose
	// increments.
	RecordFailedLogin(ctx context.Context, id string, maxFailures int, lockFor time.Duration) error

	// ResetFailedLogin clears the counter and lockout after a successful login.
	ResetFailedLogin(ctx context.Context, id string) error
}

type ListFilter struct {
	Role   *string
	Search *string
	Page   int
	Limit  int
}
