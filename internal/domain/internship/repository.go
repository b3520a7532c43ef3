package internship

import "context"

type InternshipRepository interface {
	Create(ctx context.Context, i Internship) (Internship, error)
	GetByID(ctx context.Context, id string) (Internship, error)

	// GetActiveByUserID locates the user's current internship: status active,
	// newest start_date first. Enforced by query filter, not by a uniqueness
	// constraint.
	GetActiveByUserID(ctx context.Context, userID string) (Internship, error)

	List(ctx context.Context, filter ListFilter) ([]Internship, int64, error)
	Update(ctx context.Context, i Internship) error
}

type ListFilter struct {
	UserID *string
	Status *string
	Page   int
	Limit  int
}
