package internship

import "context"

type InternshipService interface {
	// GetMyInternship returns the authenticated intern's current internship
	// with derived progress.
	GetMyInternship(ctx context.Context) (InternshipResponse, error)

	// Admin operations
	Create(ctx context.Context, req CreateInternshipRequest) (InternshipResponse, error)
	Update(ctx context.Context, req UpdateInternshipRequest) (InternshipResponse, error)
	List(ctx context.Context, filter ListFilter) ([]InternshipResponse, int64, error)
	Get(ctx context.Context, id string) (InternshipResponse, error)
}
