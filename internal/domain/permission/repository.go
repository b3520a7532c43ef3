package permission

import (
	"context"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
)

type ListFilter struct {
	InternshipID *string
	Status       *approval.Status
	Type         *Type
	Limit        int
	Offset       int
}

type PermissionRepository interface {
	Create(ctx context.Context, p *Permission) error
	GetByID(ctx context.Context, id string) (*Permission, error)
	List(ctx context.Context, filter ListFilter) ([]Permission, int, error)
	Update(ctx context.Context, p *Permission) error
	Delete(ctx context.Context, id string) error

	// FindApprovedForDate returns the approved request covering the given UTC
	// day for the internship, or nil when none exists.
	FindApprovedForDate(ctx context.Context, internshipID string, day time.Time) (*Permission, error)

	// ListApprovedInRange returns every approved request of the internship
	// whose date range intersects [start, end].
	ListApprovedInRange(ctx context.Context, internshipID string, start, end time.Time) ([]Permission, error)

	// HasOverlapping reports whether a non-rejected request of the internship
	// already intersects [start, end]. excludeID skips the request being
	// edited; pass "" on create.
	HasOverlapping(ctx context.Context, internshipID string, start, end time.Time, excludeID string) (bool, error)
}
