package logbook

import (
	"context"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
)

type ListFilter struct {
	InternshipID *string
	Status       *approval.Status
	DateFrom     *time.Time
	DateTo       *time.Time
	Limit        int
	Offset       int
}

type LogbookRepository interface {
	Create(ctx context.Context, l *Logbook) error
	GetByID(ctx context.Context, id string) (*Logbook, error)
	GetByDate(ctx context.Context, internshipID string, date time.Time) (*Logbook, error)
	List(ctx context.Context, filter ListFilter) ([]Logbook, int, error)
	Update(ctx context.Context, l *Logbook) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, internshipID string) (*Stats, error)
}
