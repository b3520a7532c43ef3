package presence

import (
	"context"
	"mime/multipart"
)

type PresenceService interface {
	CheckIn(ctx context.Context, req CheckRequest, photo *multipart.FileHeader) (*PresenceResponse, error)
	CheckOut(ctx context.Context, req CheckRequest, photo *multipart.FileHeader) (*PresenceResponse, error)
	Today(ctx context.Context) (*TodayResponse, error)
	ListMine(ctx context.Context, filter ListFilter) ([]PresenceResponse, int, error)
	MyStats(ctx context.Context, year int, month int) (*Stats, error)

	List(ctx context.Context, filter ListFilter) ([]PresenceResponse, int, error)
	GetByID(ctx context.Context, id string) (*PresenceResponse, error)
	StatsFor(ctx context.Context, internshipID string, year int, month int) (*Stats, error)
}
