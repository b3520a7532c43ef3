package logbook

import "context"

type LogbookService interface {
	Create(ctx context.Context, req CreateLogbookRequest) (*LogbookResponse, error)
	Update(ctx context.Context, id string, req UpdateLogbookRequest) (*LogbookResponse, error)
	Delete(ctx context.Context, id string) error
	ListMine(ctx context.Context, filter ListFilter) ([]LogbookResponse, int, error)
	MyStats(ctx context.Context) (*Stats, error)

	GetByID(ctx context.Context, id string) (*LogbookResponse, error)
	List(ctx context.Context, filter ListFilter) ([]LogbookResponse, int, error)
	Review(ctx context.Context, id string, req ReviewLogbookRequest) (*LogbookResponse, error)
}
