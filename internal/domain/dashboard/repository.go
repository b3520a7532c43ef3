package dashboard

import (
	"context"
	"time"
)

// DashboardRepository serves the aggregate counters behind the reviewer view.
type DashboardRepository interface {
	CountActiveInterns(ctx context.Context) (int, error)
	CountPendingPermissions(ctx context.Context, roleStatus string) (int, error)
	CountPendingLogbooks(ctx context.Context, roleStatus string) (int, error)
	CountCheckedIn(ctx context.Context, day time.Time) (int, error)
}
