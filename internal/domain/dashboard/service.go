package dashboard

import "context"

type DashboardService interface {
	InternOverview(ctx context.Context) (*InternDashboard, error)
	ReviewerOverview(ctx context.Context) (*ReviewerDashboard, error)
}
