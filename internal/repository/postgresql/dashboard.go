package postgresql

import (
	"context"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/dashboard"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountActiveInterns implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveInterns(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM internships WHERE status = 'active'`).Scan(&count)
	return count, err
}

// CountPendingPermissions implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingPermissions(ctx context.Context, roleStatus string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM permissions WHERE status = $1`, roleStatus).Scan(&count)
	return count, err
}

// CountPendingLogbooks implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPendingLogbooks(ctx context.Context, roleStatus string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM logbooks WHERE status = $1`, roleStatus).Scan(&count)
	return count, err
}

// CountCheckedIn implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountCheckedIn(ctx context.Context, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM presences WHERE date = $1 AND check_in IS NOT NULL`, day).Scan(&count)
	return count, err
}
