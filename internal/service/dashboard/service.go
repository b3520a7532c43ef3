package dashboard

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/dashboard"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	internshipService internship.InternshipService
	presenceService   presence.PresenceService
	logbookService    logbook.LogbookService
	clock             clock.Clock
}

func NewDashboardService(dashboardRepository dashboard.DashboardRepository, internshipService internship.InternshipService, presenceService presence.PresenceService, logbookService logbook.LogbookService, clk clock.Clock) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: dashboardRepository,
		internshipService:   internshipService,
		presenceService:     presenceService,
		logbookService:      logbookService,
		clock:               clk,
	}
}

// InternOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) InternOverview(ctx context.Context) (*dashboard.InternDashboard, error) {
	internData, err := s.internshipService.GetMyInternship(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	presenceStats, err := s.presenceService.MyStats(ctx, now.Year(), int(now.Month()))
	if err != nil {
		return nil, err
	}

	logbookStats, err := s.logbookService.MyStats(ctx)
	if err != nil {
		return nil, err
	}

	today, err := s.presenceService.Today(ctx)
	if err != nil {
		return nil, err
	}

	return &dashboard.InternDashboard{
		Internship: &internData,
		Progress:   internData.Progress,
		Presence:   presenceStats,
		Logbook:    logbookStats,
		Today:      today,
	}, nil
}

// ReviewerOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) ReviewerOverview(ctx context.Context) (*dashboard.ReviewerDashboard, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("role claim is missing or invalid")
	}

	// A mentor's queue holds fresh submissions; a kadiv's holds records the
	// mentor already passed along.
	permissionQueue := string(approval.StatusPending)
	logbookQueue := string(approval.StatusSent)
	if role == approval.RoleKadiv {
		permissionQueue = string(approval.StatusReviewKadiv)
		logbookQueue = string(approval.StatusReviewKadiv)
	}

	activeInterns, err := s.DashboardRepository.CountActiveInterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count active interns: %w", err)
	}

	pendingPermissions, err := s.DashboardRepository.CountPendingPermissions(ctx, permissionQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending permissions: %w", err)
	}

	pendingLogbooks, err := s.DashboardRepository.CountPendingLogbooks(ctx, logbookQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending logbooks: %w", err)
	}

	checkedInToday, err := s.DashboardRepository.CountCheckedIn(ctx, clock.Today(s.clock))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's check-ins: %w", err)
	}

	return &dashboard.ReviewerDashboard{
		ActiveInterns:      activeInterns,
		PendingPermissions: pendingPermissions,
		PendingLogbooks:    pendingLogbooks,
		CheckedInToday:     checkedInToday,
	}, nil
}
