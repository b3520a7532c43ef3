package logbook

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
)

type LogbookServiceImpl struct {
	logbook.LogbookRepository
	internship.InternshipRepository
	clock clock.Clock
}

func NewLogbookService(logbookRepository logbook.LogbookRepository, internshipRepository internship.InternshipRepository, clk clock.Clock) logbook.LogbookService {
	return &LogbookServiceImpl{
		LogbookRepository:    logbookRepository,
		InternshipRepository: internshipRepository,
		clock:                clk,
	}
}

func (s *LogbookServiceImpl) currentInternship(ctx context.Context) (internship.Internship, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return internship.Internship{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return internship.Internship{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	data, err := s.InternshipRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internship.Internship{}, internship.ErrNoActiveInternship
		}
		return internship.Internship{}, fmt.Errorf("failed to get active internship: %w", err)
	}
	return data, nil
}

// Create implements logbook.LogbookService.
func (s *LogbookServiceImpl) Create(ctx context.Context, req logbook.CreateLogbookRequest) (*logbook.LogbookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := s.LogbookRepository.GetByDate(ctx, intern.ID, date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check existing logbook entry: %w", err)
	}
	if existing != nil {
		return nil, logbook.ErrDuplicateDate
	}

	status := approval.Status(req.Status)
	if req.Status == "" {
		status = approval.LogbookWorkflow.ResubmitStatus()
	}

	l := logbook.Logbook{
		InternshipID:   intern.ID,
		Date:           date,
		ActivityDetail: req.ActivityDetail,
		ResultOutput:   req.ResultOutput,
		Status:         status,
	}

	if err := s.LogbookRepository.Create(ctx, &l); err != nil {
		return nil, fmt.Errorf("failed to create logbook entry: %w", err)
	}

	resp := l.ToResponse()
	return &resp, nil
}

// Update implements logbook.LogbookService.
func (s *LogbookServiceImpl) Update(ctx context.Context, id string, req logbook.UpdateLogbookRequest) (*logbook.LogbookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	l, err := s.LogbookRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, logbook.ErrLogbookNotFound
		}
		return nil, fmt.Errorf("failed to get logbook entry: %w", err)
	}
	if l.InternshipID != intern.ID {
		return nil, logbook.ErrNotOwner
	}
	if !approval.LogbookWorkflow.CanEdit(l.Status) {
		return nil, approval.ErrNotEditable
	}

	if req.Date != nil {
		newDate, _ := time.Parse("2006-01-02", *req.Date)
		if !newDate.Equal(l.Date) {
			existing, err := s.LogbookRepository.GetByDate(ctx, intern.ID, newDate)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("failed to check existing logbook entry: %w", err)
			}
			if existing != nil {
				return nil, logbook.ErrDuplicateDate
			}
			l.Date = newDate
		}
	}
	if req.ActivityDetail != nil {
		l.ActivityDetail = *req.ActivityDetail
	}
	if req.ResultOutput != nil {
		l.ResultOutput = req.ResultOutput
	}

	// An edit resets the review chain. A draft stays a draft unless the owner
	// submits it explicitly.
	if req.Status != nil {
		l.Status = approval.Status(*req.Status)
	} else if l.Status != approval.StatusDraft {
		l.Status = approval.LogbookWorkflow.ResubmitStatus()
	}
	if l.Status != approval.StatusDraft && (l.ResultOutput == nil || *l.ResultOutput == "") {
		return nil, logbook.ErrResultRequired
	}
	l.ApprovedBy = nil
	l.ApprovedAt = nil

	if err := s.LogbookRepository.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update logbook entry: %w", err)
	}

	resp := l.ToResponse()
	return &resp, nil
}

// Delete implements logbook.LogbookService.
func (s *LogbookServiceImpl) Delete(ctx context.Context, id string) error {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return err
	}

	l, err := s.LogbookRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return logbook.ErrLogbookNotFound
		}
		return fmt.Errorf("failed to get logbook entry: %w", err)
	}
	if l.InternshipID != intern.ID {
		return logbook.ErrNotOwner
	}
	if !approval.LogbookWorkflow.CanDelete(l.Status) {
		return approval.ErrNotDeletable
	}

	if err := s.LogbookRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete logbook entry: %w", err)
	}
	return nil
}

// ListMine implements logbook.LogbookService.
func (s *LogbookServiceImpl) ListMine(ctx context.Context, filter logbook.ListFilter) ([]logbook.LogbookResponse, int, error) {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.InternshipID = &intern.ID
	return s.list(ctx, filter)
}

// MyStats implements logbook.LogbookService.
func (s *LogbookServiceImpl) MyStats(ctx context.Context) (*logbook.Stats, error) {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.LogbookRepository.CountByStatus(ctx, intern.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count logbook entries: %w", err)
	}
	return stats, nil
}

// GetByID implements logbook.LogbookService.
func (s *LogbookServiceImpl) GetByID(ctx context.Context, id string) (*logbook.LogbookResponse, error) {
	l, err := s.LogbookRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, logbook.ErrLogbookNotFound
		}
		return nil, fmt.Errorf("failed to get logbook entry: %w", err)
	}

	resp := l.ToResponse()
	return &resp, nil
}

// List implements logbook.LogbookService.
func (s *LogbookServiceImpl) List(ctx context.Context, filter logbook.ListFilter) ([]logbook.LogbookResponse, int, error) {
	return s.list(ctx, filter)
}

func (s *LogbookServiceImpl) list(ctx context.Context, filter logbook.ListFilter) ([]logbook.LogbookResponse, int, error) {
	items, total, err := s.LogbookRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list logbook entries: %w", err)
	}

	responses := make([]logbook.LogbookResponse, 0, len(items))
	for _, l := range items {
		responses = append(responses, l.ToResponse())
	}
	return responses, total, nil
}

// Review implements logbook.LogbookService.
func (s *LogbookServiceImpl) Review(ctx context.Context, id string, req logbook.ReviewLogbookRequest) (*logbook.LogbookResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("role claim is missing or invalid")
	}
	reviewerID, ok := claims["user_id"].(string)
	if !ok || reviewerID == "" {
		return nil, fmt.Errorf("user_id claim is missing or invalid")
	}

	l, err := s.LogbookRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, logbook.ErrLogbookNotFound
		}
		return nil, fmt.Errorf("failed to get logbook entry: %w", err)
	}

	next, err := approval.LogbookWorkflow.Review(l.Status, role, approval.Action(req.Action))
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	l.Status = next
	l.ApprovedBy = &reviewerID
	l.ApprovedAt = &now

	if err := s.LogbookRepository.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update logbook entry: %w", err)
	}

	resp := l.ToResponse()
	return &resp, nil
}
