package internship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
)

type InternshipServiceImpl struct {
	internship.InternshipRepository
	user.UserRepository
	clock clock.Clock
}

func NewInternshipService(internshipRepository internship.InternshipRepository, userRepository user.UserRepository, clk clock.Clock) internship.InternshipService {
	return &InternshipServiceImpl{
		InternshipRepository: internshipRepository,
		UserRepository:       userRepository,
		clock:                clk,
	}
}

func (s *InternshipServiceImpl) toResponse(i internship.Internship, withProgress bool) internship.InternshipResponse {
	resp := internship.InternshipResponse{
		ID:        i.ID,
		UserID:    i.UserID,
		FullName:  i.UserFullName,
		Email:     i.UserEmail,
		Position:  i.UserPosition,
		StartDate: i.StartDate.Format("2006-01-02"),
		EndDate:   i.EndDate.Format("2006-01-02"),
		Status:    string(i.Status),
	}
	if withProgress {
		progress := i.ProgressAt(clock.Today(s.clock))
		resp.Progress = &progress
	}
	return resp
}

// GetMyInternship implements internship.InternshipService.
func (s *InternshipServiceImpl) GetMyInternship(ctx context.Context) (internship.InternshipResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return internship.InternshipResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return internship.InternshipResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	data, err := s.InternshipRepository.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internship.InternshipResponse{}, internship.ErrNoActiveInternship
		}
		return internship.InternshipResponse{}, fmt.Errorf("failed to get active internship: %w", err)
	}

	return s.toResponse(data, true), nil
}

// Create implements internship.InternshipService.
func (s *InternshipServiceImpl) Create(ctx context.Context, req internship.CreateInternshipRequest) (internship.InternshipResponse, error) {
	if err := req.Validate(); err != nil {
		return internship.InternshipResponse{}, err
	}

	userData, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internship.InternshipResponse{}, user.ErrUserNotFound
		}
		return internship.InternshipResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	if userData.Role != user.RoleIntern {
		return internship.InternshipResponse{}, user.ErrInternRoleRequired
	}

	existing, err := s.InternshipRepository.GetActiveByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return internship.InternshipResponse{}, fmt.Errorf("failed to check active internship: %w", err)
	}
	if existing.ID != "" {
		return internship.InternshipResponse{}, internship.ErrActiveInternshipOpen
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.InternshipRepository.Create(ctx, internship.Internship{
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    internship.StatusActive,
	})
	if err != nil {
		return internship.InternshipResponse{}, fmt.Errorf("failed to create internship: %w", err)
	}

	return s.toResponse(created, true), nil
}

// Update implements internship.InternshipService.
func (s *InternshipServiceImpl) Update(ctx context.Context, req internship.UpdateInternshipRequest) (internship.InternshipResponse, error) {
	if err := req.Validate(); err != nil {
		return internship.InternshipResponse{}, err
	}

	data, err := s.InternshipRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internship.InternshipResponse{}, internship.ErrInternshipNotFound
		}
		return internship.InternshipResponse{}, fmt.Errorf("failed to get internship by id: %w", err)
	}

	if req.StartDate != nil {
		data.StartDate, _ = time.Parse("2006-01-02", *req.StartDate)
	}
	if req.EndDate != nil {
		data.EndDate, _ = time.Parse("2006-01-02", *req.EndDate)
	}
	if data.EndDate.Before(data.StartDate) {
		return internship.InternshipResponse{}, internship.ErrInvalidDateRange
	}
	if req.Status != nil {
		data.Status = internship.Status(*req.Status)
	}

	if err := s.InternshipRepository.Update(ctx, data); err != nil {
		return internship.InternshipResponse{}, fmt.Errorf("failed to update internship: %w", err)
	}

	return s.toResponse(data, true), nil
}

// List implements internship.InternshipService.
func (s *InternshipServiceImpl) List(ctx context.Context, filter internship.ListFilter) ([]internship.InternshipResponse, int64, error) {
	items, total, err := s.InternshipRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list internships: %w", err)
	}

	responses := make([]internship.InternshipResponse, 0, len(items))
	for _, i := range items {
		responses = append(responses, s.toResponse(i, true))
	}
	return responses, total, nil
}

// Get implements internship.InternshipService.
func (s *InternshipServiceImpl) Get(ctx context.Context, id string) (internship.InternshipResponse, error) {
	data, err := s.InternshipRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return internship.InternshipResponse{}, internship.ErrInternshipNotFound
		}
		return internship.InternshipResponse{}, fmt.Errorf("failed to get internship by id: %w", err)
	}
	return s.toResponse(data, true), nil
}
