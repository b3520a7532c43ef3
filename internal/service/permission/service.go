package permission

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/simagang/simagang-backend-go/internal/service/file"
)

const attachmentURLExpiry = 15 * time.Minute

type PermissionServiceImpl struct {
	permission.PermissionRepository
	internship.InternshipRepository
	fileService file.FileService
	clock       clock.Clock
}

func NewPermissionService(permissionRepository permission.PermissionRepository, internshipRepository internship.InternshipRepository, fileService file.FileService, clk clock.Clock) permission.PermissionService {
	return &PermissionServiceImpl{
		PermissionRepository: permissionRepository,
		InternshipRepository: internshipRepository,
		fileService:          fileService,
		clock:                clk,
	}
}

// currentInternship resolves the caller's active internship from the access
// token claims.
func (s *PermissionServiceImpl) currentInternship(ctx context.Context) (internship.Internship, error) {
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

func roleFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("role claim is missing or invalid")
	}
	return role, nil
}

func userIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func (s *PermissionServiceImpl) toResponse(ctx context.Context, p permission.Permission) permission.PermissionResponse {
	var attachmentURL *string
	if p.AttachmentPath != nil {
		if url, err := s.fileService.GetFileURL(ctx, *p.AttachmentPath, attachmentURLExpiry); err == nil {
			attachmentURL = &url
		}
	}
	return p.ToResponse(attachmentURL)
}

// Create implements permission.PermissionService.
func (s *PermissionServiceImpl) Create(ctx context.Context, req permission.CreatePermissionRequest, attachment *multipart.FileHeader) (*permission.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	overlaps, err := s.PermissionRepository.HasOverlapping(ctx, intern.ID, startDate, endDate, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlaps {
		return nil, permission.ErrOverlappingRequest
	}

	p := permission.Permission{
		InternshipID: intern.ID,
		Type:         permission.Type(req.Type),
		Title:        req.Title,
		Reason:       req.Reason,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       approval.PermissionWorkflow.ResubmitStatus(),
	}

	if attachment != nil {
		f, err := attachment.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment: %w", err)
		}
		defer f.Close()

		path, err := s.fileService.UploadPermissionAttachment(ctx, intern.ID, f, attachment.Filename)
		if err != nil {
			return nil, err
		}
		p.AttachmentPath = &path
	}

	if err := s.PermissionRepository.Create(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to create permission request: %w", err)
	}

	resp := s.toResponse(ctx, p)
	return &resp, nil
}

// Update implements permission.PermissionService.
func (s *PermissionServiceImpl) Update(ctx context.Context, id string, req permission.UpdatePermissionRequest, attachment *multipart.FileHeader) (*permission.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.PermissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, permission.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to get permission request: %w", err)
	}
	if p.InternshipID != intern.ID {
		return nil, permission.ErrNotOwner
	}
	if !approval.PermissionWorkflow.CanEdit(p.Status) {
		return nil, approval.ErrNotEditable
	}

	if req.Type != nil {
		p.Type = permission.Type(*req.Type)
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Reason != nil {
		p.Reason = *req.Reason
	}
	if req.StartDate != nil {
		p.StartDate, _ = time.Parse("2006-01-02", *req.StartDate)
	}
	if req.EndDate != nil {
		p.EndDate, _ = time.Parse("2006-01-02", *req.EndDate)
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, permission.ErrInvalidDateRange
	}

	overlaps, err := s.PermissionRepository.HasOverlapping(ctx, intern.ID, p.StartDate, p.EndDate, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlaps {
		return nil, permission.ErrOverlappingRequest
	}

	if attachment != nil {
		f, err := attachment.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment: %w", err)
		}
		defer f.Close()

		path, err := s.fileService.UploadPermissionAttachment(ctx, intern.ID, f, attachment.Filename)
		if err != nil {
			return nil, err
		}
		if p.AttachmentPath != nil {
			_ = s.fileService.DeleteFile(ctx, *p.AttachmentPath)
		}
		p.AttachmentPath = &path
	}

	// Any owner edit re-enters the review chain from the start.
	p.Status = approval.PermissionWorkflow.ResubmitStatus()
	p.ApprovedBy = nil
	p.ApprovedAt = nil

	if err := s.PermissionRepository.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update permission request: %w", err)
	}

	resp := s.toResponse(ctx, *p)
	return &resp, nil
}

// Delete implements permission.PermissionService.
func (s *PermissionServiceImpl) Delete(ctx context.Context, id string) error {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return err
	}

	p, err := s.PermissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return permission.ErrPermissionNotFound
		}
		return fmt.Errorf("failed to get permission request: %w", err)
	}
	if p.InternshipID != intern.ID {
		return permission.ErrNotOwner
	}
	if !approval.PermissionWorkflow.CanDelete(p.Status) {
		return approval.ErrNotDeletable
	}

	if err := s.PermissionRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete permission request: %w", err)
	}
	if p.AttachmentPath != nil {
		_ = s.fileService.DeleteFile(ctx, *p.AttachmentPath)
	}
	return nil
}

// ListMine implements permission.PermissionService.
func (s *PermissionServiceImpl) ListMine(ctx context.Context, filter permission.ListFilter) ([]permission.PermissionResponse, int, error) {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.InternshipID = &intern.ID
	return s.list(ctx, filter)
}

// GetByID implements permission.PermissionService.
func (s *PermissionServiceImpl) GetByID(ctx context.Context, id string) (*permission.PermissionResponse, error) {
	p, err := s.PermissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, permission.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to get permission request: %w", err)
	}

	resp := s.toResponse(ctx, *p)
	return &resp, nil
}

// List implements permission.PermissionService.
func (s *PermissionServiceImpl) List(ctx context.Context, filter permission.ListFilter) ([]permission.PermissionResponse, int, error) {
	return s.list(ctx, filter)
}

func (s *PermissionServiceImpl) list(ctx context.Context, filter permission.ListFilter) ([]permission.PermissionResponse, int, error) {
	items, total, err := s.PermissionRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list permission requests: %w", err)
	}

	responses := make([]permission.PermissionResponse, 0, len(items))
	for _, p := range items {
		responses = append(responses, s.toResponse(ctx, p))
	}
	return responses, total, nil
}

// Review implements permission.PermissionService.
func (s *PermissionServiceImpl) Review(ctx context.Context, id string, req permission.ReviewPermissionRequest) (*permission.PermissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role, err := roleFromClaims(ctx)
	if err != nil {
		return nil, err
	}
	reviewerID, err := userIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.PermissionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, permission.ErrPermissionNotFound
		}
		return nil, fmt.Errorf("failed to get permission request: %w", err)
	}

	next, err := approval.PermissionWorkflow.Review(p.Status, role, approval.Action(req.Action))
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	p.Status = next
	p.ApprovedBy = &reviewerID
	p.ApprovedAt = &now

	if err := s.PermissionRepository.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update permission request: %w", err)
	}

	resp := s.toResponse(ctx, *p)
	return &resp, nil
}
