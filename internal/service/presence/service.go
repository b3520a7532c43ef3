package presence

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/simagang/simagang-backend-go/internal/pkg/utils"
	"github.com/simagang/simagang-backend-go/internal/service/file"
)

const photoURLExpiry = 15 * time.Minute

// Policy holds the office geofence and the late cutoff. A check-in at or
// after the cutoff is recorded as late.
type Policy struct {
	OfficeLatitude  float64
	OfficeLongitude float64
	RadiusMeters    float64
	LateCutoff      string // "HH:MM", wall clock in UTC
}

type PresenceServiceImpl struct {
	presence.PresenceRepository
	internship.InternshipRepository
	permission.PermissionRepository
	fileService file.FileService
	clock       clock.Clock
	policy      Policy
}

func NewPresenceService(presenceRepository presence.PresenceRepository, internshipRepository internship.InternshipRepository, permissionRepository permission.PermissionRepository, fileService file.FileService, clk clock.Clock, policy Policy) presence.PresenceService {
	return &PresenceServiceImpl{
		PresenceRepository:   presenceRepository,
		InternshipRepository: internshipRepository,
		PermissionRepository: permissionRepository,
		fileService:          fileService,
		clock:                clk,
		policy:               policy,
	}
}

func (s *PresenceServiceImpl) currentInternship(ctx context.Context) (internship.Internship, error) {
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

func (s *PresenceServiceImpl) checkGeofence(lat, lon float64) error {
	within, distance := utils.WithinRadius(lat, lon, s.policy.OfficeLatitude, s.policy.OfficeLongitude, s.policy.RadiusMeters)
	if !within {
		return &presence.OutOfRadiusError{
			DistanceMeters:  distance,
			MaxRadiusMeters: s.policy.RadiusMeters,
		}
	}
	return nil
}

// lateCutoffAt anchors the policy's wall-clock cutoff on the given UTC day.
func (s *PresenceServiceImpl) lateCutoffAt(day time.Time) (time.Time, error) {
	cutoff, err := time.Parse("15:04", s.policy.LateCutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid late cutoff %q: %w", s.policy.LateCutoff, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), cutoff.Hour(), cutoff.Minute(), 0, 0, time.UTC), nil
}

func (s *PresenceServiceImpl) toResponse(ctx context.Context, p presence.Presence) presence.PresenceResponse {
	var checkInURL, checkOutURL *string
	if p.CheckInPhoto != nil {
		if url, err := s.fileService.GetFileURL(ctx, *p.CheckInPhoto, photoURLExpiry); err == nil {
			checkInURL = &url
		}
	}
	if p.CheckOutPhoto != nil {
		if url, err := s.fileService.GetFileURL(ctx, *p.CheckOutPhoto, photoURLExpiry); err == nil {
			checkOutURL = &url
		}
	}
	return p.ToResponse(checkInURL, checkOutURL)
}

// CheckIn implements presence.PresenceService.
func (s *PresenceServiceImpl) CheckIn(ctx context.Context, req presence.CheckRequest, photo *multipart.FileHeader) (*presence.PresenceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, presence.ErrPhotoRequired
	}

	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	today := clock.Today(s.clock)

	// Refuse a second check-in before touching the geofence or storage.
	if _, err := s.PresenceRepository.GetByDate(ctx, intern.ID, today); err == nil {
		return nil, presence.ErrAlreadyCheckedIn
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to check today's record: %w", err)
	}

	if err := s.checkGeofence(*req.Latitude, *req.Longitude); err != nil {
		return nil, err
	}

	// An approved leave never blocks check-in. Checking in on a leave day
	// records present/late as usual; the leave status only classifies days
	// that end with no record at all.
	status := presence.StatusPresent
	cutoff, err := s.lateCutoffAt(today)
	if err != nil {
		return nil, err
	}
	if !now.Before(cutoff) {
		status = presence.StatusLate
	}

	f, err := photo.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	photoPath, err := s.fileService.UploadAttendancePhoto(ctx, intern.ID, today, f, photo.Filename, "check-in")
	if err != nil {
		return nil, err
	}

	p := presence.Presence{
		InternshipID:     intern.ID,
		Date:             today,
		Status:           status,
		CheckIn:          &now,
		CheckInPhoto:     &photoPath,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInLocation:  req.Location,
	}

	if err := s.PresenceRepository.Create(ctx, &p); err != nil {
		if errors.Is(err, presence.ErrAlreadyCheckedIn) {
			_ = s.fileService.DeleteFile(ctx, photoPath)
		}
		return nil, err
	}

	resp := s.toResponse(ctx, p)
	return &resp, nil
}

// CheckOut implements presence.PresenceService.
func (s *PresenceServiceImpl) CheckOut(ctx context.Context, req presence.CheckRequest, photo *multipart.FileHeader) (*presence.PresenceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, presence.ErrPhotoRequired
	}

	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.checkGeofence(*req.Latitude, *req.Longitude); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	today := clock.Today(s.clock)

	f, err := photo.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	photoPath, err := s.fileService.UploadAttendancePhoto(ctx, intern.ID, today, f, photo.Filename, "check-out")
	if err != nil {
		return nil, err
	}

	p, err := s.PresenceRepository.SetCheckOut(ctx, intern.ID, today, presence.CheckOutUpdate{
		Time:      now,
		PhotoPath: photoPath,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Location:  req.Location,
	})
	if err != nil {
		_ = s.fileService.DeleteFile(ctx, photoPath)
		return nil, err
	}

	resp := s.toResponse(ctx, *p)
	return &resp, nil
}

// Today implements presence.PresenceService.
func (s *PresenceServiceImpl) Today(ctx context.Context) (*presence.TodayResponse, error) {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)

	leave, err := s.PermissionRepository.FindApprovedForDate(ctx, intern.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check approved leave: %w", err)
	}

	resp := presence.TodayResponse{
		Date:            today.Format("2006-01-02"),
		OnApprovedLeave: leave != nil,
	}

	record, err := s.PresenceRepository.GetByDate(ctx, intern.ID, today)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &resp, nil
		}
		return nil, fmt.Errorf("failed to get today's record: %w", err)
	}

	recordResp := s.toResponse(ctx, *record)
	resp.Record = &recordResp
	resp.CheckedIn = record.CheckIn != nil
	resp.CheckedOut = record.CheckOut != nil
	return &resp, nil
}

// ListMine implements presence.PresenceService.
func (s *PresenceServiceImpl) ListMine(ctx context.Context, filter presence.ListFilter) ([]presence.PresenceResponse, int, error) {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.InternshipID = &intern.ID
	return s.list(ctx, filter)
}

// List implements presence.PresenceService.
func (s *PresenceServiceImpl) List(ctx context.Context, filter presence.ListFilter) ([]presence.PresenceResponse, int, error) {
	return s.list(ctx, filter)
}

func (s *PresenceServiceImpl) list(ctx context.Context, filter presence.ListFilter) ([]presence.PresenceResponse, int, error) {
	items, total, err := s.PresenceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list presence records: %w", err)
	}

	responses := make([]presence.PresenceResponse, 0, len(items))
	for _, p := range items {
		responses = append(responses, s.toResponse(ctx, p))
	}
	return responses, total, nil
}

// GetByID implements presence.PresenceService.
func (s *PresenceServiceImpl) GetByID(ctx context.Context, id string) (*presence.PresenceResponse, error) {
	p, err := s.PresenceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, presence.ErrPresenceNotFound
		}
		return nil, fmt.Errorf("failed to get presence record: %w", err)
	}

	resp := s.toResponse(ctx, *p)
	return &resp, nil
}

// MyStats implements presence.PresenceService.
func (s *PresenceServiceImpl) MyStats(ctx context.Context, year int, month int) (*presence.Stats, error) {
	intern, err := s.currentInternship(ctx)
	if err != nil {
		return nil, err
	}
	return s.statsFor(ctx, intern, year, month)
}

// StatsFor implements presence.PresenceService.
func (s *PresenceServiceImpl) StatsFor(ctx context.Context, internshipID string, year int, month int) (*presence.Stats, error) {
	intern, err := s.InternshipRepository.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internship.ErrInternshipNotFound
		}
		return nil, fmt.Errorf("failed to get internship by id: %w", err)
	}
	return s.statsFor(ctx, intern, year, month)
}

// statsFor tallies the month's recorded statuses, then classifies every past
// working day of the internship period without a record: approved leave makes
// it sick or permission, anything else is alpha.
func (s *PresenceServiceImpl) statsFor(ctx context.Context, intern internship.Internship, year int, month int) (*presence.Stats, error) {
	monthStart, monthEnd := clock.MonthBounds(year, time.Month(month))
	from := monthStart
	to := monthEnd.AddDate(0, 0, -1) // inclusive last day of month

	records, _, err := s.PresenceRepository.List(ctx, presence.ListFilter{
		InternshipID: &intern.ID,
		DateFrom:     &from,
		DateTo:       &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list presence records: %w", err)
	}

	leaves, err := s.PermissionRepository.ListApprovedInRange(ctx, intern.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leaves: %w", err)
	}

	stats := presence.Stats{}
	recorded := make(map[string]presence.Status, len(records))
	for _, r := range records {
		recorded[r.Date.Format("2006-01-02")] = r.Status
	}

	today := clock.Today(s.clock)

	// Clamp the sweep to the internship period; only days before today can be
	// missing for good.
	sweepFrom := from
	if intern.StartDate.After(sweepFrom) {
		sweepFrom = dateOnly(intern.StartDate)
	}
	sweepTo := to
	if dateOnly(intern.EndDate).Before(sweepTo) {
		sweepTo = dateOnly(intern.EndDate)
	}

	for day := sweepFrom; !day.After(sweepTo); day = day.AddDate(0, 0, 1) {
		if status, ok := recorded[day.Format("2006-01-02")]; ok {
			countStatus(&stats, status)
			continue
		}
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if !day.Before(today) {
			continue
		}

		onLeave := false
		for _, leave := range leaves {
			if leave.Covers(day) {
				if leave.Type == permission.TypeSick {
					stats.Sick++
				} else {
					stats.Permission++
				}
				onLeave = true
				break
			}
		}
		if !onLeave {
			stats.Alpha++
		}
	}

	return &stats, nil
}

func countStatus(stats *presence.Stats, status presence.Status) {
	switch status {
	case presence.StatusPresent:
		stats.Present++
	case presence.StatusLate:
		stats.Late++
	case presence.StatusSick:
		stats.Sick++
	case presence.StatusPermission:
		stats.Permission++
	}
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
