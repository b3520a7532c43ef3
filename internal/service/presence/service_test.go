package presence

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID       = "0195fa0a-0000-7000-8000-000000000001"
	testInternshipID = "0195fa0a-0000-7000-8000-000000000002"
)

var testPolicy = Policy{
	OfficeLatitude:  0,
	OfficeLongitude: 0,
	RadiusMeters:    200,
	LateCutoff:      "08:30",
}

// ---- fakes ----

type fakePresenceRepo struct {
	mu      sync.Mutex
	records map[string]*presence.Presence
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{records: make(map[string]*presence.Presence)}
}

func presenceKey(internshipID string, date time.Time) string {
	return internshipID + "/" + date.Format("2006-01-02")
}

func (f *fakePresenceRepo) Create(ctx context.Context, p *presence.Presence) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := presenceKey(p.InternshipID, p.Date)
	if _, exists := f.records[key]; exists {
		return presence.ErrAlreadyCheckedIn
	}
	p.ID = key
	cp := *p
	f.records[key] = &cp
	return nil
}

func (f *fakePresenceRepo) SetCheckOut(ctx context.Context, internshipID string, date time.Time, upd presence.CheckOutUpdate) (*presence.Presence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[presenceKey(internshipID, date)]
	if !ok {
		return nil, presence.ErrNotCheckedInYet
	}
	if rec.CheckOut != nil {
		return nil, presence.ErrAlreadyCheckedOut
	}
	rec.CheckOut = &upd.Time
	rec.CheckOutPhoto = &upd.PhotoPath
	rec.CheckOutLatitude = &upd.Latitude
	rec.CheckOutLongitude = &upd.Longitude
	rec.CheckOutLocation = upd.Location
	cp := *rec
	return &cp, nil
}

func (f *fakePresenceRepo) GetByID(ctx context.Context, id string) (*presence.Presence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rec
	return &cp, nil
}

func (f *fakePresenceRepo) GetByDate(ctx context.Context, internshipID string, date time.Time) (*presence.Presence, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[presenceKey(internshipID, date)]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rec
	return &cp, nil
}

func (f *fakePresenceRepo) List(ctx context.Context, filter presence.ListFilter) ([]presence.Presence, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []presence.Presence
	for _, rec := range f.records {
		if filter.InternshipID != nil && rec.InternshipID != *filter.InternshipID {
			continue
		}
		if filter.DateFrom != nil && rec.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && rec.Date.After(*filter.DateTo) {
			continue
		}
		out = append(out, *rec)
	}
	return out, len(out), nil
}

func (f *fakePresenceRepo) CountByStatus(ctx context.Context, internshipID string, from, to time.Time) (map[presence.Status]int, error) {
	counts := make(map[presence.Status]int)
	recs, _, _ := f.List(ctx, presence.ListFilter{InternshipID: &internshipID, DateFrom: &from, DateTo: &to})
	for _, r := range recs {
		counts[r.Status]++
	}
	return counts, nil
}

type fakeInternshipRepo struct {
	active internship.Internship
}

func (f *fakeInternshipRepo) Create(ctx context.Context, i internship.Internship) (internship.Internship, error) {
	return i, nil
}

func (f *fakeInternshipRepo) GetByID(ctx context.Context, id string) (internship.Internship, error) {
	if id == f.active.ID {
		return f.active, nil
	}
	return internship.Internship{}, pgx.ErrNoRows
}

func (f *fakeInternshipRepo) GetActiveByUserID(ctx context.Context, userID string) (internship.Internship, error) {
	if userID == f.active.UserID {
		return f.active, nil
	}
	return internship.Internship{}, pgx.ErrNoRows
}

func (f *fakeInternshipRepo) List(ctx context.Context, filter internship.ListFilter) ([]internship.Internship, int64, error) {
	return nil, 0, nil
}

func (f *fakeInternshipRepo) Update(ctx context.Context, i internship.Internship) error {
	return nil
}

type fakePermissionRepo struct {
	approved []permission.Permission
}

func (f *fakePermissionRepo) Create(ctx context.Context, p *permission.Permission) error { return nil }
func (f *fakePermissionRepo) GetByID(ctx context.Context, id string) (*permission.Permission, error) {
	return nil, pgx.ErrNoRows
}
func (f *fakePermissionRepo) List(ctx context.Context, filter permission.ListFilter) ([]permission.Permission, int, error) {
	return nil, 0, nil
}
func (f *fakePermissionRepo) Update(ctx context.Context, p *permission.Permission) error { return nil }
func (f *fakePermissionRepo) Delete(ctx context.Context, id string) error                { return nil }

func (f *fakePermissionRepo) FindApprovedForDate(ctx context.Context, internshipID string, day time.Time) (*permission.Permission, error) {
	for i := range f.approved {
		if f.approved[i].InternshipID == internshipID && f.approved[i].Covers(day) {
			return &f.approved[i], nil
		}
	}
	return nil, nil
}

func (f *fakePermissionRepo) ListApprovedInRange(ctx context.Context, internshipID string, start, end time.Time) ([]permission.Permission, error) {
	var out []permission.Permission
	for _, p := range f.approved {
		if p.InternshipID == internshipID && !p.EndDate.Before(start) && !p.StartDate.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) HasOverlapping(ctx context.Context, internshipID string, start, end time.Time, excludeID string) (bool, error) {
	return false, nil
}

type fakeFileService struct {
	deleted []string
}

func (f *fakeFileService) UploadAttendancePhoto(ctx context.Context, internshipID string, date time.Time, file io.Reader, filename string, checkType string) (string, error) {
	return "attendance/" + date.Format("2006-01-02") + "/" + internshipID + "-" + checkType + ".jpg", nil
}

func (f *fakeFileService) UploadPermissionAttachment(ctx context.Context, internshipID string, file io.Reader, filename string) (string, error) {
	return "permissions/" + internshipID + "/" + filename, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFileService) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

// ---- helpers ----

func internCtx(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": testUserID,
		"email":   "intern@example.com",
		"role":    "intern",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func testPhoto(t *testing.T) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("photo", "selfie.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not-a-real-jpeg"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["photo"][0]
}

func floatPtr(v float64) *float64 { return &v }

func newTestService(at time.Time, leaves ...permission.Permission) (presence.PresenceService, *fakePresenceRepo) {
	presenceRepo := newFakePresenceRepo()
	internshipRepo := &fakeInternshipRepo{
		active: internship.Internship{
			ID:        testInternshipID,
			UserID:    testUserID,
			StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Status:    internship.StatusActive,
		},
	}
	permissionRepo := &fakePermissionRepo{approved: leaves}
	svc := NewPresenceService(presenceRepo, internshipRepo, permissionRepo, &fakeFileService{}, clock.Fixed(at), testPolicy)
	return svc, presenceRepo
}

// ---- tests ----

func TestPresenceService_CheckIn_BeforeCutoffIsPresent(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 29, 0, 0, time.UTC))
	ctx := internCtx(t)

	resp, err := svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))

	require.NoError(t, err)
	assert.Equal(t, string(presence.StatusPresent), resp.Status)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.NotNil(t, resp.CheckIn)
	assert.NotNil(t, resp.CheckInPhoto)
}

func TestPresenceService_CheckIn_AtCutoffIsLate(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC))
	ctx := internCtx(t)

	resp, err := svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))

	require.NoError(t, err)
	assert.Equal(t, string(presence.StatusLate), resp.Status)
}

func TestPresenceService_CheckIn_Twice(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	ctx := internCtx(t)
	req := presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}

	_, err := svc.CheckIn(ctx, req, testPhoto(t))
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, req, testPhoto(t))
	assert.ErrorIs(t, err, presence.ErrAlreadyCheckedIn)
}

func TestPresenceService_CheckIn_TwiceWinsOverGeofence(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	ctx := internCtx(t)

	_, err := svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))
	require.NoError(t, err)

	// A second attempt from outside the radius is still reported as a
	// duplicate, not as a geofence violation.
	_, err = svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.0045), Longitude: floatPtr(0)}, testPhoto(t))
	assert.ErrorIs(t, err, presence.ErrAlreadyCheckedIn)
	assert.NotErrorIs(t, err, presence.ErrOutsideAllowedRadius)
}

func TestPresenceService_CheckIn_OutsideGeofence(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	ctx := internCtx(t)

	// ~500m north of the office against a 200m radius.
	_, err := svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.0045), Longitude: floatPtr(0)}, testPhoto(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, presence.ErrOutsideAllowedRadius)

	var outErr *presence.OutOfRadiusError
	require.ErrorAs(t, err, &outErr)
	assert.InDelta(t, 500, outErr.DistanceMeters, 5)
	assert.Equal(t, float64(200), outErr.MaxRadiusMeters)
}

func TestPresenceService_CheckIn_PhotoRequired(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	ctx := internCtx(t)

	_, err := svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, nil)
	assert.ErrorIs(t, err, presence.ErrPhotoRequired)
}

func TestPresenceService_CheckIn_ApprovedLeaveDoesNotBlock(t *testing.T) {
	leave := permission.Permission{
		ID:           "leave-1",
		InternshipID: testInternshipID,
		Type:         permission.TypeSick,
		StartDate:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	// Showing up on a leave day is allowed and records the normal status;
	// the leave only classifies days that stay empty.
	svc, _ := newTestService(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), leave)
	ctx := internCtx(t)

	resp, err := svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))

	require.NoError(t, err)
	assert.Equal(t, string(presence.StatusLate), resp.Status)
}

func TestPresenceService_CheckOut_WithoutCheckIn(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC))
	ctx := internCtx(t)

	_, err := svc.CheckOut(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))
	assert.ErrorIs(t, err, presence.ErrNotCheckedInYet)
}

func TestPresenceService_CheckInThenCheckOut(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	ctx := internCtx(t)

	inLoc := "Lobi kantor"
	inReq := presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0), Location: &inLoc}
	_, err := svc.CheckIn(ctx, inReq, testPhoto(t))
	require.NoError(t, err)

	outLoc := "Parkiran"
	outReq := presence.CheckRequest{Latitude: floatPtr(0.0012), Longitude: floatPtr(0.0003), Location: &outLoc}
	resp, err := svc.CheckOut(ctx, outReq, testPhoto(t))
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckOut)
	assert.NotNil(t, resp.CheckOutPhoto)

	// Each side keeps its own coordinates and label.
	require.NotNil(t, resp.CheckInLatitude)
	assert.Equal(t, 0.001, *resp.CheckInLatitude)
	assert.Equal(t, inLoc, *resp.CheckInLocation)
	require.NotNil(t, resp.CheckOutLatitude)
	assert.Equal(t, 0.0012, *resp.CheckOutLatitude)
	assert.Equal(t, outLoc, *resp.CheckOutLocation)

	_, err = svc.CheckOut(ctx, outReq, testPhoto(t))
	assert.ErrorIs(t, err, presence.ErrAlreadyCheckedOut)
}

func TestPresenceService_Today(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	ctx := internCtx(t)

	resp, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.False(t, resp.CheckedIn)
	assert.Nil(t, resp.Record)

	_, err = svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))
	require.NoError(t, err)

	resp, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.True(t, resp.CheckedIn)
	assert.False(t, resp.CheckedOut)
	require.NotNil(t, resp.Record)
}

func TestPresenceService_MyStats(t *testing.T) {
	// Today is Monday 2026-03-09. The internship started Monday 2026-03-02.
	leave := permission.Permission{
		ID:           "leave-1",
		InternshipID: testInternshipID,
		Type:         permission.TypeSick,
		StartDate:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	svc, repo := newTestService(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC), leave)
	ctx := internCtx(t)

	checkInAt := func(day int, status presence.Status) {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
		in := date.Add(8 * time.Hour)
		require.NoError(t, repo.Create(ctx, &presence.Presence{
			InternshipID: testInternshipID,
			Date:         date,
			Status:       status,
			CheckIn:      &in,
		}))
	}
	checkInAt(2, presence.StatusPresent) // Mon
	checkInAt(3, presence.StatusLate)    // Tue
	// Wed 3/4 covered by approved sick leave, no record.
	// Thu 3/5 and Fri 3/6 have nothing: alpha.
	// Sat 3/7 and Sun 3/8 are skipped. Mon 3/9 is today and still open.

	stats, err := svc.MyStats(ctx, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.Sick)
	assert.Equal(t, 0, stats.Permission)
	assert.Equal(t, 2, stats.Alpha)
}

func TestPresenceService_NoActiveInternship(t *testing.T) {
	svc, _ := newTestService(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": "0195fa0a-ffff-7000-8000-00000000dead",
		"role":    "intern",
	})
	require.NoError(t, err)
	ctx := jwtauth.NewContext(context.Background(), token, nil)

	_, err = svc.CheckIn(ctx, presence.CheckRequest{Latitude: floatPtr(0.001), Longitude: floatPtr(0)}, testPhoto(t))
	assert.ErrorIs(t, err, internship.ErrNoActiveInternship)
}
