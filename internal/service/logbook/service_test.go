package logbook

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testInternUserID = "0195fa0a-0000-7000-8000-000000000001"
	testInternshipID = "0195fa0a-0000-7000-8000-000000000002"
	testMentorID     = "0195fa0a-0000-7000-8000-000000000003"
	testKadivID      = "0195fa0a-0000-7000-8000-000000000004"
)

type fakeLogbookRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*logbook.Logbook
}

func newFakeLogbookRepo() *fakeLogbookRepo {
	return &fakeLogbookRepo{items: make(map[string]*logbook.Logbook)}
}

func (f *fakeLogbookRepo) Create(ctx context.Context, l *logbook.Logbook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	l.ID = "log-" + strconv.Itoa(f.seq)
	cp := *l
	f.items[l.ID] = &cp
	return nil
}

func (f *fakeLogbookRepo) GetByID(ctx context.Context, id string) (*logbook.Logbook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLogbookRepo) GetByDate(ctx context.Context, internshipID string, date time.Time) (*logbook.Logbook, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.items {
		if l.InternshipID == internshipID && l.Date.Equal(date) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeLogbookRepo) List(ctx context.Context, filter logbook.ListFilter) ([]logbook.Logbook, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []logbook.Logbook
	for _, l := range f.items {
		if filter.InternshipID != nil && l.InternshipID != *filter.InternshipID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		out = append(out, *l)
	}
	return out, len(out), nil
}

func (f *fakeLogbookRepo) Update(ctx context.Context, l *logbook.Logbook) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[l.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *l
	f.items[l.ID] = &cp
	return nil
}

func (f *fakeLogbookRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeLogbookRepo) CountByStatus(ctx context.Context, internshipID string) (*logbook.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := logbook.Stats{}
	for _, l := range f.items {
		if l.InternshipID != internshipID {
			continue
		}
		stats.Total++
		switch l.Status {
		case approval.StatusDraft:
			stats.Draft++
		case approval.StatusSent:
			stats.Sent++
		case approval.StatusReviewMentor, approval.StatusReviewKadiv:
			stats.InReview++
		case approval.StatusApproved:
			stats.Approved++
		case approval.StatusRejected:
			stats.Rejected++
		}
	}
	return &stats, nil
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

func ctxWithRole(t *testing.T, userID, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(t *testing.T) logbook.LogbookService {
	t.Helper()
	repo := newFakeLogbookRepo()
	internshipRepo := &fakeInternshipRepo{
		active: internship.Internship{
			ID:        testInternshipID,
			UserID:    testInternUserID,
			StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			Status:    internship.StatusActive,
		},
	}
	return NewLogbookService(repo, internshipRepo, clock.Fixed(time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)))
}

func createEntry(t *testing.T, svc logbook.LogbookService, date, status string) *logbook.LogbookResponse {
	t.Helper()
	ctx := ctxWithRole(t, testInternUserID, "intern")
	result := "Wired the attendance endpoints to the mobile app"
	resp, err := svc.Create(ctx, logbook.CreateLogbookRequest{
		Date:           date,
		ActivityDetail: "API integration",
		ResultOutput:   &result,
		Status:         status,
	})
	require.NoError(t, err)
	return resp
}

func TestLogbookService_Create_DefaultsToSent(t *testing.T) {
	svc := newTestService(t)

	resp := createEntry(t, svc, "2026-03-10", "")
	assert.Equal(t, string(approval.StatusSent), resp.Status)
}

func TestLogbookService_Create_Draft(t *testing.T) {
	svc := newTestService(t)

	resp := createEntry(t, svc, "2026-03-10", "draft")
	assert.Equal(t, string(approval.StatusDraft), resp.Status)
}

func TestLogbookService_Create_DuplicateDate(t *testing.T) {
	svc := newTestService(t)
	createEntry(t, svc, "2026-03-10", "")

	ctx := ctxWithRole(t, testInternUserID, "intern")
	result := "Same day again"
	_, err := svc.Create(ctx, logbook.CreateLogbookRequest{
		Date:           "2026-03-10",
		ActivityDetail: "Second entry",
		ResultOutput:   &result,
	})
	assert.ErrorIs(t, err, logbook.ErrDuplicateDate)
}

func TestLogbookService_ReviewChain(t *testing.T) {
	svc := newTestService(t)
	created := createEntry(t, svc, "2026-03-10", "")

	mentorCtx := ctxWithRole(t, testMentorID, "mentor")
	afterMentor, err := svc.Review(mentorCtx, created.ID, logbook.ReviewLogbookRequest{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusReviewKadiv), afterMentor.Status)

	kadivCtx := ctxWithRole(t, testKadivID, "kadiv")
	afterKadiv, err := svc.Review(kadivCtx, created.ID, logbook.ReviewLogbookRequest{Action: "approve"})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), afterKadiv.Status)
	require.NotNil(t, afterKadiv.ApprovedBy)
	assert.Equal(t, testKadivID, *afterKadiv.ApprovedBy)
}

func TestLogbookService_Review_DraftNotReviewable(t *testing.T) {
	svc := newTestService(t)
	created := createEntry(t, svc, "2026-03-10", "draft")

	mentorCtx := ctxWithRole(t, testMentorID, "mentor")
	_, err := svc.Review(mentorCtx, created.ID, logbook.ReviewLogbookRequest{Action: "approve"})
	assert.ErrorIs(t, err, approval.ErrStatusNotReviewable)

	_, err = svc.Review(mentorCtx, created.ID, logbook.ReviewLogbookRequest{Action: "reject"})
	assert.ErrorIs(t, err, approval.ErrStatusNotReviewable)
}

func TestLogbookService_Update_SubmitDraft(t *testing.T) {
	svc := newTestService(t)
	created := createEntry(t, svc, "2026-03-10", "draft")

	ctx := ctxWithRole(t, testInternUserID, "intern")
	sent := string(approval.StatusSent)
	updated, err := svc.Update(ctx, created.ID, logbook.UpdateLogbookRequest{Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusSent), updated.Status)
}

func TestLogbookService_Update_SubmitDraftWithoutResult(t *testing.T) {
	svc := newTestService(t)

	ctx := ctxWithRole(t, testInternUserID, "intern")
	created, err := svc.Create(ctx, logbook.CreateLogbookRequest{
		Date:           "2026-03-10",
		ActivityDetail: "API integration",
		Status:         "draft",
	})
	require.NoError(t, err)
	assert.Nil(t, created.ResultOutput)

	sent := string(approval.StatusSent)
	_, err = svc.Update(ctx, created.ID, logbook.UpdateLogbookRequest{Status: &sent})
	assert.ErrorIs(t, err, logbook.ErrResultRequired)
}

func TestLogbookService_Update_RejectedResubmits(t *testing.T) {
	svc := newTestService(t)
	created := createEntry(t, svc, "2026-03-10", "")

	mentorCtx := ctxWithRole(t, testMentorID, "mentor")
	_, err := svc.Review(mentorCtx, created.ID, logbook.ReviewLogbookRequest{Action: "reject"})
	require.NoError(t, err)

	ctx := ctxWithRole(t, testInternUserID, "intern")
	activity := "API integration, reworked"
	updated, err := svc.Update(ctx, created.ID, logbook.UpdateLogbookRequest{ActivityDetail: &activity})
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusSent), updated.Status)
	assert.Nil(t, updated.ApprovedBy)
	assert.Nil(t, updated.ApprovedAt)
}

func TestLogbookService_Update_MidReviewFails(t *testing.T) {
	svc := newTestService(t)
	created := createEntry(t, svc, "2026-03-10", "")

	mentorCtx := ctxWithRole(t, testMentorID, "mentor")
	_, err := svc.Review(mentorCtx, created.ID, logbook.ReviewLogbookRequest{Action: "approve"})
	require.NoError(t, err)

	ctx := ctxWithRole(t, testInternUserID, "intern")
	activity := "too late"
	_, err = svc.Update(ctx, created.ID, logbook.UpdateLogbookRequest{ActivityDetail: &activity})
	assert.ErrorIs(t, err, approval.ErrNotEditable)
}

func TestLogbookService_MyStats(t *testing.T) {
	svc := newTestService(t)
	createEntry(t, svc, "2026-03-09", "draft")
	createEntry(t, svc, "2026-03-10", "")
	second := createEntry(t, svc, "2026-03-11", "")

	mentorCtx := ctxWithRole(t, testMentorID, "mentor")
	_, err := svc.Review(mentorCtx, second.ID, logbook.ReviewLogbookRequest{Action: "approve"})
	require.NoError(t, err)

	ctx := ctxWithRole(t, testInternUserID, "intern")
	stats, err := svc.MyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Draft)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.InReview)
}
