package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionRepository_ApprovedLeaveLookups(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	intern := createTestUser(t, db, "leave@example.com", user.RoleIntern)
	ship := createTestInternship(t, db, intern.ID)
	repo := postgresql.NewPermissionRepository(db)

	p := &permission.Permission{
		InternshipID: ship.ID,
		Type:         permission.TypeSick,
		Title:        "Demam",
		Reason:       "Istirahat sesuai anjuran dokter",
		StartDate:    time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:       approval.StatusApproved,
	}
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.FindApprovedForDate(ctx, ship.ID, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, p.ID, found.ID)

	none, err := repo.FindApprovedForDate(ctx, ship.ID, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, none)

	inRange, err := repo.ListApprovedInRange(ctx, ship.ID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)
}

func TestPermissionRepository_HasOverlapping(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	intern := createTestUser(t, db, "overlap@example.com", user.RoleIntern)
	ship := createTestInternship(t, db, intern.ID)
	repo := postgresql.NewPermissionRepository(db)

	p := &permission.Permission{
		InternshipID: ship.ID,
		Type:         permission.TypeLeave,
		Title:        "Urusan keluarga",
		Reason:       "Acara keluarga di luar kota",
		StartDate:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Status:       approval.StatusPending,
	}
	require.NoError(t, repo.Create(ctx, p))

	overlaps, err := repo.HasOverlapping(ctx, ship.ID,
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	assert.True(t, overlaps)

	// The request itself is excluded when editing.
	overlaps, err = repo.HasOverlapping(ctx, ship.ID,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), p.ID)
	require.NoError(t, err)
	assert.False(t, overlaps)

	// Rejected requests never block a new one.
	p.Status = approval.StatusRejected
	require.NoError(t, repo.Update(ctx, p))
	overlaps, err = repo.HasOverlapping(ctx, ship.ID,
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	assert.False(t, overlaps)
}

func TestLogbookRepository_DuplicateDateAndStats(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	intern := createTestUser(t, db, "logbook@example.com", user.RoleIntern)
	ship := createTestInternship(t, db, intern.ID)
	repo := postgresql.NewLogbookRepository(db)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	result := "Menyiapkan environment development"
	first := &logbook.Logbook{
		InternshipID:   ship.ID,
		Date:           day,
		ActivityDetail: "Setup project",
		ResultOutput:   &result,
		Status:         approval.StatusSent,
	}
	require.NoError(t, repo.Create(ctx, first))

	dup := &logbook.Logbook{
		InternshipID:   ship.ID,
		Date:           day,
		ActivityDetail: "Duplicate",
		Status:         approval.StatusDraft,
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), logbook.ErrDuplicateDate)

	second := &logbook.Logbook{
		InternshipID:   ship.ID,
		Date:           day.AddDate(0, 0, 1),
		ActivityDetail: "Belajar codebase",
		Status:         approval.StatusDraft,
	}
	require.NoError(t, repo.Create(ctx, second))

	stats, err := repo.CountByStatus(ctx, ship.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Sent)
	assert.Equal(t, 1, stats.Draft)
}
