package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresence(internshipID string, date time.Time) *presence.Presence {
	checkIn := date.Add(8 * time.Hour)
	photo := "attendance/2026-03-02/test-in.jpg"
	lat, lon := -6.2, 106.8
	return &presence.Presence{
		InternshipID:     internshipID,
		Date:             date,
		Status:           presence.StatusPresent,
		CheckIn:          &checkIn,
		CheckInPhoto:     &photo,
		CheckInLatitude:  &lat,
		CheckInLongitude: &lon,
	}
}

func TestPresenceRepository_Create_DuplicateDate(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	intern := createTestUser(t, db, "presence@example.com", user.RoleIntern)
	ship := createTestInternship(t, db, intern.ID)
	repo := postgresql.NewPresenceRepository(db)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newPresence(ship.ID, day)))

	err := repo.Create(ctx, newPresence(ship.ID, day))
	assert.ErrorIs(t, err, presence.ErrAlreadyCheckedIn)
}

func TestPresenceRepository_SetCheckOut(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	intern := createTestUser(t, db, "checkout@example.com", user.RoleIntern)
	ship := createTestInternship(t, db, intern.ID)
	repo := postgresql.NewPresenceRepository(db)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	upd := presence.CheckOutUpdate{
		Time:      day.Add(17 * time.Hour),
		PhotoPath: "attendance/2026-03-02/test-out.jpg",
		Latitude:  -6.21,
		Longitude: 106.81,
	}

	// No check-in row yet.
	_, err := repo.SetCheckOut(ctx, ship.ID, day, upd)
	assert.ErrorIs(t, err, presence.ErrNotCheckedInYet)

	require.NoError(t, repo.Create(ctx, newPresence(ship.ID, day)))

	updated, err := repo.SetCheckOut(ctx, ship.ID, day, upd)
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOut)
	assert.True(t, updated.CheckOut.Equal(upd.Time))
	require.NotNil(t, updated.CheckOutLatitude)
	assert.Equal(t, -6.21, *updated.CheckOutLatitude)
	require.NotNil(t, updated.CheckInLatitude)
	assert.Equal(t, -6.2, *updated.CheckInLatitude)

	_, err = repo.SetCheckOut(ctx, ship.ID, day, upd)
	assert.ErrorIs(t, err, presence.ErrAlreadyCheckedOut)
}

func TestPresenceRepository_CountByStatus(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	intern := createTestUser(t, db, "stats@example.com", user.RoleIntern)
	ship := createTestInternship(t, db, intern.ID)
	repo := postgresql.NewPresenceRepository(db)

	days := []struct {
		date   time.Time
		status presence.Status
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), presence.StatusPresent},
		{time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), presence.StatusPresent},
		{time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), presence.StatusLate},
	}
	for _, d := range days {
		p := newPresence(ship.ID, d.date)
		p.Status = d.status
		require.NoError(t, repo.Create(ctx, p))
	}

	counts, err := repo.CountByStatus(ctx, ship.ID,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, counts[presence.StatusPresent])
	assert.Equal(t, 1, counts[presence.StatusLate])
}
