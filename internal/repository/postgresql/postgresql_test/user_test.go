package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	repo := postgresql.NewUserRepository(db)
	created := createTestUser(t, db, "intern@example.com", user.RoleIntern)
	assert.NotEmpty(t, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "intern@example.com", byID.Email)
	assert.Equal(t, user.RoleIntern, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "intern@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_RecordFailedLogin_LocksAtThreshold(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	repo := postgresql.NewUserRepository(db)
	created := createTestUser(t, db, "locked@example.com", user.RoleIntern)

	for i := 0; i < 2; i++ {
		require.NoError(t, repo.RecordFailedLogin(ctx, created.ID, 3, 15*time.Minute))
	}
	mid, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, mid.FailedLoginCount)
	assert.Nil(t, mid.LockedUntil)

	require.NoError(t, repo.RecordFailedLogin(ctx, created.ID, 3, 15*time.Minute))
	locked, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, locked.FailedLoginCount)
	require.NotNil(t, locked.LockedUntil)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *locked.LockedUntil, time.Minute)

	require.NoError(t, repo.ResetFailedLogin(ctx, created.ID))
	reset, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.FailedLoginCount)
	assert.Nil(t, reset.LockedUntil)
}

func TestUserRepository_List_FilterByRole(t *testing.T) {
	db := testDatabase(t)
	truncateTables(t, db)
	ctx := context.Background()

	repo := postgresql.NewUserRepository(db)
	createTestUser(t, db, "a@example.com", user.RoleIntern)
	createTestUser(t, db, "b@example.com", user.RoleIntern)
	createTestUser(t, db, "c@example.com", user.RoleMentor)

	role := string(user.RoleIntern)
	users, total, err := repo.List(ctx, user.ListFilter{Role: &role, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)
}
