package postgresqltest

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
	"github.com/simagang/simagang-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var (
	testDB     *database.DB
	testDBOnce sync.Once
)

// testDatabase connects once per run and skips the caller when no test
// database is configured.
func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	testDBOnce.Do(func() {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
	})
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	ctx := context.Background()
	for _, table := range []string{"presences", "logbooks", "permissions", "internships", "users"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func createTestUser(t *testing.T, db *database.DB, email string, role user.Role) user.User {
	t.Helper()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	repo := postgresql.NewUserRepository(db)
	created, err := repo.Create(context.Background(), user.User{
		FullName:     "Test User",
		Email:        email,
		PasswordHash: string(hashedPassword),
		Position:     "Backend Engineering",
		Role:         role,
	})
	require.NoError(t, err)
	return created
}

func createTestInternship(t *testing.T, db *database.DB, userID string) internship.Internship {
	t.Helper()
	repo := postgresql.NewInternshipRepository(db)
	created, err := repo.Create(context.Background(), internship.Internship{
		UserID:    userID,
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:    internship.StatusActive,
	})
	require.NoError(t, err)
	return created
}
