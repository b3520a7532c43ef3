package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/auth"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/simagang/simagang-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*user.User
	now   func() time.Time
}

func newFakeUserRepo(now func() time.Time) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*user.User), now: now}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return user.User{}, err
		}
		u.ID = id.String()
	}
	f.users[u.ID] = &u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return *u, nil
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return *u, nil
		}
	}
	return user.User{}, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = &u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) RecordFailedLogin(ctx context.Context, id string, maxFailures int, lockFor time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := f.now()
	u.FailedLoginCount++
	u.LastFailedLogin = &now
	if u.FailedLoginCount >= maxFailures {
		until := now.Add(lockFor)
		u.LockedUntil = &until
	}
	return nil
}

func (f *fakeUserRepo) ResetFailedLogin(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.FailedLoginCount = 0
	u.LockedUntil = nil
	u.LastFailedLogin = nil
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	u, err := repo.Create(context.Background(), user.User{
		ID:           "0195fa0a-0000-7000-8000-0000000000aa",
		FullName:     "Test Intern",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleIntern,
	})
	require.NoError(t, err)
	return u
}

func newTestAuthService(at time.Time, repo *fakeUserRepo) auth.AuthService {
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(repo, jwtService, clock.Fixed(at), LockoutPolicy{
		MaxFailures:  5,
		LockDuration: 15 * time.Minute,
	})
}

func TestAuthService_Register_Success(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	svc := newTestAuthService(now, repo)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		FullName: "New Intern",
		Email:    "new@example.com",
		Password: "password123",
		Position: "Backend Developer",
	})

	require.NoError(t, err)
	assert.Equal(t, string(user.RoleIntern), resp.User.Role)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)

	// The stored credential is a hash, never the raw password.
	stored, err := repo.GetByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	seedUser(t, repo, "intern@example.com", "password123")
	svc := newTestAuthService(now, repo)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		FullName: "Someone Else",
		Email:    "intern@example.com",
		Password: "password123",
		Position: "Backend Developer",
	})

	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestAuthService_Register_CanLoginAfterwards(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	svc := newTestAuthService(now, repo)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		FullName: "New Intern",
		Email:    "new@example.com",
		Password: "password123",
		Position: "Backend Developer",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "new@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
}

func TestAuthService_Login_Success(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	seedUser(t, repo, "intern@example.com", "password123")
	svc := newTestAuthService(now, repo)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Greater(t, resp.Token.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, "intern@example.com", resp.User.Email)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	seedUser(t, repo, "intern@example.com", "password123")
	svc := newTestAuthService(now, repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	svc := newTestAuthService(now, repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_LockoutAfterRepeatedFailures(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	seedUser(t, repo, "intern@example.com", "password123")
	svc := newTestAuthService(now, repo)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	}

	// Even the correct password is refused while the lock holds.
	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
}

func TestAuthService_Login_LockExpires(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	u := seedUser(t, repo, "intern@example.com", "password123")

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.RecordFailedLogin(context.Background(), u.ID, 5, 15*time.Minute))
	}

	svc := newTestAuthService(now.Add(16*time.Minute), repo)
	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)

	// The successful login cleared the counter.
	fresh, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.FailedLoginCount)
	assert.Nil(t, fresh.LockedUntil)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	seedUser(t, repo, "intern@example.com", "password123")
	svc := newTestAuthService(now, repo)

	login, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.Token.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(context.Background(), login.Token.RefreshToken))

	_, err = svc.Refresh(context.Background(), login.Token.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	repo := newFakeUserRepo(func() time.Time { return now })
	seedUser(t, repo, "intern@example.com", "password123")
	svc := newTestAuthService(now, repo)

	login, err := svc.Login(context.Background(), auth.LoginRequest{Email: "intern@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), login.Token.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
