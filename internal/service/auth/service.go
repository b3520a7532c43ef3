package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/auth"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/simagang/simagang-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type LockoutPolicy struct {
	MaxFailures  int
	LockDuration time.Duration
}

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	clock   clock.Clock
	lockout LockoutPolicy
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, clk clock.Clock, lockout LockoutPolicy) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepository,
		Service:        jwtService,
		clock:          clk,
		lockout:        lockout,
	}
}

// Register implements auth.AuthService. New accounts always start as interns;
// the registered user is logged in immediately.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	existing, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return auth.LoginResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing.ID != "" {
		return auth.LoginResponse{}, user.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.UserRepository.Create(ctx, user.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Position:     req.Position,
		Role:         user.RoleIntern,
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	var token auth.TokenResponse
	token.AccessToken, token.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(created.ID, created.Email, created.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	token.RefreshToken, token.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(created.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.LoginResponse{
		User:  user.ToResponse(created),
		Token: token,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	now := a.clock.Now()
	if userData.LockedUntil != nil && now.Before(*userData.LockedUntil) {
		return auth.LoginResponse{}, auth.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		if err := a.UserRepository.RecordFailedLogin(ctx, userData.ID, a.lockout.MaxFailures, a.lockout.LockDuration); err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to record failed login: %w", err)
		}
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if userData.FailedLoginCount > 0 || userData.LockedUntil != nil {
		if err := a.UserRepository.ResetFailedLogin(ctx, userData.ID); err != nil {
			return auth.LoginResponse{}, fmt.Errorf("failed to reset failed login counter: %w", err)
		}
	}

	var token auth.TokenResponse
	token.AccessToken, token.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	token.RefreshToken, token.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.LoginResponse{
		User:  user.ToResponse(userData),
		Token: token,
	}, nil
}

// Refresh implements auth.AuthService.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.Service.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, user.ErrUserNotFound
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	var token auth.TokenResponse
	token.AccessToken, token.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.Service.RevokeToken(refreshToken)
	return nil
}

// Profile implements auth.AuthService.
func (a *AuthServiceImpl) Profile(ctx context.Context) (user.UserResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.UserResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.ToResponse(userData), nil
}
