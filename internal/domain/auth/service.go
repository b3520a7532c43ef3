package auth

import (
	"context"

	"github.com/simagang/simagang-backend-go/internal/domain/user"
)

// AuthService defines the authentication surface: self-registration,
// credential login with account lockout, token refresh, logout, and
// profile lookup.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (LoginResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (user.UserResponse, error)
}
