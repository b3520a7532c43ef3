package user

import "context"

// UserService covers admin account management.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context, filter ListFilter) ([]UserResponse, int64, error)
}
