package permission

import (
	"context"
	"mime/multipart"
)

type PermissionService interface {
	// Intern-facing operations. The owning internship is resolved from the
	// authenticated user's claims.
	Create(ctx context.Context, req CreatePermissionRequest, attachment *multipart.FileHeader) (*PermissionResponse, error)
	Update(ctx context.Context, id string, req UpdatePermissionRequest, attachment *multipart.FileHeader) (*PermissionResponse, error)
	Delete(ctx context.Context, id string) error
	ListMine(ctx context.Context, filter ListFilter) ([]PermissionResponse, int, error)

	// Reviewer operations.
	GetByID(ctx context.Context, id string) (*PermissionResponse, error)
	List(ctx context.Context, filter ListFilter) ([]PermissionResponse, int, error)
	Review(ctx context.Context, id string, req ReviewPermissionRequest) (*PermissionResponse, error)
}
