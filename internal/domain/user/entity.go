package user

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMentor Role = "mentor"
	RoleKadiv  Role = "kadiv"
	RoleIntern Role = "intern"
)

func ValidRoles() []string {
	return []string{string(RoleAdmin), string(RoleMentor), string(RoleKadiv), string(RoleIntern)}
}

type User struct {
	ID               string
	FullName         string
	Email            string
	PasswordHash     string
	Position         string
	Role             Role
	FailedLoginCount int
	LockedUntil      *time.Time
	LastFailedLogin  *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
