package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/handler/http/response"
)

func roleFromClaims(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// AdminOnly requires the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// InternOnly requires the intern role
func InternOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || role != user.RoleIntern {
			response.HandleError(w, user.ErrInternRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ReviewerOnly requires the mentor or kadiv role
func ReviewerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromClaims(r)
		if !ok || (role != user.RoleMentor && role != user.RoleKadiv) {
			response.HandleError(w, user.ErrReviewerRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
