package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/domain/auth"
	"github.com/simagang/simagang-backend-go/internal/domain/internship"
	"github.com/simagang/simagang-backend-go/internal/domain/logbook"
	"github.com/simagang/simagang-backend-go/internal/domain/permission"
	"github.com/simagang/simagang-backend-go/internal/domain/presence"
	"github.com/simagang/simagang-backend-go/internal/domain/user"
	"github.com/simagang/simagang-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence violations carry the measured distance
	var outOfRadius *presence.OutOfRadiusError
	if errors.As(err, &outOfRadius) {
		UnprocessableEntity(w, "OUTSIDE_ALLOWED_RADIUS", outOfRadius.Error(), map[string]string{
			"distance_meters":   fmt.Sprintf("%.0f", outOfRadius.DistanceMeters),
			"max_radius_meters": fmt.Sprintf("%.0f", outOfRadius.MaxRadiusMeters),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountLocked):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInternRoleRequired),
		errors.Is(err, user.ErrReviewerRoleRequired):
		Forbidden(w, err.Error())

	// Internship domain errors
	case errors.Is(err, internship.ErrInternshipNotFound):
		NotFound(w, "Internship not found")
	case errors.Is(err, internship.ErrNoActiveInternship):
		NotFound(w, "No active internship")
	case errors.Is(err, internship.ErrActiveInternshipOpen):
		Conflict(w, err.Error())
	case errors.Is(err, internship.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Permission domain errors
	case errors.Is(err, permission.ErrPermissionNotFound):
		NotFound(w, "Permission request not found")
	case errors.Is(err, permission.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, permission.ErrOverlappingRequest):
		Conflict(w, err.Error())
	case errors.Is(err, permission.ErrNotOwner):
		Forbidden(w, err.Error())

	// Logbook domain errors
	case errors.Is(err, logbook.ErrLogbookNotFound):
		NotFound(w, "Logbook entry not found")
	case errors.Is(err, logbook.ErrDuplicateDate):
		Conflict(w, err.Error())
	case errors.Is(err, logbook.ErrNotOwner):
		Forbidden(w, err.Error())
	case errors.Is(err, logbook.ErrResultRequired):
		BadRequest(w, err.Error(), nil)

	// Review workflow errors
	case errors.Is(err, approval.ErrStatusNotReviewable):
		Conflict(w, err.Error())
	case errors.Is(err, approval.ErrInvalidAction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, approval.ErrNotEditable),
		errors.Is(err, approval.ErrNotDeletable):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, presence.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, presence.ErrNotCheckedInYet):
		Conflict(w, err.Error())
	case errors.Is(err, presence.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, presence.ErrPhotoRequired):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, presence.ErrPresenceNotFound):
		NotFound(w, "Presence record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
