package permission

import (
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
)

type Type string

const (
	TypeSick  Type = "sakit"
	TypeLeave Type = "izin"
)

func ValidTypes() []string {
	return []string{string(TypeSick), string(TypeLeave)}
}

type Permission struct {
	ID             string
	InternshipID   string
	Type           Type
	Title          string
	Reason         string
	StartDate      time.Time
	EndDate        time.Time
	Status         approval.Status
	ApprovedBy     *string
	ApprovedAt     *time.Time
	AttachmentPath *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	UserFullName *string
	UserPosition *string
}

// DurationDays is the whole-day inclusive span of the request.
func (p Permission) DurationDays() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// Covers reports whether the request's date range contains the given UTC day.
func (p Permission) Covers(day time.Time) bool {
	return !day.Before(p.StartDate) && !day.After(p.EndDate)
}
