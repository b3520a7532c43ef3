package logbook

import (
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
)

type Logbook struct {
	ID             string
	InternshipID   string
	Date           time.Time
	ActivityDetail string

	// ResultOutput may stay nil while the entry is a draft; submitting
	// requires it.
	ResultOutput *string

	Status     approval.Status
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	UserFullName *string
	UserPosition *string
}

// Stats summarizes an internship's logbook entries by review state.
type Stats struct {
	Total    int `json:"total"`
	Draft    int `json:"draft"`
	Sent     int `json:"sent"`
	InReview int `json:"in_review"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
