package permission

import (
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/pkg/validator"
)

type PermissionResponse struct {
	ID            string     `json:"id"`
	InternshipID  string     `json:"internship_id"`
	Type          string     `json:"type"`
	Title         string     `json:"title"`
	Reason        string     `json:"reason"`
	StartDate     string     `json:"start_date"`
	EndDate       string     `json:"end_date"`
	DurationDays  int        `json:"duration_days"`
	Status        string     `json:"status"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	AttachmentURL *string    `json:"attachment_url,omitempty"`
	UserFullName  *string    `json:"user_full_name,omitempty"`
	UserPosition  *string    `json:"user_position,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (p Permission) ToResponse(attachmentURL *string) PermissionResponse {
	return PermissionResponse{
		ID:            p.ID,
		InternshipID:  p.InternshipID,
		Type:          string(p.Type),
		Title:         p.Title,
		Reason:        p.Reason,
		StartDate:     p.StartDate.Format("2006-01-02"),
		EndDate:       p.EndDate.Format("2006-01-02"),
		DurationDays:  p.DurationDays(),
		Status:        string(p.Status),
		ApprovedBy:    p.ApprovedBy,
		ApprovedAt:    p.ApprovedAt,
		AttachmentURL: attachmentURL,
		UserFullName:  p.UserFullName,
		UserPosition:  p.UserPosition,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type CreatePermissionRequest struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Reason    string `json:"reason"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r CreatePermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type is required"})
	} else if !validator.IsInSlice(r.Type, ValidTypes()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: sakit, izin"})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be earlier than start_date"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdatePermissionRequest struct {
	Type      *string `json:"type"`
	Title     *string `json:"title"`
	Reason    *string `json:"reason"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

func (r UpdatePermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != nil && !validator.IsInSlice(*r.Type, ValidTypes()) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: sakit, izin"})
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not be empty"})
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must not be empty"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewPermissionRequest struct {
	Action string `json:"action"`
}

func (r ReviewPermissionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action is required"})
	} else if !validator.IsInSlice(r.Action, []string{string(approval.ActionApprove), string(approval.ActionReject)}) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be either approve or reject"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
