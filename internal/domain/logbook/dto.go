package logbook

import (
	"time"

	"github.com/simagang/simagang-backend-go/internal/domain/approval"
	"github.com/simagang/simagang-backend-go/internal/pkg/validator"
)

type LogbookResponse struct {
	ID             string     `json:"id"`
	InternshipID   string     `json:"internship_id"`
	Date           string     `json:"date"`
	ActivityDetail string     `json:"activity_detail"`
	ResultOutput   *string    `json:"result_output"`
	Status         string     `json:"status"`
	ApprovedBy     *string    `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	UserFullName   *string    `json:"user_full_name,omitempty"`
	UserPosition   *string    `json:"user_position,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (l Logbook) ToResponse() LogbookResponse {
	return LogbookResponse{
		ID:             l.ID,
		InternshipID:   l.InternshipID,
		Date:           l.Date.Format("2006-01-02"),
		ActivityDetail: l.ActivityDetail,
		ResultOutput:   l.ResultOutput,
		Status:         string(l.Status),
		ApprovedBy:     l.ApprovedBy,
		ApprovedAt:     l.ApprovedAt,
		UserFullName:   l.UserFullName,
		UserPosition:   l.UserPosition,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

type CreateLogbookRequest struct {
	Date           string  `json:"date"`
	ActivityDetail string  `json:"activity_detail"`
	ResultOutput   *string `json:"result_output"`
	Status         string  `json:"status"`
}

func (r CreateLogbookRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}

	if validator.IsEmpty(r.ActivityDetail) {
		errs = append(errs, validator.ValidationError{Field: "activity_detail", Message: "activity_detail is required"})
	}

	if !validator.IsEmpty(r.Status) && !validator.IsInSlice(r.Status, []string{string(approval.StatusDraft), string(approval.StatusSent)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be either draft or sent"})
	}

	// Drafts may be saved without a result, submissions may not.
	if r.Status != string(approval.StatusDraft) {
		if r.ResultOutput == nil || validator.IsEmpty(*r.ResultOutput) {
			errs = append(errs, validator.ValidationError{Field: "result_output", Message: "result_output is required unless the entry is a draft"})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLogbookRequest struct {
	Date           *string `json:"date"`
	ActivityDetail *string `json:"activity_detail"`
	ResultOutput   *string `json:"result_output"`
	Status         *string `json:"status"`
}

func (r UpdateLogbookRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		}
	}
	if r.ActivityDetail != nil && validator.IsEmpty(*r.ActivityDetail) {
		errs = append(errs, validator.ValidationError{Field: "activity_detail", Message: "activity_detail must not be empty"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(approval.StatusDraft), string(approval.StatusSent)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be either draft or sent"})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLogbookRequest struct {
	Action string `json:"action"`
}

func (r ReviewLogbookRequest) Validate() error {
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
