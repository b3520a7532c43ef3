// Package approval implements the review workflow shared by permissions and
// logbooks: a submitted record passes mentor review, then kadiv review, and
// either side may reject it back to the owner.
package approval

type Status string

const (
	StatusDraft        Status = "draft"
	StatusPending      Status = "pending"
	StatusSent         Status = "sent"
	StatusReviewMentor Status = "review_mentor"
	StatusReviewKadiv  Status = "review_kadiv"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Reviewer roles, matching the role claim carried in access tokens.
const (
	RoleMentor = "mentor"
	RoleKadiv  = "kadiv"
)

// Workflow parameterizes the state machine per entity: permissions enter the
// chain as "pending" and have no draft state, logbooks enter as "sent" and may
// sit in "draft" first.
type Workflow struct {
	Submitted  Status
	AllowDraft bool
}

var (
	PermissionWorkflow = Workflow{Submitted: StatusPending}
	LogbookWorkflow    = Workflow{Submitted: StatusSent, AllowDraft: true}
)

// reviewable reports whether a record in the given status is in the approval
// chain at all. Draft records have not been submitted and terminal records are
// done either way.
func (w Workflow) reviewable(current Status) bool {
	switch current {
	case w.Submitted, StatusReviewMentor, StatusReviewKadiv:
		return true
	}
	return false
}

// Review returns the status a record moves to when a reviewer with the given
// role applies action to it. Rejection is valid from any reviewable status
// regardless of role; approval follows the fixed mentor→kadiv chain. The
// caller records the reviewer id and timestamp for both outcomes.
func (w Workflow) Review(current Status, role string, action Action) (Status, error) {
	switch action {
	case ActionReject:
		if !w.reviewable(current) {
			return "", ErrStatusNotReviewable
		}
		return StatusRejected, nil
	case ActionApprove:
		switch {
		case role == RoleMentor && (current == w.Submitted || current == StatusReviewMentor):
			return StatusReviewKadiv, nil
		case role == RoleKadiv && current == StatusReviewKadiv:
			return StatusApproved, nil
		default:
			return "", ErrStatusNotReviewable
		}
	default:
		return "", ErrInvalidAction
	}
}

// CanEdit reports whether the owner may still modify a record: before it has
// been picked up by a reviewer, or after a rejection.
func (w Workflow) CanEdit(current Status) bool {
	switch current {
	case w.Submitted, StatusRejected:
		return true
	case StatusDraft:
		return w.AllowDraft
	}
	return false
}

// CanDelete mirrors CanEdit: once a record is mid-review or approved it is
// immutable to the owner.
func (w Workflow) CanDelete(current Status) bool {
	return w.CanEdit(current)
}

// ResubmitStatus is the status an owner edit resets a record to. Editing a
// rejected record re-enters the chain from the start; the caller clears the
// reviewer id and timestamp at the same time.
func (w Workflow) ResubmitStatus() Status {
	return w.Submitted
}

// ValidInitial reports whether a record may be created directly in the given
// status.
func (w Workflow) ValidInitial(s Status) bool {
	if s == w.Submitted {
		return true
	}
	return s == StatusDraft && w.AllowDraft
}
