package models

import (
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// ApplicationStatus is the lifecycle state of a scheme application.
//
// Transitions run forward only:
//
//	identified → in_progress → submitted → approved | rejected
//
// Skipping ahead (identified → submitted) is allowed; moving backwards or out
// of a terminal state is not.
type ApplicationStatus string

const (
	StatusIdentified ApplicationStatus = "identified"
	StatusInProgress ApplicationStatus = "in_progress"
	StatusSubmitted  ApplicationStatus = "submitted"
	StatusApproved   ApplicationStatus = "approved"
	StatusRejected   ApplicationStatus = "rejected"
)

// statusRank orders non-terminal progression; terminal states share a rank.
var statusRank = map[ApplicationStatus]int{
	StatusIdentified: 0,
	StatusInProgress: 1,
	StatusSubmitted:  2,
	StatusApproved:   3,
	StatusRejected:   3,
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := ApplicationStatus(s)
	if _, ok := statusRank[st]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid application status")
	}
	return st, nil
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether moving to next respects the forward-only
// progression.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if !next.IsValid() || s.IsTerminal() {
		return false
	}
	return statusRank[next] > statusRank[s]
}

// Application links one child to one scheme with its own lifecycle.
type Application struct {
	ID        domain.ApplicationID  `json:"id"`
	ChildID   domain.ChildID        `json:"child_id"`
	SchemeID  domain.SchemeID       `json:"scheme_id"`
	Status    ApplicationStatus     `json:"status"`
	AppliedAt time.Time             `json:"applied_at"`
	Documents []domain.DocumentType `json:"documents,omitempty"`
	Notes     string                `json:"notes,omitempty"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func NewApplication(id domain.ApplicationID, childID domain.ChildID, schemeID domain.SchemeID, now time.Time) *Application {
	return &Application{
		ID:        id,
		ChildID:   childID,
		SchemeID:  schemeID,
		Status:    StatusIdentified,
		AppliedAt: now,
		UpdatedAt: now,
	}
}

// Advance moves the application to next, enforcing forward-only transitions.
func (a *Application) Advance(next ApplicationStatus, now time.Time) error {
	if !a.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeInvariantViolation,
			"cannot move application from "+string(a.Status)+" to "+string(next))
	}
	a.Status = next
	a.UpdatedAt = now
	return nil
}
