package models

import (
	"strings"
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// Child is the aggregate root for one child profile.
//
// Invariants:
//   - Name is non-empty
//   - Orphanage is nil or references an account with role orphanage. It is
//     never free text; the service validates the reference on create and
//     update. (The registry historically accumulated string values here,
//     which is exactly the corruption this guard exists to prevent.)
//   - Attendance and academic performance stay within 0–100
//   - BehavioralNotes is append-only
type Child struct {
	ID           domain.ChildID         `json:"id"`
	Name         string                 `json:"name"`
	Age          *int                   `json:"age,omitempty"`
	Education    string                 `json:"education,omitempty"`
	Skills       []string               `json:"skills,omitempty"`
	Orphanage    *domain.AccountID      `json:"orphanage,omitempty"`
	Attendance   int                    `json:"attendance"`
	Academic     AcademicRecord         `json:"academic"`
	Behavioral   []BehavioralNote       `json:"behavioral_notes,omitempty"`
	Transition   TransitionPlan         `json:"transition"`
	Achievements []domain.AchievementID `json:"achievements,omitempty"`
	Documents    []Document             `json:"documents,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// AcademicRecord tracks the current grade and performance.
type AcademicRecord struct {
	Grade       string `json:"grade,omitempty"`
	Performance int    `json:"performance"`
	Notes       string `json:"notes,omitempty"`
}

// BehavioralNote is one append-only monitoring entry.
type BehavioralNote struct {
	At       time.Time       `json:"at"`
	Text     string          `json:"text"`
	Severity domain.Severity `json:"severity"`
}

// TransitionPlan captures readiness for exit from institutional care.
type TransitionPlan struct {
	ExpectedExit *time.Time `json:"expected_exit,omitempty"`
	Readiness    int        `json:"readiness"`
	Pathways     []string   `json:"pathways,omitempty"`
}

// Document is one document slot on the profile.
type Document struct {
	Type    domain.DocumentType   `json:"type"`
	Locator string                `json:"locator,omitempty"`
	Status  domain.DocumentStatus `json:"status"`
}

// NewChild validates and constructs a child profile. Orphanage reference
// validation happens at the service layer where the account directory is
// available.
func NewChild(id domain.ChildID, name string, age *int, now time.Time) (*Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "child name is required")
	}
	if age != nil && (*age < 0 || *age > 30) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "age out of range")
	}
	return &Child{
		ID:         id,
		Name:       name,
		Age:        age,
		Attendance: 100,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// SetAttendance enforces the 0–100 bound.
func (c *Child) SetAttendance(pct int, now time.Time) error {
	if pct < 0 || pct > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "attendance must be between 0 and 100")
	}
	c.Attendance = pct
	c.UpdatedAt = now
	return nil
}

// SetAcademic enforces the 0–100 performance bound.
func (c *Child) SetAcademic(record AcademicRecord, now time.Time) error {
	if record.Performance < 0 || record.Performance > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "performance must be between 0 and 100")
	}
	c.Academic = record
	c.UpdatedAt = now
	return nil
}

// AppendNote adds a behavioral note. Notes are never edited or removed.
func (c *Child) AppendNote(text string, severity domain.Severity, now time.Time) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "note text is required")
	}
	if !severity.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid severity")
	}
	c.Behavioral = append(c.Behavioral, BehavioralNote{At: now, Text: text, Severity: severity})
	c.UpdatedAt = now
	return nil
}

// SetTransition enforces the 0–100 readiness bound.
func (c *Child) SetTransition(plan TransitionPlan, now time.Time) error {
	if plan.Readiness < 0 || plan.Readiness > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "readiness must be between 0 and 100")
	}
	c.Transition = plan
	c.UpdatedAt = now
	return nil
}

// UpsertDocument sets the locator and status for one document type, adding the
// slot when absent.
func (c *Child) UpsertDocument(doc Document, now time.Time) error {
	if !doc.Type.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid document type")
	}
	if !doc.Status.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid document status")
	}
	for i := range c.Documents {
		if c.Documents[i].Type == doc.Type {
			c.Documents[i] = doc
			c.UpdatedAt = now
			return nil
		}
	}
	c.Documents = append(c.Documents, doc)
	c.UpdatedAt = now
	return nil
}

// HasVerifiedDocument reports whether the given document type is verified.
func (c *Child) HasVerifiedDocument(docType domain.DocumentType) bool {
	for _, doc := range c.Documents {
		if doc.Type == docType && doc.Status == domain.DocumentStatusVerified {
			return true
		}
	}
	return false
}
