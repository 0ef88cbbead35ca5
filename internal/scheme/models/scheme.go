package models

import (
	"strings"
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// Scheme is a government welfare program with an eligibility rule.
type Scheme struct {
	ID          domain.SchemeID `json:"id"`
	Name        string          `json:"name"`
	Department  string          `json:"department,omitempty"`
	Description string          `json:"description,omitempty"`
	Rule        EligibilityRule `json:"eligibility"`
	Benefit     Benefit         `json:"benefit"`
	ApplyLink   string          `json:"apply_link,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EligibilityRule filters children. MinAge and MaxAge are independent bounds;
// either, both, or neither may be set and all present fields combine with AND
// semantics.
type EligibilityRule struct {
	MinAge            *int                  `json:"min_age,omitempty"`
	MaxAge            *int                  `json:"max_age,omitempty"`
	RequiredDocuments []domain.DocumentType `json:"required_documents,omitempty"`
	TargetGroups      []string              `json:"target_groups,omitempty"`
}

// BenefitKind classifies what a scheme provides.
type BenefitKind string

const (
	BenefitMonetary BenefitKind = "monetary"
	BenefitMaterial BenefitKind = "material"
	BenefitService  BenefitKind = "service"
)

var validBenefitKinds = map[BenefitKind]bool{
	BenefitMonetary: true,
	BenefitMaterial: true,
	BenefitService:  true,
}

func ParseBenefitKind(s string) (BenefitKind, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "benefit kind cannot be empty")
	}
	k := BenefitKind(s)
	if !validBenefitKinds[k] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid benefit kind")
	}
	return k, nil
}

func (k BenefitKind) IsValid() bool { return validBenefitKinds[k] }

// Benefit estimates what an approved application yields.
type Benefit struct {
	Amount float64     `json:"amount,omitempty"`
	Kind   BenefitKind `json:"kind,omitempty"`
}

// NewScheme validates and constructs a scheme.
func NewScheme(id domain.SchemeID, name string, rule EligibilityRule, now time.Time) (*Scheme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scheme name is required")
	}
	if rule.MinAge != nil && *rule.MinAge < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "min age cannot be negative")
	}
	if rule.MaxAge != nil && *rule.MaxAge < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "max age cannot be negative")
	}
	if rule.MinAge != nil && rule.MaxAge != nil && *rule.MinAge > *rule.MaxAge {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "min age cannot exceed max age")
	}
	for _, docType := range rule.RequiredDocuments {
		if !docType.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid required document type")
		}
	}
	return &Scheme{
		ID:        id,
		Name:      name,
		Rule:      rule,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
