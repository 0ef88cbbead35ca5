// Package aiengine is the boundary to the optional ML engine. Each capability
// is its own interface so callers depend only on what they use; the Baseline
// implementation keeps the platform functional when no engine is deployed.
package aiengine

import (
	"context"

	"carebridge/pkg/domain"
)

// RiskAssessment grades how much attention a child currently needs.
type RiskAssessment struct {
	ChildID domain.ChildID `json:"child_id"`
	Score   int            `json:"score"`
	Level   string         `json:"level"`
	Factors []string       `json:"factors,omitempty"`
}

// SchemeMatch is one scored scheme recommendation.
type SchemeMatch struct {
	SchemeID   domain.SchemeID `json:"scheme_id"`
	SchemeName string          `json:"scheme_name"`
	Confidence int             `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

// OpportunityMatch recommends a post-care pathway.
type OpportunityMatch struct {
	ChildID     domain.ChildID `json:"child_id"`
	Ready       bool           `json:"ready"`
	Pathway     string         `json:"pathway,omitempty"`
	Readiness   int            `json:"readiness"`
	Explanation string         `json:"explanation"`
}

// DocumentExtraction is the structured result of document processing.
type DocumentExtraction struct {
	DocumentType string            `json:"document_type"`
	Fields       map[string]string `json:"fields"`
}

// RiskScorer predicts a child's risk grade.
type RiskScorer interface {
	PredictRisk(ctx context.Context, childID domain.ChildID) (*RiskAssessment, error)
}

// SchemeMatcher recommends schemes for a child.
type SchemeMatcher interface {
	MatchSchemes(ctx context.Context, childID domain.ChildID) ([]SchemeMatch, error)
}

// OpportunityMatcher recommends a transition pathway.
type OpportunityMatcher interface {
	MatchOpportunity(ctx context.Context, childID domain.ChildID) (*OpportunityMatch, error)
}

// DocumentExtractor pulls structured fields out of an uploaded document.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, documentType string, content []byte) (*DocumentExtraction, error)
}

// Engine bundles all four capabilities behind one value for wiring.
type Engine interface {
	RiskScorer
	SchemeMatcher
	OpportunityMatcher
	DocumentExtractor
}
