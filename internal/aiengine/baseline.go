package aiengine

import (
	"context"
	"errors"
	"fmt"

	childstore "carebridge/internal/child/store"
	"carebridge/internal/scheme/matching"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
)

// Risk grade boundaries on the 0-100 score.
const (
	riskMediumFloor = 30
	riskHighFloor   = 60
)

// Baseline serves every capability with deterministic rules against live
// records. It never guesses: document extraction, which genuinely needs a
// model, reports itself unsupported instead of fabricating fields.
type Baseline struct {
	children childstore.ChildStore
	matcher  *matching.Engine
}

func NewBaseline(children childstore.ChildStore, matcher *matching.Engine) *Baseline {
	return &Baseline{children: children, matcher: matcher}
}

// PredictRisk grades the child from attendance, academic performance and
// behavioral note severity.
func (b *Baseline) PredictRisk(ctx context.Context, childID domain.ChildID) (*RiskAssessment, error) {
	child, err := b.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "child not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load child")
	}

	score := 0
	var factors []string
	if child.Attendance < 60 {
		score += 30
		factors = append(factors, fmt.Sprintf("attendance at %d%%", child.Attendance))
	} else if child.Attendance < 80 {
		score += 15
		factors = append(factors, fmt.Sprintf("attendance slipping to %d%%", child.Attendance))
	}
	if child.Academic.Performance < 40 {
		score += 30
		factors = append(factors, fmt.Sprintf("academic performance at %d", child.Academic.Performance))
	}
	severe := 0
	for _, note := range child.Behavioral {
		if note.Severity == domain.SeverityHigh {
			severe++
		}
	}
	if severe > 0 {
		points := severe * 10
		if points > 40 {
			points = 40
		}
		score += points
		factors = append(factors, fmt.Sprintf("%d high-severity behavioral notes", severe))
	}
	if score > 100 {
		score = 100
	}

	level := "low"
	switch {
	case score >= riskHighFloor:
		level = "high"
	case score >= riskMediumFloor:
		level = "medium"
	}
	return &RiskAssessment{ChildID: child.ID, Score: score, Level: level, Factors: factors}, nil
}

// MatchSchemes delegates to the deterministic rule scorer.
func (b *Baseline) MatchSchemes(ctx context.Context, childID domain.ChildID) ([]SchemeMatch, error) {
	scored, err := b.matcher.MatchSchemesForChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	matches := make([]SchemeMatch, 0, len(scored))
	for _, s := range scored {
		matches = append(matches, SchemeMatch{
			SchemeID:   s.Scheme.ID,
			SchemeName: s.Scheme.Name,
			Confidence: s.Confidence,
			Reasoning:  s.Reasoning,
		})
	}
	return matches, nil
}

// MatchOpportunity recommends the child's first planned pathway once their
// transition readiness clears 70.
func (b *Baseline) MatchOpportunity(ctx context.Context, childID domain.ChildID) (*OpportunityMatch, error) {
	child, err := b.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "child not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load child")
	}

	match := &OpportunityMatch{ChildID: child.ID, Readiness: child.Transition.Readiness}
	if child.Transition.Readiness >= 70 && len(child.Transition.Pathways) > 0 {
		match.Ready = true
		match.Pathway = child.Transition.Pathways[0]
		match.Explanation = fmt.Sprintf("readiness %d supports starting the %s pathway", child.Transition.Readiness, match.Pathway)
		return match, nil
	}
	if len(child.Transition.Pathways) == 0 {
		match.Explanation = "no transition pathways planned yet"
	} else {
		match.Explanation = fmt.Sprintf("readiness %d is below the threshold for placement", child.Transition.Readiness)
	}
	return match, nil
}

// ExtractDocument is not supported without the remote engine.
func (b *Baseline) ExtractDocument(_ context.Context, _ string, _ []byte) (*DocumentExtraction, error) {
	return nil, dErrors.New(dErrors.CodeInvalidInput, "document extraction requires the remote engine")
}
