// Package matching answers the two eligibility questions: which children
// satisfy a scheme's rule, and which schemes fit a child. Matching is computed
// on demand against live records; nothing is precomputed or cached.
package matching

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	childmodels "carebridge/internal/child/models"
	childstore "carebridge/internal/child/store"
	"carebridge/internal/scheme/models"
	"carebridge/internal/scheme/store"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
)

// Mode selects how much of the eligibility rule the predicate enforces.
type Mode int

const (
	// ModeFullRule enforces age bounds, required verified documents and
	// target groups, all ANDed. This is the default.
	ModeFullRule Mode = iota
	// ModeAgeOnly enforces only the age bounds, matching deployments that
	// predate document and target-group enforcement.
	ModeAgeOnly
)

// Engine evaluates eligibility rules. It is read-only: results reflect the
// store at evaluation time and carry no ordering guarantee beyond the store's
// insertion order.
type Engine struct {
	schemes  store.SchemeStore
	children childstore.ChildStore
	scorer   Scorer
	mode     Mode
	tracer   trace.Tracer
}

// Option configures the engine.
type Option func(*Engine)

// WithMode overrides the default full-rule predicate.
func WithMode(mode Mode) Option {
	return func(e *Engine) { e.mode = mode }
}

// WithScorer replaces the baseline scorer used by MatchSchemesForChild.
func WithScorer(scorer Scorer) Option {
	return func(e *Engine) { e.scorer = scorer }
}

func NewEngine(schemes store.SchemeStore, children childstore.ChildStore, opts ...Option) *Engine {
	e := &Engine{
		schemes:  schemes,
		children: children,
		mode:     ModeFullRule,
		tracer:   otel.Tracer("carebridge/matching"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scorer == nil {
		e.scorer = RuleScorer{Mode: e.mode}
	}
	return e
}

// ChildMatch is the minimal projection returned for each matching child.
type ChildMatch struct {
	ID        domain.ChildID    `json:"id"`
	Name      string            `json:"name"`
	Age       *int              `json:"age,omitempty"`
	Education string            `json:"education,omitempty"`
	Orphanage *domain.AccountID `json:"orphanage,omitempty"`
	Skills    []string          `json:"skills,omitempty"`
}

// SchemeMatches is the result of matching children for one scheme.
type SchemeMatches struct {
	SchemeID   domain.SchemeID `json:"scheme_id"`
	SchemeName string          `json:"scheme_name"`
	Children   []ChildMatch    `json:"children"`
}

// MatchChildrenForScheme returns every child currently satisfying the
// scheme's eligibility rule. A missing scheme is a NotFound error, never an
// empty result.
func (e *Engine) MatchChildrenForScheme(ctx context.Context, schemeID domain.SchemeID) (*SchemeMatches, error) {
	ctx, span := e.tracer.Start(ctx, "matching.MatchChildrenForScheme",
		trace.WithAttributes(attribute.String("scheme_id", schemeID.String())))
	defer span.End()

	scheme, err := e.schemes.FindByID(ctx, schemeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "scheme not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load scheme")
	}

	children, err := e.children.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load children")
	}

	result := &SchemeMatches{
		SchemeID:   scheme.ID,
		SchemeName: scheme.Name,
		Children:   []ChildMatch{},
	}
	for _, child := range children {
		if satisfies(child, scheme.Rule, e.mode) {
			result.Children = append(result.Children, ChildMatch{
				ID:        child.ID,
				Name:      child.Name,
				Age:       child.Age,
				Education: child.Education,
				Orphanage: child.Orphanage,
				Skills:    child.Skills,
			})
		}
	}
	span.SetAttributes(attribute.Int("match_count", len(result.Children)))
	return result, nil
}

// ScoredScheme is one entry in a child's scheme recommendations.
type ScoredScheme struct {
	Scheme     *models.Scheme `json:"scheme"`
	Confidence int            `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
}

// MatchSchemesForChild scores the whole catalog against one child. A missing
// child is a NotFound error, never an empty result.
func (e *Engine) MatchSchemesForChild(ctx context.Context, childID domain.ChildID) ([]ScoredScheme, error) {
	ctx, span := e.tracer.Start(ctx, "matching.MatchSchemesForChild",
		trace.WithAttributes(attribute.String("child_id", childID.String())))
	defer span.End()

	child, err := e.children.FindByID(ctx, childID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "child not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load child")
	}

	schemes, err := e.schemes.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load schemes")
	}

	matches := []ScoredScheme{}
	for _, scheme := range schemes {
		score, err := e.scorer.Score(ctx, child, scheme)
		if err != nil {
			return nil, err
		}
		if score == nil {
			continue
		}
		matches = append(matches, ScoredScheme{
			Scheme:     scheme,
			Confidence: score.Confidence,
			Reasoning:  score.Reasoning,
		})
	}
	span.SetAttributes(attribute.Int("match_count", len(matches)))
	return matches, nil
}

// satisfies evaluates the eligibility predicate. All present rule fields
// combine with AND semantics; absent fields impose no constraint.
func satisfies(child *childmodels.Child, rule models.EligibilityRule, mode Mode) bool {
	// A child with no recorded age fails any age bound.
	if rule.MinAge != nil && (child.Age == nil || *child.Age < *rule.MinAge) {
		return false
	}
	if rule.MaxAge != nil && (child.Age == nil || *child.Age > *rule.MaxAge) {
		return false
	}
	if mode == ModeAgeOnly {
		return true
	}
	for _, docType := range rule.RequiredDocuments {
		if !child.HasVerifiedDocument(docType) {
			return false
		}
	}
	return matchesTargetGroups(child, rule.TargetGroups)
}
