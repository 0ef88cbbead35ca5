// Package service owns the scheme catalog and application lifecycle. Matching
// itself lives in the matching package; this layer wraps it with metrics and
// validates application transitions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carebridge/internal/scheme/matching"
	schememetrics "carebridge/internal/scheme/metrics"
	"carebridge/internal/scheme/models"
	"carebridge/internal/scheme/store"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
	strutil "carebridge/pkg/platform/strings"
	"carebridge/pkg/requestcontext"
)

// ChildDirectory confirms child references. The child domain provides the
// implementation; applications only need existence.
type ChildDirectory interface {
	Exists(ctx context.Context, id domain.ChildID) error
}

// Service exposes catalog CRUD, eligibility matching and applications.
type Service struct {
	schemes      store.SchemeStore
	applications store.ApplicationStore
	children     ChildDirectory
	engine       *matching.Engine
	metrics      *schememetrics.Metrics
	logger       *slog.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

func WithMetrics(m *schememetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(schemes store.SchemeStore, applications store.ApplicationStore, children ChildDirectory, engine *matching.Engine, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		schemes:      schemes,
		applications: applications,
		children:     children,
		engine:       engine,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSchemeInput carries the caller-supplied catalog fields.
type CreateSchemeInput struct {
	Name        string
	Department  string
	Description string
	Rule        models.EligibilityRule
	Benefit     models.Benefit
	ApplyLink   string
}

// CreateScheme registers a welfare scheme in the catalog.
func (s *Service) CreateScheme(ctx context.Context, in CreateSchemeInput) (*models.Scheme, error) {
	in.Rule.TargetGroups = strutil.DedupeAndTrim(in.Rule.TargetGroups)
	scheme, err := models.NewScheme(domain.SchemeID(uuid.New()), in.Name, in.Rule, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	scheme.Department = in.Department
	scheme.Description = in.Description
	scheme.ApplyLink = in.ApplyLink
	if in.Benefit.Kind != "" {
		if !in.Benefit.Kind.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid benefit kind")
		}
		scheme.Benefit = in.Benefit
	}

	if err := s.schemes.Create(ctx, scheme); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register scheme")
	}
	if s.metrics != nil {
		s.metrics.SchemesCreated.Inc()
	}
	return scheme, nil
}

// GetScheme returns one catalog entry.
func (s *Service) GetScheme(ctx context.Context, id domain.SchemeID) (*models.Scheme, error) {
	scheme, err := s.schemes.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "scheme not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up scheme")
	}
	return scheme, nil
}

// ListSchemes returns the whole catalog.
func (s *Service) ListSchemes(ctx context.Context) ([]*models.Scheme, error) {
	schemes, err := s.schemes.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list schemes")
	}
	return schemes, nil
}

// UpdateSchemeInput carries optional catalog updates; nil fields are left
// unchanged.
type UpdateSchemeInput struct {
	Name        *string
	Department  *string
	Description *string
	Rule        *models.EligibilityRule
	Benefit     *models.Benefit
	ApplyLink   *string
}

// UpdateScheme applies catalog changes, revalidating the rule when it changes.
func (s *Service) UpdateScheme(ctx context.Context, id domain.SchemeID, in UpdateSchemeInput) (*models.Scheme, error) {
	scheme, err := s.GetScheme(ctx, id)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	name := scheme.Name
	if in.Name != nil {
		name = *in.Name
	}
	rule := scheme.Rule
	if in.Rule != nil {
		rule = *in.Rule
		rule.TargetGroups = strutil.DedupeAndTrim(rule.TargetGroups)
	}
	// Revalidate through the constructor so rule bounds can never drift out of
	// shape via updates.
	validated, err := models.NewScheme(scheme.ID, name, rule, scheme.CreatedAt)
	if err != nil {
		return nil, err
	}
	scheme.Name = validated.Name
	scheme.Rule = validated.Rule

	if in.Department != nil {
		scheme.Department = *in.Department
	}
	if in.Description != nil {
		scheme.Description = *in.Description
	}
	if in.ApplyLink != nil {
		scheme.ApplyLink = *in.ApplyLink
	}
	if in.Benefit != nil {
		if in.Benefit.Kind != "" && !in.Benefit.Kind.IsValid() {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid benefit kind")
		}
		scheme.Benefit = *in.Benefit
	}
	scheme.UpdatedAt = now

	if err := s.schemes.Update(ctx, scheme); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update scheme")
	}
	return scheme, nil
}

// MatchChildren computes the children currently eligible for a scheme.
func (s *Service) MatchChildren(ctx context.Context, schemeID domain.SchemeID) (*matching.SchemeMatches, error) {
	start := time.Now()
	matches, err := s.engine.MatchChildrenForScheme(ctx, schemeID)
	if err != nil {
		return nil, err
	}
	s.observeMatch(start)
	return matches, nil
}

// MatchSchemes computes scored scheme recommendations for one child.
func (s *Service) MatchSchemes(ctx context.Context, childID domain.ChildID) ([]matching.ScoredScheme, error) {
	start := time.Now()
	matches, err := s.engine.MatchSchemesForChild(ctx, childID)
	if err != nil {
		return nil, err
	}
	s.observeMatch(start)
	return matches, nil
}

func (s *Service) observeMatch(start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.MatchesComputed.Inc()
	s.metrics.MatchDuration.Observe(time.Since(start).Seconds())
}

// OpenApplication links a child to a scheme in the identified state. Both
// references must exist.
func (s *Service) OpenApplication(ctx context.Context, childID domain.ChildID, schemeID domain.SchemeID, notes string) (*models.Application, error) {
	if _, err := s.GetScheme(ctx, schemeID); err != nil {
		return nil, err
	}
	if err := s.children.Exists(ctx, childID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "child reference does not exist")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve child reference")
	}

	app := models.NewApplication(domain.ApplicationID(uuid.New()), childID, schemeID, requestcontext.Now(ctx))
	app.Notes = notes
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open application")
	}
	if s.metrics != nil {
		s.metrics.ApplicationsCreated.Inc()
	}
	return app, nil
}

// AdvanceApplication moves an application forward through its lifecycle.
// Backward and out-of-terminal moves are invariant violations.
func (s *Service) AdvanceApplication(ctx context.Context, id domain.ApplicationID, next models.ApplicationStatus) (*models.Application, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up application")
	}
	if err := app.Advance(next, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update application")
	}
	if s.metrics != nil {
		s.metrics.ApplicationsByState.WithLabelValues(string(next)).Inc()
	}
	return app, nil
}

// ListApplicationsForChild returns a child's applications in insertion order.
func (s *Service) ListApplicationsForChild(ctx context.Context, childID domain.ChildID) ([]*models.Application, error) {
	apps, err := s.applications.ListByChild(ctx, childID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list applications")
	}
	return apps, nil
}
