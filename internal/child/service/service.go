package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	childmetrics "carebridge/internal/child/metrics"
	"carebridge/internal/child/models"
	"carebridge/internal/child/store"
	"carebridge/internal/notify"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
	strutil "carebridge/pkg/platform/strings"
	"carebridge/pkg/requestcontext"
)

// AccountDirectory answers role questions about account references. The auth
// domain provides the implementation; the registry only needs this slice.
type AccountDirectory interface {
	RoleOf(ctx context.Context, id domain.AccountID) (domain.Role, error)
}

// Service owns child profile lifecycle and enforces the orphanage-reference
// invariant.
type Service struct {
	children store.ChildStore
	accounts AccountDirectory
	events   notify.Publisher
	metrics  *childmetrics.Metrics
	logger   *slog.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

func WithMetrics(m *childmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithEvents(p notify.Publisher) Option {
	return func(s *Service) { s.events = p }
}

func New(children store.ChildStore, accounts AccountDirectory, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{children: children, accounts: accounts, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries the caller-supplied profile fields.
type CreateInput struct {
	Name      string
	Age       *int
	Education string
	Skills    []string
	Orphanage *domain.AccountID
}

// Create registers a child profile. The orphanage reference must name an
// orphanage-role account or be absent.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Child, error) {
	child, err := models.NewChild(domain.ChildID(uuid.New()), in.Name, in.Age, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	child.Education = in.Education
	child.Skills = strutil.DedupeAndTrim(in.Skills)

	if in.Orphanage != nil {
		if err := s.requireOrphanage(ctx, *in.Orphanage); err != nil {
			return nil, err
		}
		child.Orphanage = in.Orphanage
	}

	if err := s.children.Create(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register child")
	}
	if s.metrics != nil {
		s.metrics.ChildrenRegistered.Inc()
	}
	s.publish(ctx, notify.Event{
		Kind: notify.KindNewChild,
		Payload: map[string]any{
			"child_id": child.ID.String(),
			"name":     child.Name,
		},
	})
	return child, nil
}

// Get returns one child profile.
func (s *Service) Get(ctx context.Context, id domain.ChildID) (*models.Child, error) {
	child, err := s.children.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "child not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up child")
	}
	return child, nil
}

// List returns all children, or only those owned by the given orphanage when
// scope is non-nil.
func (s *Service) List(ctx context.Context, scope *domain.AccountID) ([]*models.Child, error) {
	var (
		children []*models.Child
		err      error
	)
	if scope != nil {
		children, err = s.children.ListByOrphanage(ctx, *scope)
	} else {
		children, err = s.children.List(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list children")
	}
	return children, nil
}

// UpdateInput carries optional profile updates; nil fields are left unchanged.
type UpdateInput struct {
	Education  *string
	Skills     []string
	Orphanage  *domain.AccountID
	Attendance *int
	Academic   *models.AcademicRecord
}

// Update applies profile changes, revalidating the orphanage reference when it
// changes.
func (s *Service) Update(ctx context.Context, id domain.ChildID, in UpdateInput) (*models.Child, error) {
	child, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	if in.Education != nil {
		child.Education = *in.Education
	}
	if in.Skills != nil {
		child.Skills = strutil.DedupeAndTrim(in.Skills)
	}
	if in.Orphanage != nil {
		if err := s.requireOrphanage(ctx, *in.Orphanage); err != nil {
			return nil, err
		}
		child.Orphanage = in.Orphanage
	}
	if in.Attendance != nil {
		if err := child.SetAttendance(*in.Attendance, now); err != nil {
			return nil, err
		}
	}
	if in.Academic != nil {
		if err := child.SetAcademic(*in.Academic, now); err != nil {
			return nil, err
		}
	}
	child.UpdatedAt = now

	if err := s.children.Update(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update child")
	}
	return child, nil
}

// AppendNote adds a behavioral note to the append-only list.
func (s *Service) AppendNote(ctx context.Context, id domain.ChildID, text string, severity domain.Severity) (*models.Child, error) {
	child, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := child.AppendNote(text, severity, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.children.Update(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to append note")
	}
	if s.metrics != nil {
		s.metrics.NotesAppended.Inc()
	}
	return child, nil
}

// SetDocument records a document locator/status for the child.
func (s *Service) SetDocument(ctx context.Context, id domain.ChildID, doc models.Document) (*models.Child, error) {
	child, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := child.UpsertDocument(doc, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.children.Update(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update document")
	}
	return child, nil
}

// SetTransition updates the transition timeline.
func (s *Service) SetTransition(ctx context.Context, id domain.ChildID, plan models.TransitionPlan) (*models.Child, error) {
	child, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Pathways = strutil.DedupeAndTrim(plan.Pathways)
	if err := child.SetTransition(plan, requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.children.Update(ctx, child); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update transition plan")
	}
	return child, nil
}

func (s *Service) requireOrphanage(ctx context.Context, id domain.AccountID) error {
	role, err := s.accounts.RoleOf(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeInvalidInput, "orphanage reference does not exist")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve orphanage reference")
	}
	if role != domain.RoleOrphanage {
		return dErrors.New(dErrors.CodeInvalidInput, "orphanage reference must be an orphanage account")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event notify.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "kind", string(event.Kind), "error", err)
	}
}
