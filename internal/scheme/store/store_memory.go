package store

import (
	"context"
	"sync"

	"carebridge/internal/scheme/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// SchemeMemoryStore is the in-memory SchemeStore.
type SchemeMemoryStore struct {
	mu      sync.RWMutex
	schemes map[domain.SchemeID]*models.Scheme
	order   []domain.SchemeID
}

func NewSchemeMemoryStore() *SchemeMemoryStore {
	return &SchemeMemoryStore{schemes: make(map[domain.SchemeID]*models.Scheme)}
}

func (s *SchemeMemoryStore) Create(_ context.Context, scheme *models.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.schemes[scheme.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := cloneScheme(scheme)
	s.schemes[scheme.ID] = cp
	s.order = append(s.order, scheme.ID)
	return nil
}

func (s *SchemeMemoryStore) FindByID(_ context.Context, id domain.SchemeID) (*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scheme, ok := s.schemes[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneScheme(scheme), nil
}

func (s *SchemeMemoryStore) Update(_ context.Context, scheme *models.Scheme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.schemes[scheme.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.schemes[scheme.ID] = cloneScheme(scheme)
	return nil
}

func (s *SchemeMemoryStore) List(_ context.Context) ([]*models.Scheme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Scheme, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneScheme(s.schemes[id]))
	}
	return out, nil
}

func cloneScheme(s *models.Scheme) *models.Scheme {
	cp := *s
	if s.Rule.MinAge != nil {
		v := *s.Rule.MinAge
		cp.Rule.MinAge = &v
	}
	if s.Rule.MaxAge != nil {
		v := *s.Rule.MaxAge
		cp.Rule.MaxAge = &v
	}
	cp.Rule.RequiredDocuments = append([]domain.DocumentType(nil), s.Rule.RequiredDocuments...)
	cp.Rule.TargetGroups = append([]string(nil), s.Rule.TargetGroups...)
	return &cp
}

// ApplicationMemoryStore is the in-memory ApplicationStore.
type ApplicationMemoryStore struct {
	mu   sync.RWMutex
	apps map[domain.ApplicationID]*models.Application
}

func NewApplicationMemoryStore() *ApplicationMemoryStore {
	return &ApplicationMemoryStore{apps: make(map[domain.ApplicationID]*models.Application)}
}

func (s *ApplicationMemoryStore) Create(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.apps[app.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *app
	s.apps[app.ID] = &cp
	return nil
}

func (s *ApplicationMemoryStore) FindByID(_ context.Context, id domain.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.apps[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *app
	return &cp, nil
}

func (s *ApplicationMemoryStore) Update(_ context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.apps[app.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *app
	s.apps[app.ID] = &cp
	return nil
}

func (s *ApplicationMemoryStore) ListByChild(_ context.Context, childID domain.ChildID) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Application
	for _, app := range s.apps {
		if app.ChildID == childID {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}
