package store

import (
	"context"
	"sync"

	"carebridge/internal/child/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// MemoryStore is the in-memory ChildStore used in dev and unit tests. It keeps
// insertion order so match output stays stable within a test.
type MemoryStore struct {
	mu       sync.RWMutex
	children map[domain.ChildID]*models.Child
	order    []domain.ChildID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{children: make(map[domain.ChildID]*models.Child)}
}

func (s *MemoryStore) Create(_ context.Context, child *models.Child) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.children[child.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := cloneChild(child)
	s.children[child.ID] = cp
	s.order = append(s.order, child.ID)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.ChildID) (*models.Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	child, ok := s.children[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneChild(child), nil
}

func (s *MemoryStore) Update(_ context.Context, child *models.Child) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.children[child.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.children[child.ID] = cloneChild(child)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Child, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneChild(s.children[id]))
	}
	return out, nil
}

func (s *MemoryStore) ListByOrphanage(_ context.Context, orphanage domain.AccountID) ([]*models.Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Child
	for _, id := range s.order {
		child := s.children[id]
		if child.Orphanage != nil && *child.Orphanage == orphanage {
			out = append(out, cloneChild(child))
		}
	}
	return out, nil
}

func cloneChild(c *models.Child) *models.Child {
	cp := *c
	if c.Age != nil {
		age := *c.Age
		cp.Age = &age
	}
	if c.Orphanage != nil {
		o := *c.Orphanage
		cp.Orphanage = &o
	}
	cp.Skills = append([]string(nil), c.Skills...)
	cp.Behavioral = append([]models.BehavioralNote(nil), c.Behavioral...)
	cp.Achievements = append([]domain.AchievementID(nil), c.Achievements...)
	cp.Documents = append([]models.Document(nil), c.Documents...)
	cp.Transition.Pathways = append([]string(nil), c.Transition.Pathways...)
	if c.Transition.ExpectedExit != nil {
		exit := *c.Transition.ExpectedExit
		cp.Transition.ExpectedExit = &exit
	}
	return &cp
}
