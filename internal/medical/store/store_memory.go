package store

import (
	"context"
	"sync"

	"carebridge/internal/medical/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// MemoryStore is the in-memory CaseStore.
type MemoryStore struct {
	mu    sync.RWMutex
	cases map[domain.MedicalCaseID]*models.MedicalCase
	order []domain.MedicalCaseID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cases: make(map[domain.MedicalCaseID]*models.MedicalCase)}
}

func (s *MemoryStore) Create(_ context.Context, c *models.MedicalCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.cases[c.ID]; exists {
		return sentinel.ErrConflict
	}
	s.cases[c.ID] = cloneCase(c)
	s.order = append(s.order, c.ID)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.MedicalCaseID) (*models.MedicalCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneCase(c), nil
}

func (s *MemoryStore) Update(_ context.Context, c *models.MedicalCase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.cases[c.ID] = cloneCase(c)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.MedicalCase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.MedicalCase, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneCase(s.cases[id]))
	}
	return out, nil
}

func cloneCase(c *models.MedicalCase) *models.MedicalCase {
	cp := *c
	if c.ChildID != nil {
		v := *c.ChildID
		cp.ChildID = &v
	}
	cp.CostItems = append([]models.CostItem(nil), c.CostItems...)
	return &cp
}
