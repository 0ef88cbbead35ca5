package store

import (
	"context"
	"strings"
	"sync"

	"carebridge/internal/auth/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// MemoryStore is the in-memory AccountStore used in dev and unit tests.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]*models.Account
	byEmail  map[string]domain.AccountID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[domain.AccountID]*models.Account),
		byEmail:  make(map[string]domain.AccountID),
	}
}

func (s *MemoryStore) Create(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(account.Email)
	if _, exists := s.byEmail[email]; exists {
		return sentinel.ErrConflict
	}
	cp := *account
	s.accounts[account.ID] = &cp
	s.byEmail[email] = account.ID
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.AccountID) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.accounts[id]
	return &cp, nil
}

func (s *MemoryStore) ListByRole(_ context.Context, role domain.Role) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Account
	for _, account := range s.accounts {
		if account.Role == role {
			cp := *account
			out = append(out, &cp)
		}
	}
	return out, nil
}
