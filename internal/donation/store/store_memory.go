package store

import (
	"context"
	"sync"

	"carebridge/internal/donation/models"
	"carebridge/pkg/domain"
	"carebridge/pkg/platform/sentinel"
)

// MemoryStore is the in-memory DonationStore.
type MemoryStore struct {
	mu        sync.RWMutex
	donations map[domain.DonationID]*models.Donation
	order     []domain.DonationID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{donations: make(map[domain.DonationID]*models.Donation)}
}

func (s *MemoryStore) Create(_ context.Context, donation *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donations[donation.ID]; exists {
		return sentinel.ErrConflict
	}
	s.donations[donation.ID] = cloneDonation(donation)
	s.order = append(s.order, donation.ID)
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id domain.DonationID) (*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	donation, ok := s.donations[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return cloneDonation(donation), nil
}

func (s *MemoryStore) ListByDonor(_ context.Context, donorID domain.AccountID) ([]*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Donation
	for _, id := range s.order {
		if d := s.donations[id]; d.DonorID == donorID {
			out = append(out, cloneDonation(d))
		}
	}
	return out, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*models.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Donation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneDonation(s.donations[id]))
	}
	return out, nil
}

func cloneDonation(d *models.Donation) *models.Donation {
	cp := *d
	if d.Target != nil {
		t := *d.Target
		cp.Target = &t
	}
	if d.Orphanage != nil {
		o := *d.Orphanage
		cp.Orphanage = &o
	}
	return &cp
}
