package store

import (
	"context"

	"carebridge/internal/donation/models"
	"carebridge/pkg/domain"
)

// DonationStore is the append-only ledger. There is deliberately no update or
// delete: entries are immutable once written. Implementations return
// sentinel.ErrNotFound for missing records.
type DonationStore interface {
	Create(ctx context.Context, donation *models.Donation) error
	FindByID(ctx context.Context, id domain.DonationID) (*models.Donation, error)
	ListByDonor(ctx context.Context, donorID domain.AccountID) ([]*models.Donation, error)
	List(ctx context.Context) ([]*models.Donation, error)
}
