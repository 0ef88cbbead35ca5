package store

import (
	"context"

	"carebridge/internal/auth/models"
	"carebridge/pkg/domain"
)

// AccountStore persists accounts. Implementations return sentinel.ErrNotFound
// for missing records and sentinel.ErrConflict for duplicate emails.
type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id domain.AccountID) (*models.Account, error)
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*models.Account, error)
}
