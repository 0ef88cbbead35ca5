// Package adapters exposes narrow read-only views of the account store to
// other domains, so they never depend on the full auth service.
package adapters

import (
	"context"

	"carebridge/internal/auth/models"
	"carebridge/internal/auth/store"
	"carebridge/pkg/domain"
)

// AccountDirectory answers role and display questions about accounts.
// Sentinel errors from the store pass through untranslated; callers map them
// to their own domain errors.
type AccountDirectory struct {
	accounts store.AccountStore
}

func NewAccountDirectory(accounts store.AccountStore) *AccountDirectory {
	return &AccountDirectory{accounts: accounts}
}

// RoleOf returns the role held by the given account.
func (d *AccountDirectory) RoleOf(ctx context.Context, id domain.AccountID) (domain.Role, error) {
	account, err := d.accounts.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return account.Role, nil
}

// DisplayOf returns the safe display projection (name, email only) for
// embedding in records shown to other users.
func (d *AccountDirectory) DisplayOf(ctx context.Context, id domain.AccountID) (models.DisplayFields, error) {
	account, err := d.accounts.FindByID(ctx, id)
	if err != nil {
		return models.DisplayFields{}, err
	}
	return account.Display(), nil
}
