package models

import (
	"strings"
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// Account is a platform principal: admin, orphanage, donor or careleaver.
//
// Invariants:
//   - Email is non-empty, lowercase, and unique across accounts
//   - Role is one of the supported roles
//   - PasswordHash is never serialized to clients
type Account struct {
	ID           domain.AccountID `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Role         domain.Role      `json:"role"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewAccount validates and constructs an account. The password hash is set by
// the service after hashing.
func NewAccount(id domain.AccountID, name, email string, role domain.Role, now time.Time) (*Account, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "a valid email is required")
	}
	if !role.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid role")
	}
	return &Account{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// DisplayFields is the projection of an account that may be embedded in
// records shown to other users. Nothing beyond name and email leaves the
// account aggregate.
type DisplayFields struct {
	ID    domain.AccountID `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
}

func (a *Account) Display() DisplayFields {
	return DisplayFields{ID: a.ID, Name: a.Name, Email: a.Email}
}
