package store

import (
	"context"

	"carebridge/internal/child/models"
	"carebridge/pkg/domain"
)

// ChildStore persists child profiles. Implementations return
// sentinel.ErrNotFound for missing records. List returns children in
// insertion order; the matching engine makes no stronger ordering promise.
type ChildStore interface {
	Create(ctx context.Context, child *models.Child) error
	FindByID(ctx context.Context, id domain.ChildID) (*models.Child, error)
	Update(ctx context.Context, child *models.Child) error
	List(ctx context.Context) ([]*models.Child, error)
	ListByOrphanage(ctx context.Context, orphanage domain.AccountID) ([]*models.Child, error)
}
