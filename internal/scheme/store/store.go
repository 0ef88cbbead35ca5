package store

import (
	"context"

	"carebridge/internal/scheme/models"
	"carebridge/pkg/domain"
)

// SchemeStore persists the scheme catalog.
type SchemeStore interface {
	Create(ctx context.Context, scheme *models.Scheme) error
	FindByID(ctx context.Context, id domain.SchemeID) (*models.Scheme, error)
	Update(ctx context.Context, scheme *models.Scheme) error
	List(ctx context.Context) ([]*models.Scheme, error)
}

// ApplicationStore persists child↔scheme applications.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id domain.ApplicationID) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	ListByChild(ctx context.Context, childID domain.ChildID) ([]*models.Application, error)
}
