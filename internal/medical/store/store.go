package store

import (
	"context"

	"carebridge/internal/medical/models"
	"carebridge/pkg/domain"
)

// CaseStore persists medical cases. Implementations return
// sentinel.ErrNotFound for missing records.
type CaseStore interface {
	Create(ctx context.Context, c *models.MedicalCase) error
	FindByID(ctx context.Context, id domain.MedicalCaseID) (*models.MedicalCase, error)
	Update(ctx context.Context, c *models.MedicalCase) error
	List(ctx context.Context) ([]*models.MedicalCase, error)
}
