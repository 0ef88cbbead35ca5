// Package adapters exposes narrow read-only views of the child store to other
// domains, so they never depend on the full registry service.
package adapters

import (
	"context"

	"carebridge/internal/child/store"
	"carebridge/pkg/domain"
)

// ChildSummary is the projection other domains are allowed to see.
type ChildSummary struct {
	ID        domain.ChildID
	Name      string
	Orphanage *domain.AccountID
}

// Registry answers existence and summary questions about children. Sentinel
// errors from the store pass through untranslated; callers map them to their
// own domain errors.
type Registry struct {
	children store.ChildStore
}

func NewRegistry(children store.ChildStore) *Registry {
	return &Registry{children: children}
}

// Exists reports whether the child is registered.
func (r *Registry) Exists(ctx context.Context, id domain.ChildID) error {
	_, err := r.children.FindByID(ctx, id)
	return err
}

// SummaryOf returns the cross-domain projection for one child.
func (r *Registry) SummaryOf(ctx context.Context, id domain.ChildID) (ChildSummary, error) {
	child, err := r.children.FindByID(ctx, id)
	if err != nil {
		return ChildSummary{}, err
	}
	return ChildSummary{ID: child.ID, Name: child.Name, Orphanage: child.Orphanage}, nil
}
