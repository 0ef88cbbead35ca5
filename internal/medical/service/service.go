package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"carebridge/internal/medical/models"
	"carebridge/internal/medical/store"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
	"carebridge/pkg/requestcontext"
)

// ChildRegistry confirms child references on case creation.
type ChildRegistry interface {
	Exists(ctx context.Context, id domain.ChildID) error
}

// Service owns the medical case lifecycle.
type Service struct {
	cases    store.CaseStore
	children ChildRegistry
	logger   *slog.Logger
}

func New(cases store.CaseStore, children ChildRegistry, logger *slog.Logger) *Service {
	return &Service{cases: cases, children: children, logger: logger}
}

// OpenInput carries the caller-supplied case fields.
type OpenInput struct {
	Orphanage    domain.AccountID
	ChildID      *domain.ChildID
	Title        string
	Description  string
	Urgency      domain.Urgency
	CostItems    []models.CostItem
	TargetAmount float64
}

// Open creates a fundraising case in the open state.
func (s *Service) Open(ctx context.Context, in OpenInput) (*models.MedicalCase, error) {
	c, err := models.NewMedicalCase(domain.MedicalCaseID(uuid.New()), in.Orphanage, in.Title, in.Urgency, in.TargetAmount, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	c.Description = in.Description
	c.CostItems = in.CostItems

	if in.ChildID != nil {
		if err := s.children.Exists(ctx, *in.ChildID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeInvalidInput, "child reference does not exist")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve child reference")
		}
		c.ChildID = in.ChildID
	}

	if err := s.cases.Create(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open medical case")
	}
	return c, nil
}

// Get returns one case.
func (s *Service) Get(ctx context.Context, id domain.MedicalCaseID) (*models.MedicalCase, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "medical case not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up medical case")
	}
	return c, nil
}

// List returns all cases in insertion order.
func (s *Service) List(ctx context.Context) ([]*models.MedicalCase, error) {
	cases, err := s.cases.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list medical cases")
	}
	return cases, nil
}

// RecordContribution adds an earmarked donation to the running total. The
// donation resolver calls this before the ledger write so a rejected
// contribution blocks the donation too.
func (s *Service) RecordContribution(ctx context.Context, id domain.MedicalCaseID, amount float64) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.Contribute(amount, requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record contribution")
	}
	if c.Status == models.CaseFunded {
		s.logger.InfoContext(ctx, "medical case fully funded",
			"case_id", c.ID.String(),
			"amount_raised", c.AmountRaised,
		)
	}
	return nil
}

// ReverseContribution compensates a recorded contribution whose ledger write
// failed, so the case never keeps money no donation record backs.
func (s *Service) ReverseContribution(ctx context.Context, id domain.MedicalCaseID, amount float64) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.ReverseContribution(amount, requestcontext.Now(ctx)); err != nil {
		return err
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reverse contribution")
	}
	s.logger.WarnContext(ctx, "medical contribution reversed",
		"case_id", c.ID.String(),
		"amount", amount,
	)
	return nil
}

// Close ends fundraising for a case.
func (s *Service) Close(ctx context.Context, id domain.MedicalCaseID) (*models.MedicalCase, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Close(requestcontext.Now(ctx)); err != nil {
		return nil, err
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to close medical case")
	}
	return c, nil
}
