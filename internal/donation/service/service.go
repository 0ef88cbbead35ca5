// Package service owns the donation ledger and the target resolver. Records
// are written once; every apparent mutation elsewhere in the platform happens
// by appending new entries.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	authmodels "carebridge/internal/auth/models"
	childadapters "carebridge/internal/child/adapters"
	donationmetrics "carebridge/internal/donation/metrics"
	"carebridge/internal/donation/models"
	"carebridge/internal/donation/store"
	"carebridge/internal/notify"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
	"carebridge/pkg/platform/sentinel"
	"carebridge/pkg/requestcontext"
)

// Default ledger messages when the donor leaves the message blank.
const (
	defaultChildMessage   = "Donation for Child"
	defaultGeneralMessage = "Donation for General Support"
)

// AccountDirectory answers role and display questions about accounts.
type AccountDirectory interface {
	RoleOf(ctx context.Context, id domain.AccountID) (domain.Role, error)
	DisplayOf(ctx context.Context, id domain.AccountID) (authmodels.DisplayFields, error)
}

// ChildRegistry resolves child references for sponsorship earmarks.
type ChildRegistry interface {
	SummaryOf(ctx context.Context, id domain.ChildID) (childadapters.ChildSummary, error)
}

// MedicalCases receives earmarked contributions so case totals stay current.
// ReverseContribution compensates when the ledger write that should back a
// recorded contribution fails.
type MedicalCases interface {
	RecordContribution(ctx context.Context, id domain.MedicalCaseID, amount float64) error
	ReverseContribution(ctx context.Context, id domain.MedicalCaseID, amount float64) error
}

// Service resolves donation targets and appends to the ledger.
type Service struct {
	donations store.DonationStore
	accounts  AccountDirectory
	children  ChildRegistry
	medical   MedicalCases
	events    notify.Publisher
	metrics   *donationmetrics.Metrics
	logger    *slog.Logger
}

// Option configures optional collaborators.
type Option func(*Service)

func WithMetrics(m *donationmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithEvents(p notify.Publisher) Option {
	return func(s *Service) { s.events = p }
}

// WithMedicalCases enables medical-case earmarks.
func WithMedicalCases(m MedicalCases) Option {
	return func(s *Service) { s.medical = m }
}

func New(donations store.DonationStore, accounts AccountDirectory, children ChildRegistry, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		donations: donations,
		accounts:  accounts,
		children:  children,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries the caller-supplied donation fields before resolution.
type CreateInput struct {
	DonorID       domain.AccountID
	Amount        float64
	Message       string
	ChildID       *domain.ChildID
	OrphanageID   *domain.AccountID
	FundType      domain.FundType
	MedicalCaseID *domain.MedicalCaseID
	PaymentID     string
}

// CreateDonation resolves the target and writes one immutable ledger entry.
//
// Resolution order: a resolvable child wins and forces individual sponsorship
// with the child's registered orphanage, overriding whatever the caller sent.
// Otherwise a medical case earmarks the medical fund. Otherwise the caller's
// fund type and orphanage stand as given.
func (s *Service) CreateDonation(ctx context.Context, in CreateInput) (*models.Donation, error) {
	if err := s.requireDonor(ctx, in.DonorID); err != nil {
		return nil, err
	}

	fundType := in.FundType
	if fundType == "" {
		fundType = domain.FundTypeGeneral
	}
	message := in.Message
	var target *models.Target
	var contributed *domain.MedicalCaseID
	orphanage := in.OrphanageID

	switch {
	case in.ChildID != nil:
		summary, err := s.children.SummaryOf(ctx, *in.ChildID)
		switch {
		case err == nil:
			fundType = domain.FundTypeIndividualSponsorship
			target = &models.Target{Kind: domain.TargetKindChild, Ref: summary.ID.String()}
			// The child's registered orphanage always wins over the caller's.
			orphanage = summary.Orphanage
			if message == "" {
				message = defaultChildMessage
			}
		case errors.Is(err, sentinel.ErrNotFound):
			// Unresolvable child falls through to a general donation rather
			// than failing the payment that already went through.
			target = nil
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve child reference")
		}
	case in.MedicalCaseID != nil:
		if s.medical == nil {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "medical case earmarks are not enabled")
		}
		if err := s.medical.RecordContribution(ctx, *in.MedicalCaseID, in.Amount); err != nil {
			return nil, err
		}
		contributed = in.MedicalCaseID
		fundType = domain.FundTypeMedical
		target = &models.Target{Kind: domain.TargetKindMedicalCase, Ref: in.MedicalCaseID.String()}
	}
	if message == "" {
		message = defaultGeneralMessage
	}

	donation, err := models.NewDonation(domain.DonationID(uuid.New()), in.DonorID, in.Amount, fundType, message, requestcontext.Now(ctx))
	if err != nil {
		s.compensateContribution(ctx, contributed, in.Amount)
		return nil, err
	}
	donation.Target = target
	donation.Orphanage = orphanage
	donation.PaymentID = in.PaymentID

	if err := s.donations.Create(ctx, donation); err != nil {
		s.compensateContribution(ctx, contributed, in.Amount)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record donation")
	}
	if s.metrics != nil {
		s.metrics.DonationsRecorded.WithLabelValues(fundType.String()).Inc()
		s.metrics.AmountDonated.WithLabelValues(fundType.String()).Add(donation.Amount)
	}
	s.publish(ctx, notify.Event{
		Kind: notify.KindNewDonation,
		Payload: map[string]any{
			"amount":    donation.Amount,
			"message":   donation.Message,
			"fund_type": donation.FundType.String(),
		},
	})
	return donation, nil
}

// compensateContribution backs a recorded case contribution out when the
// ledger write that should cover it never landed, so no case keeps money
// without a donation record behind it.
func (s *Service) compensateContribution(ctx context.Context, id *domain.MedicalCaseID, amount float64) {
	if id == nil {
		return
	}
	if err := s.medical.ReverseContribution(ctx, *id, amount); err != nil {
		s.logger.ErrorContext(ctx, "failed to reverse medical contribution after ledger failure",
			"case_id", id.String(),
			"amount", amount,
			"error", err.Error(),
		)
	}
}

// ListDonationsForDonor returns the donor's own entries joined with the
// orphanage display fields.
func (s *Service) ListDonationsForDonor(ctx context.Context, donorID domain.AccountID) ([]models.DonorView, error) {
	donations, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	views := make([]models.DonorView, 0, len(donations))
	for _, donation := range donations {
		view := models.DonorView{Donation: *donation}
		if donation.Orphanage != nil {
			display, err := s.accounts.DisplayOf(ctx, *donation.Orphanage)
			if err == nil {
				view.OrphanageName = display.Name
				view.OrphanageEmail = display.Email
			} else if !errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve orphanage display")
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ListAllDonations returns the whole ledger for the admin projection.
func (s *Service) ListAllDonations(ctx context.Context) ([]*models.Donation, error) {
	donations, err := s.donations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list donations")
	}
	return donations, nil
}

func (s *Service) requireDonor(ctx context.Context, id domain.AccountID) error {
	role, err := s.accounts.RoleOf(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeForbidden, "donor account does not exist")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve donor")
	}
	if role != domain.RoleDonor {
		return dErrors.New(dErrors.CodeForbidden, "only donor accounts can donate")
	}
	return nil
}

func (s *Service) publish(ctx context.Context, event notify.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event publish failed", "kind", string(event.Kind), "error", err)
	}
}
