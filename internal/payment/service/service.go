// Package service bridges gateway checkout to the donation ledger. Nothing is
// written until the gateway signature verifies.
package service

import (
	"context"
	"log/slog"
	"math"

	donationmodels "carebridge/internal/donation/models"
	donationservice "carebridge/internal/donation/service"
	"carebridge/internal/payment"
	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// OrderCreator is the gateway slice this service needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*payment.Order, error)
}

// Ledger is the donation-side commit. The donation service satisfies it.
type Ledger interface {
	CreateDonation(ctx context.Context, in donationservice.CreateInput) (*donationmodels.Donation, error)
}

// Service verifies payments and commits them to the ledger.
type Service struct {
	gateway  OrderCreator
	verifier *payment.Verifier
	ledger   Ledger
	logger   *slog.Logger
}

func New(gateway OrderCreator, verifier *payment.Verifier, ledger Ledger, logger *slog.Logger) *Service {
	return &Service{gateway: gateway, verifier: verifier, ledger: ledger, logger: logger}
}

// CreateOrder opens a pending gateway order. Amounts are rupees on the wire
// and paise at the gateway.
func (s *Service) CreateOrder(ctx context.Context, amount float64) (*payment.Order, error) {
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order amount must be positive")
	}
	return s.gateway.CreateOrder(ctx, int64(math.Round(amount*100)), "INR")
}

// VerifyInput carries the gateway callback fields plus the donation the order
// was opened for.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
	Amount    float64
	DonorID   domain.AccountID
	ChildID   *domain.ChildID
	Message   string
}

// VerifyAndCommit checks the gateway signature and, only on a match, writes
// the donation. A mismatch leaves the ledger untouched.
func (s *Service) VerifyAndCommit(ctx context.Context, in VerifyInput) (*donationmodels.Donation, error) {
	if in.OrderID == "" || in.PaymentID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "order id and payment id are required")
	}
	if err := s.verifier.Verify(in.OrderID, in.PaymentID, in.Signature); err != nil {
		s.logger.WarnContext(ctx, "payment signature rejected",
			"order_id", in.OrderID,
			"payment_id", in.PaymentID,
		)
		return nil, err
	}

	return s.ledger.CreateDonation(ctx, donationservice.CreateInput{
		DonorID:   in.DonorID,
		Amount:    in.Amount,
		Message:   in.Message,
		ChildID:   in.ChildID,
		PaymentID: in.PaymentID,
	})
}
