// Package models defines the donation ledger records. Donations are immutable
// once written; corrections happen by compensating entries, never edits.
package models

import (
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// Target earmarks a donation for a specific beneficiary. Kind and Ref travel
// together; a donation with no earmark carries a nil Target.
type Target struct {
	Kind domain.TargetKind `json:"kind"`
	Ref  string            `json:"ref"`
}

// Donation is one immutable ledger entry.
type Donation struct {
	ID        domain.DonationID `json:"id"`
	DonorID   domain.AccountID  `json:"donor_id"`
	Amount    float64           `json:"amount"`
	Message   string            `json:"message"`
	FundType  domain.FundType   `json:"fund_type"`
	Target    *Target           `json:"target,omitempty"`
	Orphanage *domain.AccountID `json:"orphanage,omitempty"`
	PaymentID string            `json:"payment_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewDonation validates the fields every ledger entry must carry. Target and
// orphanage resolution happen at the service layer.
func NewDonation(id domain.DonationID, donorID domain.AccountID, amount float64, fundType domain.FundType, message string, now time.Time) (*Donation, error) {
	if amount <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "donation amount must be positive")
	}
	if !fundType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid fund type")
	}
	if donorID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "donor reference is required")
	}
	return &Donation{
		ID:        id,
		DonorID:   donorID,
		Amount:    amount,
		Message:   message,
		FundType:  fundType,
		CreatedAt: now,
	}, nil
}

// DonorView is a ledger entry joined with the resolved orphanage display
// fields for the donor's own listing.
type DonorView struct {
	Donation
	OrphanageName  string `json:"orphanage_name,omitempty"`
	OrphanageEmail string `json:"orphanage_email,omitempty"`
}
