// Package models defines medical fundraising cases. A case accumulates
// earmarked donations until its target is reached, then flips to funded.
package models

import (
	"strings"
	"time"

	"carebridge/pkg/domain"
	dErrors "carebridge/pkg/domain-errors"
)

// CaseStatus is the fundraising lifecycle of a medical case.
type CaseStatus string

const (
	CaseOpen   CaseStatus = "open"
	CaseFunded CaseStatus = "funded"
	CaseClosed CaseStatus = "closed"
)

// CostItem is one line of the itemized estimate behind the target amount.
type CostItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// MedicalCase tracks one fundraising effort.
type MedicalCase struct {
	ID           domain.MedicalCaseID `json:"id"`
	ChildID      *domain.ChildID      `json:"child_id,omitempty"`
	Orphanage    domain.AccountID     `json:"orphanage"`
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Urgency      domain.Urgency       `json:"urgency"`
	CostItems    []CostItem           `json:"cost_items,omitempty"`
	TargetAmount float64              `json:"target_amount"`
	AmountRaised float64              `json:"amount_raised"`
	Status       CaseStatus           `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// NewMedicalCase validates and constructs an open case.
func NewMedicalCase(id domain.MedicalCaseID, orphanage domain.AccountID, title string, urgency domain.Urgency, target float64, now time.Time) (*MedicalCase, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "case title is required")
	}
	if !urgency.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "invalid urgency")
	}
	if target <= 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "target amount must be positive")
	}
	if orphanage.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "orphanage reference is required")
	}
	return &MedicalCase{
		ID:           id,
		Orphanage:    orphanage,
		Title:        title,
		Urgency:      urgency,
		TargetAmount: target,
		Status:       CaseOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Contribute adds to the running total and flips open cases to funded once
// the target is reached. Only open cases accept contributions.
func (c *MedicalCase) Contribute(amount float64, now time.Time) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "contribution must be positive")
	}
	if c.Status != CaseOpen {
		return dErrors.New(dErrors.CodeInvariantViolation, "case is not accepting contributions")
	}
	c.AmountRaised += amount
	if c.AmountRaised >= c.TargetAmount {
		c.Status = CaseFunded
	}
	c.UpdatedAt = now
	return nil
}

// ReverseContribution backs a contribution out again when the ledger write
// that should have covered it failed. A case funded by that contribution
// reopens; closed cases stay closed since closing is an explicit decision.
func (c *MedicalCase) ReverseContribution(amount float64, now time.Time) error {
	if amount <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "reversal amount must be positive")
	}
	if amount > c.AmountRaised {
		return dErrors.New(dErrors.CodeInvariantViolation, "reversal exceeds the amount raised")
	}
	c.AmountRaised -= amount
	if c.Status == CaseFunded && c.AmountRaised < c.TargetAmount {
		c.Status = CaseOpen
	}
	c.UpdatedAt = now
	return nil
}

// Close ends fundraising regardless of the amount raised. Closing is final.
func (c *MedicalCase) Close(now time.Time) error {
	if c.Status == CaseClosed {
		return dErrors.New(dErrors.CodeInvariantViolation, "case is already closed")
	}
	c.Status = CaseClosed
	c.UpdatedAt = now
	return nil
}
