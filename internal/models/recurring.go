package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the period unit of a recurring payment.
type Frequency string

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
	Yearly    Frequency = "yearly"
)

// RecurringPayment represents a payment that repeats every Multiplier periods.
type RecurringPayment struct {
	// ID is the unique identifier for the recurring payment (UUID format).
	ID string

	// UserID is the owner of the recurring payment.
	UserID string

	// Name is the display name (e.g., "Rent", "Netflix").
	Name string

	// Category is the spending category.
	Category string

	// Amount is charged on every occurrence.
	Amount decimal.Decimal

	// Frequency is the period unit.
	Frequency Frequency

	// Multiplier means "every N periods". Must be at least 1.
	Multiplier int

	// StartDate is the first occurrence.
	StartDate time.Time

	// EndDate is the last day an occurrence may fall on. Nil means open-ended.
	EndDate *time.Time

	// CreatedAt is the Unix timestamp when the recurring payment was recorded.
	CreatedAt int64
}

// Active reports whether the payment still produces occurrences on now's date.
// An end date equal to today is still active.
func (r RecurringPayment) Active(now time.Time) bool {
	if r.EndDate == nil {
		return true
	}
	return !civilDate(*r.EndDate).Before(civilDate(now))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ObligationKind names what a linked payment settles.
type ObligationKind string

const (
	ObligationLoan      ObligationKind = "loan"
	ObligationRecurring ObligationKind = "recurring"
)

// LinkedPayment records a statement as the payment of an obligation.
// PaidAt and Amount are resolved from the linked statement by the store.
type LinkedPayment struct {
	ID             string
	UserID         string
	ObligationKind ObligationKind
	ObligationID   string
	StatementID    string
	PaidAt         time.Time
	Amount         decimal.Decimal
}
