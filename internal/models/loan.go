package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationMode names which loan amount is authoritative.
type CalculationMode string

const (
	// ModePrincipal solves the installment from a known principal.
	ModePrincipal CalculationMode = "principal"
	// ModeInstallment solves the principal from a known installment.
	ModeInstallment CalculationMode = "installment"
	// ModeTotalPayable solves the principal from a known total payable.
	ModeTotalPayable CalculationMode = "total_payable"
)

// Loan represents an installment (EMI) loan as persisted.
//
// Exactly one of Principal, Installment and TotalPayable must be set, and it
// must be the one named by CalculationMode. The calculator converts this
// loosely-typed record into a tagged mode and rejects contradictions.
type Loan struct {
	// ID is the unique identifier for the loan (UUID format).
	ID string

	// UserID is the owner of the loan.
	UserID string

	// Name is the display name (e.g., "Phone EMI").
	Name string

	// CreditInstrumentID is the credit account the loan is drawn on.
	CreditInstrumentID string

	// CalculationMode names the authoritative amount below.
	CalculationMode CalculationMode

	Principal    *decimal.Decimal
	Installment  *decimal.Decimal
	TotalPayable *decimal.Decimal

	// AnnualRate is the annual interest rate in percent (e.g., 12 for 12%).
	AnnualRate decimal.Decimal

	// TenureMonths is the number of monthly installments.
	TenureMonths int

	// GSTRateOnInterest is the tax rate in percent charged on each interest component.
	GSTRateOnInterest decimal.Decimal

	// ProcessingFee is a one-time fee charged with the first installment.
	ProcessingFee decimal.Decimal

	// GSTRateOnFee is the tax rate in percent charged on the processing fee.
	GSTRateOnFee decimal.Decimal

	// FirstDue is the due date of installment 1. Nil leaves the schedule undated.
	FirstDue *time.Time

	// PaidInstallments is the highest installment number observed as paid.
	PaidInstallments int

	// CreatedAt is the Unix timestamp when the loan was recorded.
	CreatedAt int64
}

// LoanSplit allocates a percentage of a loan's burden to a friend.
type LoanSplit struct {
	// ID is the unique identifier for the loan split (UUID format).
	ID string

	// LoanID is the loan being shared.
	LoanID string

	// FriendID is the friend carrying the share.
	FriendID string

	// Percentage is the friend's share, 0 to 100.
	Percentage decimal.Decimal
}
