package models

import "github.com/shopspring/decimal"

// Account represents one of the user's ledger accounts (bank, wallet, card).
type Account struct {
	// ID is the unique identifier for the account (UUID format).
	ID string

	// UserID is the owner of the account.
	UserID string

	// Name is the display name (e.g., "Savings", "Visa Platinum").
	Name string

	// StartingBalance is the balance before any tracked statement.
	StartingBalance decimal.Decimal

	// CreditLimit makes the account a credit instrument that loans can be
	// attached to. Nil for ordinary accounts.
	CreditLimit *decimal.Decimal

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// IsCreditInstrument reports whether loans can be attached to the account.
func (a Account) IsCreditInstrument() bool {
	return a.CreditLimit != nil
}

// Friend represents a person expenses are shared with.
// Friends are counterparties, not ledger accounts.
type Friend struct {
	// ID is the unique identifier for the friend (UUID format).
	ID string

	// UserID is the owner of the friend record.
	UserID string

	// Name is the display name of the friend.
	Name string

	// CreatedAt is the Unix timestamp when the friend was created.
	CreatedAt int64
}
