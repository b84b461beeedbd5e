package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementKind classifies a statement for balance aggregation.
type StatementKind string

const (
	// KindExpense is money the user spent on themselves.
	KindExpense StatementKind = "expense"
	// KindOutside is money exchanged with a party outside the tracked accounts and friends.
	KindOutside StatementKind = "outside_transaction"
	// KindFriend is money exchanged with a friend.
	KindFriend StatementKind = "friend_transaction"
)

// Valid reports whether k is a known statement kind.
func (k StatementKind) Valid() bool {
	switch k {
	case KindExpense, KindOutside, KindFriend:
		return true
	}
	return false
}

// Direction says which way money moved relative to the referenced account.
type Direction string

const (
	// Debit means money left the account (the account is the debtor).
	Debit Direction = "debit"
	// Credit means money entered the account (the account is the creditor).
	Credit Direction = "credit"
)

// Sign returns -1 for debits and +1 for credits. An empty direction is a debit.
func (d Direction) Sign() int64 {
	if d == Credit {
		return 1
	}
	return -1
}

// Statement is a single signed transaction.
type Statement struct {
	// ID is the unique identifier for the statement (UUID format).
	ID string

	// UserID is the owner of the statement.
	UserID string

	// Kind decides which balance figure the amount is aggregated into.
	Kind StatementKind

	// Direction is Debit (outflow) or Credit (inflow). Empty means Debit.
	Direction Direction

	// Amount is the transaction amount. Negative amounts reverse the direction
	// (e.g., a refund recorded as a negative debit).
	Amount decimal.Decimal

	// Category is the spending category (e.g., "groceries").
	Category string

	// Tags are free-form labels.
	Tags []string

	// Note is an optional description.
	Note string

	// AccountID is the account the money moved through. Empty when a friend
	// paid directly.
	AccountID string

	// FriendID is the counterparty of a friend_transaction.
	FriendID string

	// OccurredAt is when the transaction happened.
	OccurredAt time.Time

	// CreatedAt is the Unix timestamp when the statement was recorded.
	CreatedAt int64
}

// Signed returns the amount with the direction applied: negative for money
// leaving the account.
func (s Statement) Signed() decimal.Decimal {
	return s.Amount.Mul(decimal.NewFromInt(s.Direction.Sign()))
}

// Split attributes part of a statement's amount to a friend.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// StatementID is the statement being split.
	StatementID string

	// FriendID is the friend the amount is attributed to.
	FriendID string

	// Amount is the friend's portion.
	Amount decimal.Decimal
}

// SelfTransfer moves money between two of the user's own accounts.
type SelfTransfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string

	// UserID is the owner of both accounts.
	UserID string

	// FromAccountID is debited.
	FromAccountID string

	// ToAccountID is credited.
	ToAccountID string

	// Amount is the transferred amount.
	Amount decimal.Decimal

	// Note is an optional description.
	Note string

	// OccurredAt is when the transfer happened.
	OccurredAt time.Time

	// CreatedAt is the Unix timestamp when the transfer was recorded.
	CreatedAt int64
}
