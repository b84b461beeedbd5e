// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/finledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist for the user.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write would contradict a stored record,
// such as linking a statement that already pays another obligation.
var ErrConflict = errors.New("conflict")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
//
// Every method is scoped to one user: records of other users are never
// returned, and lookups of another user's records report ErrNotFound.
type Store interface {
	// CreateAccount persists a new account. ID and CreatedAt are populated
	// by the store when empty.
	CreateAccount(ctx context.Context, account *models.Account) error

	// ListAccounts returns all accounts of the user.
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)

	// DeleteAccount removes an account together with the statements,
	// self-transfers and loans referencing it.
	DeleteAccount(ctx context.Context, userID, accountID string) error

	CreateFriend(ctx context.Context, friend *models.Friend) error
	ListFriends(ctx context.Context, userID string) ([]models.Friend, error)

	// CreateStatement persists a statement and its splits in one transaction.
	CreateStatement(ctx context.Context, statement *models.Statement, splits []models.Split) error

	// ListStatements returns the user's statements inside the window
	// (nil means all), oldest first.
	ListStatements(ctx context.Context, userID string, window *models.Window) ([]models.Statement, error)

	// ListSplits returns the splits of the statements inside the window.
	ListSplits(ctx context.Context, userID string, window *models.Window) ([]models.Split, error)

	CreateSelfTransfer(ctx context.Context, transfer *models.SelfTransfer) error
	ListSelfTransfers(ctx context.Context, userID string, window *models.Window) ([]models.SelfTransfer, error)

	// CreateLoan persists a loan and its splits in one transaction.
	CreateLoan(ctx context.Context, loan *models.Loan, splits []models.LoanSplit) error

	// GetLoan retrieves a loan with its splits.
	GetLoan(ctx context.Context, userID, loanID string) (*models.Loan, []models.LoanSplit, error)

	ListLoans(ctx context.Context, userID string) ([]models.Loan, error)

	// ListLoanSplits returns the splits of every loan of the user.
	ListLoanSplits(ctx context.Context, userID string) ([]models.LoanSplit, error)

	// SetPaidInstallments records the highest installment number observed
	// as paid.
	SetPaidInstallments(ctx context.Context, userID, loanID string, paid int) error

	CreateRecurringPayment(ctx context.Context, recurring *models.RecurringPayment) error
	GetRecurringPayment(ctx context.Context, userID, recurringID string) (*models.RecurringPayment, error)
	ListRecurringPayments(ctx context.Context, userID string) ([]models.RecurringPayment, error)

	// LinkPayment records a statement as the payment of an obligation.
	// PaidAt and Amount are resolved from the statement. A statement pays at
	// most one obligation: linking it again to the same obligation returns
	// the existing link, linking it to another one fails with ErrConflict.
	LinkPayment(ctx context.Context, link *models.LinkedPayment) error

	// ListLinkedPayments returns the payments linked to one obligation,
	// oldest first.
	ListLinkedPayments(ctx context.Context, userID string, kind models.ObligationKind, obligationID string) ([]models.LinkedPayment, error)

	// Close releases any resources held by the store.
	Close() error
}
