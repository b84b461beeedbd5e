package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage"
)

// CreateAccount persists a new account.
func (s *SQLStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	err := s.exec(ctx, s.db,
		"INSERT INTO accounts (id, user_id, name, starting_balance, credit_limit, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		account.ID, account.UserID, account.Name, account.StartingBalance.String(), nullDecimal(account.CreditLimit), account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// ListAccounts returns the user's accounts ordered by name.
func (s *SQLStore) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := s.query(ctx,
		"SELECT id, user_id, name, starting_balance, credit_limit, created_at FROM accounts WHERE user_id = ? ORDER BY name, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var (
			a     models.Account
			limit decimal.NullDecimal
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.StartingBalance, &limit, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.CreditLimit = decimalFromNull(limit)
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}

// DeleteAccount removes an account and everything depending on it in one
// transaction.
func (s *SQLStore) DeleteAccount(ctx context.Context, userID, accountID string) error {
	var id string
	err := s.queryRow(ctx, "SELECT id FROM accounts WHERE id = ? AND user_id = ?", accountID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("account %s: %w", accountID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const (
		accountStatements = "SELECT id FROM statements WHERE account_id = ?"
		accountLoans      = "SELECT id FROM loans WHERE credit_instrument_id = ?"
	)
	steps := []struct {
		what  string
		query string
		args  []any
	}{
		{"linked payments", "DELETE FROM linked_payments WHERE statement_id IN (" + accountStatements + ") OR (obligation_kind = ? AND obligation_id IN (" + accountLoans + "))",
			[]any{accountID, string(models.ObligationLoan), accountID}},
		{"statement tags", "DELETE FROM statement_tags WHERE statement_id IN (" + accountStatements + ")", []any{accountID}},
		{"splits", "DELETE FROM splits WHERE statement_id IN (" + accountStatements + ")", []any{accountID}},
		{"statements", "DELETE FROM statements WHERE account_id = ?", []any{accountID}},
		{"self-transfers", "DELETE FROM self_transfers WHERE from_account_id = ? OR to_account_id = ?", []any{accountID, accountID}},
		{"loan splits", "DELETE FROM loan_splits WHERE loan_id IN (" + accountLoans + ")", []any{accountID}},
		{"loans", "DELETE FROM loans WHERE credit_instrument_id = ?", []any{accountID}},
		{"account", "DELETE FROM accounts WHERE id = ? AND user_id = ?", []any{accountID, userID}},
	}
	for _, step := range steps {
		if err := s.exec(ctx, tx, step.query, step.args...); err != nil {
			return fmt.Errorf("failed to delete %s: %w", step.what, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateFriend persists a new friend.
func (s *SQLStore) CreateFriend(ctx context.Context, friend *models.Friend) error {
	if friend.ID == "" {
		friend.ID = uuid.New().String()
	}
	if friend.CreatedAt == 0 {
		friend.CreatedAt = time.Now().Unix()
	}

	err := s.exec(ctx, s.db,
		"INSERT INTO friends (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		friend.ID, friend.UserID, friend.Name, friend.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert friend: %w", err)
	}
	return nil
}

// ListFriends returns the user's friends ordered by name.
func (s *SQLStore) ListFriends(ctx context.Context, userID string) ([]models.Friend, error) {
	rows, err := s.query(ctx,
		"SELECT id, user_id, name, created_at FROM friends WHERE user_id = ? ORDER BY name, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []models.Friend
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friends: %w", err)
	}
	return friends, nil
}
