package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/finledger/internal/models"
)

// CreateStatement persists a statement with its tags and splits.
func (s *SQLStore) CreateStatement(ctx context.Context, stmt *models.Statement, splits []models.Split) error {
	if stmt.ID == "" {
		stmt.ID = uuid.New().String()
	}
	if stmt.CreatedAt == 0 {
		stmt.CreatedAt = time.Now().Unix()
	}
	if stmt.Direction == "" {
		stmt.Direction = models.Debit
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = s.exec(ctx, tx,
		`INSERT INTO statements (id, user_id, kind, direction, amount, category, note, account_id, friend_id, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stmt.ID, stmt.UserID, string(stmt.Kind), string(stmt.Direction), stmt.Amount.String(), stmt.Category, stmt.Note,
		nullString(stmt.AccountID), nullString(stmt.FriendID), stmt.OccurredAt.Unix(), stmt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}

	for _, tag := range stmt.Tags {
		if err := s.exec(ctx, tx, "INSERT INTO statement_tags (statement_id, tag) VALUES (?, ?)", stmt.ID, tag); err != nil {
			return fmt.Errorf("failed to insert statement tag: %w", err)
		}
	}

	for i := range splits {
		sp := &splits[i]
		if sp.ID == "" {
			sp.ID = uuid.New().String()
		}
		sp.StatementID = stmt.ID
		err := s.exec(ctx, tx,
			"INSERT INTO splits (id, statement_id, friend_id, amount) VALUES (?, ?, ?, ?)",
			sp.ID, sp.StatementID, sp.FriendID, sp.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListStatements returns the user's statements in the window, oldest first.
func (s *SQLStore) ListStatements(ctx context.Context, userID string, window *models.Window) ([]models.Statement, error) {
	where, args := windowClause("occurred_at", window, []any{userID})
	rows, err := s.query(ctx,
		`SELECT id, user_id, kind, direction, amount, category, note, account_id, friend_id, occurred_at, created_at
		FROM statements WHERE user_id = ?`+where+` ORDER BY occurred_at, created_at, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}
	defer rows.Close()

	var statements []models.Statement
	index := make(map[string]int)
	for rows.Next() {
		var (
			st              models.Statement
			kind, direction string
			account, friend sql.NullString
			occurredAt      int64
		)
		err := rows.Scan(&st.ID, &st.UserID, &kind, &direction, &st.Amount, &st.Category, &st.Note,
			&account, &friend, &occurredAt, &st.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		st.Kind = models.StatementKind(kind)
		st.Direction = models.Direction(direction)
		st.AccountID = account.String
		st.FriendID = friend.String
		st.OccurredAt = fromUnix(occurredAt)
		index[st.ID] = len(statements)
		statements = append(statements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statements: %w", err)
	}
	if len(statements) == 0 {
		return nil, nil
	}

	// Get tags for the same statements
	where, args = windowClause("s.occurred_at", window, []any{userID})
	tagRows, err := s.query(ctx,
		`SELECT t.statement_id, t.tag FROM statement_tags t
		JOIN statements s ON s.id = t.statement_id
		WHERE s.user_id = ?`+where+` ORDER BY t.tag`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get statement tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var stmtID, tag string
		if err := tagRows.Scan(&stmtID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan statement tag: %w", err)
		}
		if i, ok := index[stmtID]; ok {
			statements[i].Tags = append(statements[i].Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate statement tags: %w", err)
	}

	return statements, nil
}

// ListSplits returns the splits whose statements fall in the window.
func (s *SQLStore) ListSplits(ctx context.Context, userID string, window *models.Window) ([]models.Split, error) {
	where, args := windowClause("s.occurred_at", window, []any{userID})
	rows, err := s.query(ctx,
		`SELECT sp.id, sp.statement_id, sp.friend_id, sp.amount FROM splits sp
		JOIN statements s ON s.id = sp.statement_id
		WHERE s.user_id = ?`+where+` ORDER BY s.occurred_at, sp.id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []models.Split
	for rows.Next() {
		var sp models.Split
		if err := rows.Scan(&sp.ID, &sp.StatementID, &sp.FriendID, &sp.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

// CreateSelfTransfer persists a transfer between two of the user's accounts.
func (s *SQLStore) CreateSelfTransfer(ctx context.Context, transfer *models.SelfTransfer) error {
	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.CreatedAt == 0 {
		transfer.CreatedAt = time.Now().Unix()
	}

	err := s.exec(ctx, s.db,
		`INSERT INTO self_transfers (id, user_id, from_account_id, to_account_id, amount, note, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.UserID, transfer.FromAccountID, transfer.ToAccountID, transfer.Amount.String(),
		transfer.Note, transfer.OccurredAt.Unix(), transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert self-transfer: %w", err)
	}
	return nil
}

// ListSelfTransfers returns the user's transfers in the window, oldest first.
func (s *SQLStore) ListSelfTransfers(ctx context.Context, userID string, window *models.Window) ([]models.SelfTransfer, error) {
	where, args := windowClause("occurred_at", window, []any{userID})
	rows, err := s.query(ctx,
		`SELECT id, user_id, from_account_id, to_account_id, amount, note, occurred_at, created_at
		FROM self_transfers WHERE user_id = ?`+where+` ORDER BY occurred_at, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list self-transfers: %w", err)
	}
	defer rows.Close()

	var transfers []models.SelfTransfer
	for rows.Next() {
		var (
			t          models.SelfTransfer
			occurredAt int64
		)
		err := rows.Scan(&t.ID, &t.UserID, &t.FromAccountID, &t.ToAccountID, &t.Amount, &t.Note, &occurredAt, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan self-transfer: %w", err)
		}
		t.OccurredAt = fromUnix(occurredAt)
		transfers = append(transfers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate self-transfers: %w", err)
	}
	return transfers, nil
}
