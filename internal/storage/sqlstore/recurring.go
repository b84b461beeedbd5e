package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage"
)

const recurringColumns = "id, user_id, name, category, amount, frequency, multiplier, start_date, end_date, created_at"

// CreateRecurringPayment persists a recurring payment definition.
func (s *SQLStore) CreateRecurringPayment(ctx context.Context, r *models.RecurringPayment) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}

	err := s.exec(ctx, s.db,
		"INSERT INTO recurring_payments ("+recurringColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.UserID, r.Name, r.Category, r.Amount.String(), string(r.Frequency), r.Multiplier,
		r.StartDate.Unix(), nullableUnix(r.EndDate), r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recurring payment: %w", err)
	}
	return nil
}

// GetRecurringPayment retrieves a recurring payment definition by ID.
func (s *SQLStore) GetRecurringPayment(ctx context.Context, userID, recurringID string) (*models.RecurringPayment, error) {
	r, err := scanRecurring(s.queryRow(ctx,
		"SELECT "+recurringColumns+" FROM recurring_payments WHERE id = ? AND user_id = ?",
		recurringID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recurring payment %s: %w", recurringID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring payment: %w", err)
	}
	return r, nil
}

// ListRecurringPayments returns the user's recurring payments ordered by name.
func (s *SQLStore) ListRecurringPayments(ctx context.Context, userID string) ([]models.RecurringPayment, error) {
	rows, err := s.query(ctx,
		"SELECT "+recurringColumns+" FROM recurring_payments WHERE user_id = ? ORDER BY name, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}
	defer rows.Close()

	var payments []models.RecurringPayment
	for rows.Next() {
		r, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring payment: %w", err)
		}
		payments = append(payments, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring payments: %w", err)
	}
	return payments, nil
}

// LinkPayment records a statement as the payment of a loan or recurring
// obligation. Both the statement and the obligation must belong to the user.
func (s *SQLStore) LinkPayment(ctx context.Context, link *models.LinkedPayment) error {
	var obligationTable string
	switch link.ObligationKind {
	case models.ObligationLoan:
		obligationTable = "loans"
	case models.ObligationRecurring:
		obligationTable = "recurring_payments"
	default:
		return fmt.Errorf("unknown obligation kind %q", link.ObligationKind)
	}

	var id string
	err := s.queryRow(ctx,
		"SELECT id FROM "+obligationTable+" WHERE id = ? AND user_id = ?",
		link.ObligationID, link.UserID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s obligation %s: %w", link.ObligationKind, link.ObligationID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get obligation: %w", err)
	}

	var paidAt int64
	err = s.queryRow(ctx,
		"SELECT occurred_at, amount FROM statements WHERE id = ? AND user_id = ?",
		link.StatementID, link.UserID,
	).Scan(&paidAt, &link.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("statement %s: %w", link.StatementID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to get statement: %w", err)
	}
	link.PaidAt = fromUnix(paidAt)

	var existingID, existingKind, existingObligation string
	err = s.queryRow(ctx,
		"SELECT id, obligation_kind, obligation_id FROM linked_payments WHERE statement_id = ?",
		link.StatementID,
	).Scan(&existingID, &existingKind, &existingObligation)
	switch {
	case err == nil:
		if existingKind != string(link.ObligationKind) || existingObligation != link.ObligationID {
			return fmt.Errorf("statement %s already pays %s %s: %w", link.StatementID, existingKind, existingObligation, storage.ErrConflict)
		}
		link.ID = existingID
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to check existing link: %w", err)
	}

	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	err = s.exec(ctx, s.db,
		"INSERT INTO linked_payments (id, user_id, obligation_kind, obligation_id, statement_id) VALUES (?, ?, ?, ?, ?)",
		link.ID, link.UserID, string(link.ObligationKind), link.ObligationID, link.StatementID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert linked payment: %w", err)
	}
	return nil
}

// ListLinkedPayments returns the payments linked to one obligation, oldest first.
func (s *SQLStore) ListLinkedPayments(ctx context.Context, userID string, kind models.ObligationKind, obligationID string) ([]models.LinkedPayment, error) {
	rows, err := s.query(ctx,
		`SELECT lp.id, lp.user_id, lp.obligation_kind, lp.obligation_id, lp.statement_id, s.occurred_at, s.amount
		FROM linked_payments lp
		JOIN statements s ON s.id = lp.statement_id
		WHERE lp.user_id = ? AND lp.obligation_kind = ? AND lp.obligation_id = ?
		ORDER BY s.occurred_at, lp.id`,
		userID, string(kind), obligationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked payments: %w", err)
	}
	defer rows.Close()

	var links []models.LinkedPayment
	for rows.Next() {
		var (
			lp             models.LinkedPayment
			obligationKind string
			paidAt         int64
		)
		if err := rows.Scan(&lp.ID, &lp.UserID, &obligationKind, &lp.ObligationID, &lp.StatementID, &paidAt, &lp.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan linked payment: %w", err)
		}
		lp.ObligationKind = models.ObligationKind(obligationKind)
		lp.PaidAt = fromUnix(paidAt)
		links = append(links, lp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate linked payments: %w", err)
	}
	return links, nil
}

func scanRecurring(row scanner) (*models.RecurringPayment, error) {
	var (
		r         models.RecurringPayment
		frequency string
		start     int64
		end       sql.NullInt64
	)
	err := row.Scan(&r.ID, &r.UserID, &r.Name, &r.Category, &r.Amount, &frequency, &r.Multiplier,
		&start, &end, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.Frequency = models.Frequency(frequency)
	r.StartDate = fromUnix(start)
	r.EndDate = timeFromNull(end)
	return &r, nil
}
