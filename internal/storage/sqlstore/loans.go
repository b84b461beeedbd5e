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

const loanColumns = `id, user_id, name, credit_instrument_id, calculation_mode, principal, installment, total_payable,
	annual_rate, tenure_months, gst_rate_on_interest, processing_fee, gst_rate_on_fee, first_due, paid_installments, created_at`

// CreateLoan persists a loan and its splits in one transaction.
func (s *SQLStore) CreateLoan(ctx context.Context, loan *models.Loan, splits []models.LoanSplit) error {
	if loan.ID == "" {
		loan.ID = uuid.New().String()
	}
	if loan.CreatedAt == 0 {
		loan.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = s.exec(ctx, tx,
		"INSERT INTO loans ("+loanColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		loan.ID, loan.UserID, loan.Name, loan.CreditInstrumentID, string(loan.CalculationMode),
		nullDecimal(loan.Principal), nullDecimal(loan.Installment), nullDecimal(loan.TotalPayable),
		loan.AnnualRate.String(), loan.TenureMonths, loan.GSTRateOnInterest.String(),
		loan.ProcessingFee.String(), loan.GSTRateOnFee.String(), nullableUnix(loan.FirstDue),
		loan.PaidInstallments, loan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}

	for i := range splits {
		sp := &splits[i]
		if sp.ID == "" {
			sp.ID = uuid.New().String()
		}
		sp.LoanID = loan.ID
		err := s.exec(ctx, tx,
			"INSERT INTO loan_splits (id, loan_id, friend_id, percentage) VALUES (?, ?, ?, ?)",
			sp.ID, sp.LoanID, sp.FriendID, sp.Percentage.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert loan split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetLoan retrieves a loan by ID, including its splits.
func (s *SQLStore) GetLoan(ctx context.Context, userID, loanID string) (*models.Loan, []models.LoanSplit, error) {
	loan, err := scanLoan(s.queryRow(ctx,
		"SELECT "+loanColumns+" FROM loans WHERE id = ? AND user_id = ?",
		loanID, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("loan %s: %w", loanID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get loan: %w", err)
	}

	splits, err := s.listLoanSplits(ctx, "WHERE ls.loan_id = ?", loanID)
	if err != nil {
		return nil, nil, err
	}
	return loan, splits, nil
}

// ListLoans returns the user's loans ordered by name.
func (s *SQLStore) ListLoans(ctx context.Context, userID string) ([]models.Loan, error) {
	rows, err := s.query(ctx,
		"SELECT "+loanColumns+" FROM loans WHERE user_id = ? ORDER BY name, id",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loans: %w", err)
	}
	return loans, nil
}

// ListLoanSplits returns the splits of every loan of the user.
func (s *SQLStore) ListLoanSplits(ctx context.Context, userID string) ([]models.LoanSplit, error) {
	return s.listLoanSplits(ctx, "JOIN loans l ON l.id = ls.loan_id WHERE l.user_id = ?", userID)
}

func (s *SQLStore) listLoanSplits(ctx context.Context, filter string, arg string) ([]models.LoanSplit, error) {
	rows, err := s.query(ctx,
		"SELECT ls.id, ls.loan_id, ls.friend_id, ls.percentage FROM loan_splits ls "+filter+" ORDER BY ls.loan_id, ls.id",
		arg,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan splits: %w", err)
	}
	defer rows.Close()

	var splits []models.LoanSplit
	for rows.Next() {
		var sp models.LoanSplit
		if err := rows.Scan(&sp.ID, &sp.LoanID, &sp.FriendID, &sp.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan loan split: %w", err)
		}
		splits = append(splits, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate loan splits: %w", err)
	}
	return splits, nil
}

// SetPaidInstallments updates the paid-so-far marker of a loan.
func (s *SQLStore) SetPaidInstallments(ctx context.Context, userID, loanID string, paid int) error {
	res, err := s.db.ExecContext(ctx,
		s.rebind("UPDATE loans SET paid_installments = ? WHERE id = ? AND user_id = ?"),
		paid, loanID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("loan %s: %w", loanID, storage.ErrNotFound)
	}
	return nil
}

func scanLoan(row scanner) (*models.Loan, error) {
	var (
		l                                 models.Loan
		mode                              string
		principal, installment, totalPaid decimal.NullDecimal
		firstDue                          sql.NullInt64
	)
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.CreditInstrumentID, &mode,
		&principal, &installment, &totalPaid,
		&l.AnnualRate, &l.TenureMonths, &l.GSTRateOnInterest, &l.ProcessingFee, &l.GSTRateOnFee,
		&firstDue, &l.PaidInstallments, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.CalculationMode = models.CalculationMode(mode)
	l.Principal = decimalFromNull(principal)
	l.Installment = decimalFromNull(installment)
	l.TotalPayable = decimalFromNull(totalPaid)
	l.FirstDue = timeFromNull(firstDue)
	return &l, nil
}
