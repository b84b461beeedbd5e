package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/finledger/internal/calculator"
	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage"
	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
	"github.com/mmynk/finledger/pkg/api/ledgerv1/ledgerv1connect"
	"github.com/shopspring/decimal"
)

// LoanService implements the Connect LoanService
type LoanService struct {
	ledgerv1connect.UnimplementedLoanServiceHandler
	store storage.Store
	now   Clock
}

// NewLoanService creates a new LoanService with the given storage backend.
func NewLoanService(store storage.Store) *LoanService {
	return &LoanService{store: store, now: time.Now}
}

// loanFields are the loan parameters shared by CalculateSchedule and CreateLoan.
type loanFields struct {
	mode              string
	amount            decimal.Decimal
	annualRate        decimal.Decimal
	tenureMonths      int
	gstRateOnInterest decimal.Decimal
	processingFee     decimal.Decimal
	gstRateOnFee      decimal.Decimal
	firstDue          string
}

// toLoan places the amount in the field named by the calculation mode.
func (f loanFields) toLoan() (models.Loan, error) {
	firstDue, err := parseDate("first_due", f.firstDue)
	if err != nil {
		return models.Loan{}, err
	}
	l := models.Loan{
		CalculationMode:   models.CalculationMode(f.mode),
		AnnualRate:        f.annualRate,
		TenureMonths:      f.tenureMonths,
		GSTRateOnInterest: f.gstRateOnInterest,
		ProcessingFee:     f.processingFee,
		GSTRateOnFee:      f.gstRateOnFee,
		FirstDue:          firstDue,
	}
	amount := f.amount
	switch l.CalculationMode {
	case models.ModePrincipal:
		l.Principal = &amount
	case models.ModeInstallment:
		l.Installment = &amount
	case models.ModeTotalPayable:
		l.TotalPayable = &amount
	default:
		return models.Loan{}, invalidArgument("mode: %q is not one of principal, installment, total_payable", f.mode)
	}
	return l, nil
}

// CalculateSchedule computes an amortization schedule without persisting
// anything.
func (s *LoanService) CalculateSchedule(ctx context.Context, req *connect.Request[ledgerv1.CalculateScheduleRequest]) (*connect.Response[ledgerv1.CalculateScheduleResponse], error) {
	if _, err := requireUser(ctx); err != nil {
		return nil, err
	}

	m := req.Msg
	loan, err := loanFields{
		mode:              m.Mode,
		amount:            m.Amount,
		annualRate:        m.AnnualRate,
		tenureMonths:      m.TenureMonths,
		gstRateOnInterest: m.GSTRateOnInterest,
		processingFee:     m.ProcessingFee,
		gstRateOnFee:      m.GSTRateOnFee,
		firstDue:          m.FirstDue,
	}.toLoan()
	if err != nil {
		return nil, err
	}
	schedule, err := scheduleFor(loan)
	if err != nil {
		return nil, toConnectError("CalculateSchedule", err)
	}

	slog.Info("CalculateSchedule successful",
		"mode", m.Mode,
		"tenure_months", m.TenureMonths,
		"installment", schedule.Installment.String(),
	)
	return connect.NewResponse(&ledgerv1.CalculateScheduleResponse{
		Schedule: scheduleToProto(schedule, nil),
	}), nil
}

// GetLoanSchedule returns a stored loan's schedule with every installment
// reconciled against the payments linked to the loan.
func (s *LoanService) GetLoanSchedule(ctx context.Context, req *connect.Request[ledgerv1.GetLoanScheduleRequest]) (*connect.Response[ledgerv1.GetLoanScheduleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.LoanID == "" {
		return nil, invalidArgument("loan_id is required")
	}

	ls, err := LoadLoanSchedule(ctx, s.store, userID, req.Msg.LoanID, s.now())
	if err != nil {
		return nil, toConnectError("GetLoanSchedule", err)
	}
	loan, schedule := ls.Loan, ls.Schedule

	paid := min(loan.PaidInstallments, loan.TenureMonths)
	slog.Info("GetLoanSchedule successful", "loan_id", loan.ID, "paid_installments", paid)
	return connect.NewResponse(&ledgerv1.GetLoanScheduleResponse{
		LoanID:           loan.ID,
		Name:             loan.Name,
		PaidInstallments: paid,
		Outstanding:      schedule.Outstanding(paid),
		MySharePercent:   ls.MySharePercent,
		Schedule:         scheduleToProto(schedule, ls.Reconciled),
	}), nil
}

// LoanSchedule is a stored loan with its schedule reconciled against the
// payments linked to it.
type LoanSchedule struct {
	Loan           *models.Loan
	Schedule       *calculator.Schedule
	Reconciled     []calculator.Reconciled // parallel to Schedule.Entries
	MySharePercent decimal.Decimal
}

// LoadLoanSchedule loads a loan and reconciles its schedule at now. It is
// shared with the spreadsheet export.
func LoadLoanSchedule(ctx context.Context, store storage.Store, userID, loanID string, now time.Time) (*LoanSchedule, error) {
	loan, splits, err := store.GetLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	schedule, err := scheduleFor(*loan)
	if err != nil {
		return nil, err
	}
	allocated, err := calculator.LoanSplitTotal(splits)
	if err != nil {
		return nil, err
	}
	links, err := store.ListLinkedPayments(ctx, userID, models.ObligationLoan, loan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked payments: %w", err)
	}
	return &LoanSchedule{
		Loan:           loan,
		Schedule:       schedule,
		Reconciled:     calculator.Match(calculator.DuesFromSchedule(schedule, loan.ID), calculator.PaymentsFromLinks(links), now),
		MySharePercent: decimal.NewFromInt(100).Sub(allocated),
	}, nil
}

func scheduleFor(loan models.Loan) (*calculator.Schedule, error) {
	terms, err := calculator.TermsFromLoan(loan)
	if err != nil {
		return nil, err
	}
	return calculator.CalculateSchedule(terms)
}

// scheduleToProto converts a schedule; reconciled, when given, is parallel
// to the schedule entries.
func scheduleToProto(s *calculator.Schedule, reconciled []calculator.Reconciled) ledgerv1.Schedule {
	out := ledgerv1.Schedule{
		Installment:   s.Installment,
		Principal:     s.Principal,
		MonthlyRate:   s.MonthlyRate,
		TotalInterest: s.TotalInterest,
		TotalGST:      s.TotalGST,
		ProcessingFee: s.ProcessingFee,
		FeeGST:        s.FeeGST,
		TotalPayable:  s.TotalPayable,
		Entries:       make([]ledgerv1.ScheduleEntry, 0, len(s.Entries)),
	}
	for i, e := range s.Entries {
		entry := ledgerv1.ScheduleEntry{
			Index:        e.Index,
			Date:         formatDate(e.Date),
			Installment:  e.Installment,
			Interest:     e.Interest,
			Principal:    e.Principal,
			GST:          e.GST,
			Fee:          e.Fee,
			TotalPayment: e.TotalPayment,
			Balance:      e.Balance,
		}
		if i < len(reconciled) {
			entry.Status = string(reconciled[i].Status)
			entry.PaymentID = reconciled[i].PaymentID
		}
		out.Entries = append(out.Entries, entry)
	}
	return out
}
