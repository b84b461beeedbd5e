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

// ObligationService implements the Connect ObligationService
type ObligationService struct {
	ledgerv1connect.UnimplementedObligationServiceHandler
	store storage.Store
	now   Clock
}

// NewObligationService creates a new ObligationService with the given storage backend.
func NewObligationService(store storage.Store) *ObligationService {
	return &ObligationService{store: store, now: time.Now}
}

// GetObligations reports what the user owes on each credit instrument and
// projects installments and recurring payments month by month.
func (s *ObligationService) GetObligations(ctx context.Context, req *connect.Request[ledgerv1.GetObligationsRequest]) (*connect.Response[ledgerv1.GetObligationsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	upto, err := horizon(req.Msg.Upto, now)
	if err != nil {
		return nil, err
	}

	report, err := Obligations(ctx, s.store, userID, now, upto)
	if err != nil {
		return nil, toConnectError("GetObligations", err)
	}

	slog.Info("GetObligations successful",
		"user_id", userID,
		"instruments", len(report.Instruments),
		"upcoming_months", len(report.Upcoming),
	)
	return connect.NewResponse(obligationsToProto(report)), nil
}

// Obligations loads the user's credit instruments, loans and recurring
// payments and aggregates them. It is shared with the spreadsheet export.
func Obligations(ctx context.Context, store storage.Store, userID string, now, upto time.Time) (*calculator.ObligationReport, error) {
	accounts, err := store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	loans, err := store.ListLoans(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	loanSplits, err := store.ListLoanSplits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan splits: %w", err)
	}
	recurring, err := store.ListRecurringPayments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}

	in := calculator.ObligationInput{Recurring: recurring, Now: now, Upto: upto}
	for _, a := range accounts {
		if a.IsCreditInstrument() {
			in.Instruments = append(in.Instruments, a)
		}
	}
	splitsByLoan := make(map[string][]models.LoanSplit)
	for _, sp := range loanSplits {
		splitsByLoan[sp.LoanID] = append(splitsByLoan[sp.LoanID], sp)
	}
	for _, l := range loans {
		in.Loans = append(in.Loans, calculator.LoanWithSplits{Loan: l, Splits: splitsByLoan[l.ID]})
	}
	return calculator.AggregateObligations(in)
}

// GetRecurringOccurrences lists the occurrences of one recurring payment
// between from (default today) and upto, reconciled against its linked
// payments.
func (s *ObligationService) GetRecurringOccurrences(ctx context.Context, req *connect.Request[ledgerv1.GetRecurringOccurrencesRequest]) (*connect.Response[ledgerv1.GetRecurringOccurrencesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.RecurringID == "" {
		return nil, invalidArgument("recurring_id is required")
	}
	now := s.now()
	from := now
	if f, err := parseDate("from", req.Msg.From); err != nil {
		return nil, err
	} else if f != nil {
		from = *f
	}
	upto, err := horizon(req.Msg.Upto, now)
	if err != nil {
		return nil, err
	}
	if from.After(upto) {
		return nil, invalidArgument("from is after upto")
	}

	def, err := s.store.GetRecurringPayment(ctx, userID, req.Msg.RecurringID)
	if err != nil {
		return nil, toConnectError("GetRecurringOccurrences", err)
	}
	seq, err := calculator.Occurrences(*def, from, upto)
	if err != nil {
		return nil, toConnectError("GetRecurringOccurrences", err)
	}
	links, err := s.store.ListLinkedPayments(ctx, userID, models.ObligationRecurring, def.ID)
	if err != nil {
		return nil, toConnectError("GetRecurringOccurrences", fmt.Errorf("failed to list linked payments: %w", err))
	}
	reconciled := calculator.Match(calculator.DuesFromOccurrences(seq), calculator.PaymentsFromLinks(links), now)

	resp := &ledgerv1.GetRecurringOccurrencesResponse{
		RecurringID: def.ID,
		Name:        def.Name,
		Active:      def.Active(now),
		Occurrences: make([]ledgerv1.Occurrence, 0, len(reconciled)),
		MonthTotals: make(map[string]decimal.Decimal),
	}
	for _, r := range reconciled {
		resp.Occurrences = append(resp.Occurrences, ledgerv1.Occurrence{
			Date:      formatDate(r.Date),
			Amount:    r.Amount,
			Status:    string(r.Status),
			PaymentID: r.PaymentID,
		})
	}
	for month, occs := range calculator.GroupByMonth(seq) {
		total := decimal.Zero
		for _, o := range occs {
			total = total.Add(o.Amount)
		}
		resp.MonthTotals[month] = total
	}

	slog.Info("GetRecurringOccurrences successful", "recurring_id", def.ID, "occurrences", len(resp.Occurrences))
	return connect.NewResponse(resp), nil
}

func obligationsToProto(r *calculator.ObligationReport) *ledgerv1.GetObligationsResponse {
	resp := &ledgerv1.GetObligationsResponse{
		Instruments:      make([]ledgerv1.InstrumentObligation, 0, len(r.Instruments)),
		TotalOutstanding: r.TotalOutstanding,
		CurrentMonth:     monthToProto(r.CurrentMonth),
		Upcoming:         make([]ledgerv1.MonthObligation, 0, len(r.Upcoming)),
	}
	for _, io := range r.Instruments {
		inst := ledgerv1.InstrumentObligation{
			InstrumentID: io.InstrumentID,
			Name:         io.Name,
			Limit:        io.Limit,
			Outstanding:  io.Outstanding,
			Available:    io.Available,
			Loans:        make([]ledgerv1.LoanOutstanding, 0, len(io.Loans)),
		}
		for _, lo := range io.Loans {
			inst.Loans = append(inst.Loans, ledgerv1.LoanOutstanding{
				LoanID:                lo.LoanID,
				Name:                  lo.Name,
				Installment:           lo.Installment,
				PaidInstallments:      lo.PaidInstallments,
				RemainingInstallments: lo.RemainingInstallments,
				Outstanding:           lo.Outstanding,
				MySharePercent:        lo.MySharePercent,
			})
		}
		resp.Instruments = append(resp.Instruments, inst)
	}
	for _, m := range r.Upcoming {
		resp.Upcoming = append(resp.Upcoming, monthToProto(m))
	}
	return resp
}

func monthToProto(m calculator.MonthObligation) ledgerv1.MonthObligation {
	out := ledgerv1.MonthObligation{
		Month:        m.Month,
		Installments: m.Installments,
		Recurring:    m.Recurring,
		Total:        m.Total,
		MyShare:      m.MyShare,
		Items:        make([]ledgerv1.ObligationItem, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		date := it.Date
		out.Items = append(out.Items, ledgerv1.ObligationItem{
			Kind:    string(it.Kind),
			Ref:     it.Ref,
			Name:    it.Name,
			Index:   it.Index,
			Date:    formatDate(&date),
			Amount:  it.Amount,
			MyShare: it.MyShare,
		})
	}
	return out
}
