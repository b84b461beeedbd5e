package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/finledger/internal/calculator"
	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage"
	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
	"github.com/mmynk/finledger/pkg/api/ledgerv1/ledgerv1connect"
)

// LedgerService implements the Connect LedgerService: it records the
// accounts, friends, statements and obligations the other services read.
type LedgerService struct {
	ledgerv1connect.UnimplementedLedgerServiceHandler
	store storage.Store
	now   Clock
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store, now: time.Now}
}

func (s *LedgerService) CreateAccount(ctx context.Context, req *connect.Request[ledgerv1.CreateAccountRequest]) (*connect.Response[ledgerv1.CreateAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("account name is required")
	}
	if limit := req.Msg.CreditLimit; limit != nil && limit.IsNegative() {
		return nil, invalidArgument("credit limit must not be negative")
	}

	account := &models.Account{
		UserID:          userID,
		Name:            name,
		StartingBalance: req.Msg.StartingBalance,
		CreditLimit:     req.Msg.CreditLimit,
	}
	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, toConnectError("CreateAccount", err)
	}

	slog.Info("Account created", "account_id", account.ID, "credit", account.IsCreditInstrument())
	return connect.NewResponse(&ledgerv1.CreateAccountResponse{Account: accountToProto(*account)}), nil
}

func (s *LedgerService) ListAccounts(ctx context.Context, req *connect.Request[ledgerv1.ListAccountsRequest]) (*connect.Response[ledgerv1.ListAccountsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, toConnectError("ListAccounts", err)
	}
	resp := &ledgerv1.ListAccountsResponse{Accounts: make([]ledgerv1.Account, 0, len(accounts))}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, accountToProto(a))
	}
	return connect.NewResponse(resp), nil
}

// DeleteAccount removes an account with every record that references it.
func (s *LedgerService) DeleteAccount(ctx context.Context, req *connect.Request[ledgerv1.DeleteAccountRequest]) (*connect.Response[ledgerv1.DeleteAccountResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.AccountID == "" {
		return nil, invalidArgument("account_id is required")
	}
	if err := s.store.DeleteAccount(ctx, userID, req.Msg.AccountID); err != nil {
		return nil, toConnectError("DeleteAccount", err)
	}
	slog.Info("Account deleted", "account_id", req.Msg.AccountID)
	return connect.NewResponse(&ledgerv1.DeleteAccountResponse{}), nil
}

func (s *LedgerService) CreateFriend(ctx context.Context, req *connect.Request[ledgerv1.CreateFriendRequest]) (*connect.Response[ledgerv1.CreateFriendResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("friend name is required")
	}
	friend := &models.Friend{UserID: userID, Name: name}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		return nil, toConnectError("CreateFriend", err)
	}
	return connect.NewResponse(&ledgerv1.CreateFriendResponse{
		Friend: ledgerv1.Friend{ID: friend.ID, Name: friend.Name},
	}), nil
}

func (s *LedgerService) ListFriends(ctx context.Context, req *connect.Request[ledgerv1.ListFriendsRequest]) (*connect.Response[ledgerv1.ListFriendsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, toConnectError("ListFriends", err)
	}
	resp := &ledgerv1.ListFriendsResponse{Friends: make([]ledgerv1.Friend, 0, len(friends))}
	for _, f := range friends {
		resp.Friends = append(resp.Friends, ledgerv1.Friend{ID: f.ID, Name: f.Name})
	}
	return connect.NewResponse(resp), nil
}

// CreateStatement records a statement and its splits after checking the
// references and the split allocation.
func (s *LedgerService) CreateStatement(ctx context.Context, req *connect.Request[ledgerv1.CreateStatementRequest]) (*connect.Response[ledgerv1.CreateStatementResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	m := req.Msg

	stmt := models.Statement{
		UserID:     userID,
		Kind:       models.StatementKind(m.Kind),
		Direction:  models.Direction(m.Direction),
		Amount:     m.Amount,
		Category:   strings.TrimSpace(m.Category),
		Tags:       m.Tags,
		Note:       m.Note,
		AccountID:  m.AccountID,
		FriendID:   m.FriendID,
		OccurredAt: m.OccurredAt.UTC(),
	}
	if stmt.Direction == "" {
		stmt.Direction = models.Debit
	}
	if stmt.OccurredAt.IsZero() {
		stmt.OccurredAt = s.now().UTC()
	}
	if err := validateStatement(stmt); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, stmt.AccountID, stmt.FriendID); err != nil {
		return nil, err
	}

	splits := make([]models.Split, 0, len(m.Splits))
	for _, sp := range m.Splits {
		if sp.FriendID == "" {
			return nil, invalidArgument("split friend_id is required")
		}
		if err := s.checkReferences(ctx, userID, "", sp.FriendID); err != nil {
			return nil, err
		}
		splits = append(splits, models.Split{FriendID: sp.FriendID, Amount: sp.Amount})
	}
	if err := calculator.ValidateStatementSplits(stmt, splits); err != nil {
		return nil, toConnectError("CreateStatement", err)
	}

	if err := s.store.CreateStatement(ctx, &stmt, splits); err != nil {
		return nil, toConnectError("CreateStatement", err)
	}

	resp := &ledgerv1.CreateStatementResponse{StatementID: stmt.ID}
	for _, sp := range splits {
		resp.SplitIDs = append(resp.SplitIDs, sp.ID)
	}
	slog.Info("Statement created", "statement_id", stmt.ID, "kind", stmt.Kind, "splits", len(splits))
	return connect.NewResponse(resp), nil
}

func validateStatement(stmt models.Statement) error {
	if !stmt.Kind.Valid() {
		return invalidArgument("kind: %q is not one of expense, outside_transaction, friend_transaction", stmt.Kind)
	}
	if stmt.Direction != models.Debit && stmt.Direction != models.Credit {
		return invalidArgument("direction: %q is not one of debit, credit", stmt.Direction)
	}
	if !stmt.Amount.IsPositive() {
		return invalidArgument("amount must be positive")
	}
	switch stmt.Kind {
	case models.KindFriend:
		if stmt.FriendID == "" {
			return invalidArgument("friend transactions require friend_id")
		}
	default:
		if stmt.AccountID == "" {
			return invalidArgument("%s statements require account_id", stmt.Kind)
		}
		if stmt.FriendID != "" {
			return invalidArgument("only friend transactions carry friend_id")
		}
	}
	return nil
}

func (s *LedgerService) CreateSelfTransfer(ctx context.Context, req *connect.Request[ledgerv1.CreateSelfTransferRequest]) (*connect.Response[ledgerv1.CreateSelfTransferResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	m := req.Msg
	if m.FromAccountID == "" || m.ToAccountID == "" {
		return nil, invalidArgument("from_account_id and to_account_id are required")
	}
	if m.FromAccountID == m.ToAccountID {
		return nil, invalidArgument("cannot transfer an account to itself")
	}
	if !m.Amount.IsPositive() {
		return nil, invalidArgument("amount must be positive")
	}
	for _, id := range []string{m.FromAccountID, m.ToAccountID} {
		if err := s.checkReferences(ctx, userID, id, ""); err != nil {
			return nil, err
		}
	}

	transfer := &models.SelfTransfer{
		UserID:        userID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Note:          m.Note,
		OccurredAt:    m.OccurredAt.UTC(),
	}
	if transfer.OccurredAt.IsZero() {
		transfer.OccurredAt = s.now().UTC()
	}
	if err := s.store.CreateSelfTransfer(ctx, transfer); err != nil {
		return nil, toConnectError("CreateSelfTransfer", err)
	}
	return connect.NewResponse(&ledgerv1.CreateSelfTransferResponse{TransferID: transfer.ID}), nil
}

// CreateLoan records a loan on a credit instrument after resolving its
// schedule, so loans that cannot be amortized are never stored.
func (s *LedgerService) CreateLoan(ctx context.Context, req *connect.Request[ledgerv1.CreateLoanRequest]) (*connect.Response[ledgerv1.CreateLoanResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	m := req.Msg
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return nil, invalidArgument("loan name is required")
	}
	if m.PaidInstallments < 0 {
		return nil, invalidArgument("paid_installments must not be negative")
	}

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
	loan.UserID = userID
	loan.Name = name
	loan.CreditInstrumentID = m.CreditInstrumentID
	loan.PaidInstallments = min(m.PaidInstallments, m.TenureMonths)

	if err := s.checkInstrument(ctx, userID, m.CreditInstrumentID); err != nil {
		return nil, err
	}
	splits := make([]models.LoanSplit, 0, len(m.Splits))
	for _, sp := range m.Splits {
		if err := s.checkReferences(ctx, userID, "", sp.FriendID); err != nil {
			return nil, err
		}
		splits = append(splits, models.LoanSplit{FriendID: sp.FriendID, Percentage: sp.Percentage})
	}
	if _, err := calculator.LoanSplitTotal(splits); err != nil {
		return nil, toConnectError("CreateLoan", err)
	}
	schedule, err := scheduleFor(loan)
	if err != nil {
		return nil, toConnectError("CreateLoan", err)
	}

	if err := s.store.CreateLoan(ctx, &loan, splits); err != nil {
		return nil, toConnectError("CreateLoan", err)
	}

	slog.Info("Loan created", "loan_id", loan.ID, "mode", loan.CalculationMode, "tenure_months", loan.TenureMonths)
	return connect.NewResponse(&ledgerv1.CreateLoanResponse{
		LoanID:      loan.ID,
		Installment: schedule.Installment,
		Principal:   schedule.Principal,
	}), nil
}

func (s *LedgerService) CreateRecurringPayment(ctx context.Context, req *connect.Request[ledgerv1.CreateRecurringPaymentRequest]) (*connect.Response[ledgerv1.CreateRecurringPaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	m := req.Msg
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return nil, invalidArgument("recurring payment name is required")
	}
	if !m.Amount.IsPositive() {
		return nil, invalidArgument("amount must be positive")
	}
	start, err := parseDate("start_date", m.StartDate)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, invalidArgument("start_date is required")
	}
	end, err := parseDate("end_date", m.EndDate)
	if err != nil {
		return nil, err
	}

	def := &models.RecurringPayment{
		UserID:     userID,
		Name:       name,
		Category:   strings.TrimSpace(m.Category),
		Amount:     m.Amount,
		Frequency:  models.Frequency(m.Frequency),
		Multiplier: m.Multiplier,
		StartDate:  *start,
		EndDate:    end,
	}
	if def.Multiplier == 0 {
		def.Multiplier = 1
	}
	if err := calculator.ValidateRecurring(*def); err != nil {
		return nil, toConnectError("CreateRecurringPayment", err)
	}
	if err := s.store.CreateRecurringPayment(ctx, def); err != nil {
		return nil, toConnectError("CreateRecurringPayment", err)
	}

	slog.Info("Recurring payment created", "recurring_id", def.ID, "frequency", def.Frequency, "multiplier", def.Multiplier)
	return connect.NewResponse(&ledgerv1.CreateRecurringPaymentResponse{RecurringID: def.ID}), nil
}

// LinkPayment records a statement as a payment of a loan or recurring
// payment. For loans the paid-installment marker is then advanced to the
// highest installment the linked payments cover; it never moves back.
//
// A statement pays one obligation. Repeating a link returns the stored one
// and recomputes the marker, so a call that failed after the link was
// stored can be retried.
func (s *LedgerService) LinkPayment(ctx context.Context, req *connect.Request[ledgerv1.LinkPaymentRequest]) (*connect.Response[ledgerv1.LinkPaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	m := req.Msg
	kind := models.ObligationKind(m.ObligationKind)
	if kind != models.ObligationLoan && kind != models.ObligationRecurring {
		return nil, invalidArgument("obligation_kind: %q is not one of loan, recurring", m.ObligationKind)
	}
	if m.ObligationID == "" || m.StatementID == "" {
		return nil, invalidArgument("obligation_id and statement_id are required")
	}

	link := &models.LinkedPayment{
		UserID:         userID,
		ObligationKind: kind,
		ObligationID:   m.ObligationID,
		StatementID:    m.StatementID,
	}
	if err := s.store.LinkPayment(ctx, link); err != nil {
		return nil, toConnectError("LinkPayment", err)
	}
	resp := &ledgerv1.LinkPaymentResponse{LinkID: link.ID}

	if kind == models.ObligationLoan {
		paid, err := s.advancePaidInstallments(ctx, userID, m.ObligationID)
		if err != nil {
			return nil, toConnectError("LinkPayment", err)
		}
		resp.PaidInstallments = paid
	}

	slog.Info("Payment linked", "obligation_kind", kind, "obligation_id", m.ObligationID, "statement_id", m.StatementID)
	return connect.NewResponse(resp), nil
}

func (s *LedgerService) advancePaidInstallments(ctx context.Context, userID, loanID string) (int, error) {
	ls, err := LoadLoanSchedule(ctx, s.store, userID, loanID, s.now())
	if err != nil {
		return 0, err
	}

	paid := ls.Loan.PaidInstallments
	for _, r := range ls.Reconciled {
		if r.Status == calculator.StatusPaid && r.Index > paid {
			paid = r.Index
		}
	}
	if paid != ls.Loan.PaidInstallments {
		if err := s.store.SetPaidInstallments(ctx, userID, loanID, paid); err != nil {
			return 0, err
		}
	}
	return paid, nil
}

// checkReferences verifies that the non-empty account and friend IDs belong
// to the user.
func (s *LedgerService) checkReferences(ctx context.Context, userID, accountID, friendID string) error {
	if accountID != "" {
		accounts, err := s.store.ListAccounts(ctx, userID)
		if err != nil {
			return toConnectError("checkReferences", err)
		}
		if !containsID(accounts, accountID, func(a models.Account) string { return a.ID }) {
			return unknownReference("account", accountID)
		}
	}
	if friendID != "" {
		friends, err := s.store.ListFriends(ctx, userID)
		if err != nil {
			return toConnectError("checkReferences", err)
		}
		if !containsID(friends, friendID, func(f models.Friend) string { return f.ID }) {
			return unknownReference("friend", friendID)
		}
	}
	return nil
}

// checkInstrument verifies the account exists and carries a credit limit.
func (s *LedgerService) checkInstrument(ctx context.Context, userID, accountID string) error {
	if accountID == "" {
		return invalidArgument("credit_instrument_id is required")
	}
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return toConnectError("checkInstrument", err)
	}
	for _, a := range accounts {
		if a.ID != accountID {
			continue
		}
		if !a.IsCreditInstrument() {
			return connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("account %s has no credit limit", accountID))
		}
		return nil
	}
	return unknownReference("credit instrument", accountID)
}

func unknownReference(kind, id string) error {
	return connect.NewError(connect.CodeFailedPrecondition, &calculator.ReferenceError{Kind: kind, ID: id, Referrer: "request"})
}

func containsID[T any](items []T, id string, idOf func(T) string) bool {
	for _, it := range items {
		if idOf(it) == id {
			return true
		}
	}
	return false
}

func accountToProto(a models.Account) ledgerv1.Account {
	return ledgerv1.Account{
		ID:              a.ID,
		Name:            a.Name,
		StartingBalance: a.StartingBalance,
		CreditLimit:     a.CreditLimit,
	}
}
