package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/finledger/internal/calculator"
	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage"
	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
	"github.com/mmynk/finledger/pkg/api/ledgerv1/ledgerv1connect"
)

// BalanceService implements the Connect BalanceService
type BalanceService struct {
	ledgerv1connect.UnimplementedBalanceServiceHandler
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetBalances aggregates the user's records inside the requested window and
// verifies the result conserves every amount.
func (s *BalanceService) GetBalances(ctx context.Context, req *connect.Request[ledgerv1.GetBalancesRequest]) (*connect.Response[ledgerv1.GetBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var window *models.Window
	if req.Msg.From != nil || req.Msg.To != nil {
		if req.Msg.From != nil && req.Msg.To != nil && req.Msg.From.After(*req.Msg.To) {
			return nil, invalidArgument("window starts after it ends")
		}
		window = &models.Window{From: req.Msg.From, To: req.Msg.To}
	}

	in, err := s.loadBalanceInput(ctx, userID, window)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}

	summary, err := calculator.CalculateBalances(in)
	if err != nil {
		return nil, toConnectError("GetBalances", err)
	}
	if err := calculator.CheckConservation(summary); err != nil {
		return nil, toConnectError("GetBalances", err)
	}

	slog.Info("GetBalances successful",
		"user_id", userID,
		"accounts", len(summary.Accounts),
		"friends", len(summary.Friends),
	)
	return connect.NewResponse(balancesToProto(summary)), nil
}

func (s *BalanceService) loadBalanceInput(ctx context.Context, userID string, window *models.Window) (calculator.BalanceInput, error) {
	in := calculator.BalanceInput{Window: window}
	var err error
	if in.Accounts, err = s.store.ListAccounts(ctx, userID); err != nil {
		return in, fmt.Errorf("failed to list accounts: %w", err)
	}
	if in.Friends, err = s.store.ListFriends(ctx, userID); err != nil {
		return in, fmt.Errorf("failed to list friends: %w", err)
	}
	if in.Statements, err = s.store.ListStatements(ctx, userID, window); err != nil {
		return in, fmt.Errorf("failed to list statements: %w", err)
	}
	if in.Splits, err = s.store.ListSplits(ctx, userID, window); err != nil {
		return in, fmt.Errorf("failed to list splits: %w", err)
	}
	if in.Transfers, err = s.store.ListSelfTransfers(ctx, userID, window); err != nil {
		return in, fmt.Errorf("failed to list self-transfers: %w", err)
	}
	return in, nil
}

func balancesToProto(s *calculator.BalanceSummary) *ledgerv1.GetBalancesResponse {
	resp := &ledgerv1.GetBalancesResponse{
		Accounts:   make([]ledgerv1.AccountBalance, 0, len(s.Accounts)),
		Friends:    make([]ledgerv1.FriendBalance, 0, len(s.Friends)),
		Categories: s.Categories,
		Totals: ledgerv1.BalanceTotals{
			Flow:          s.Totals.Flow,
			Attributed:    s.Totals.Attributed,
			AccountChange: s.Totals.AccountChange,
			FriendBalance: s.Totals.FriendBalance,
		},
	}
	for _, a := range s.Accounts {
		resp.Accounts = append(resp.Accounts, ledgerv1.AccountBalance{
			AccountID:           a.AccountID,
			Name:                a.Name,
			StartingBalance:     a.StartingBalance,
			Expenses:            a.Expenses,
			SelfTransfers:       a.SelfTransfers,
			OutsideTransactions: a.OutsideTransactions,
			FriendTransactions:  a.FriendTransactions,
			FinalBalance:        a.FinalBalance,
		})
	}
	for _, f := range s.Friends {
		resp.Friends = append(resp.Friends, ledgerv1.FriendBalance{
			FriendID:           f.FriendID,
			Name:               f.Name,
			FriendTransactions: f.FriendTransactions,
			PaidByFriend:       f.PaidByFriend,
			Splits:             f.Splits,
			FinalBalance:       f.FinalBalance,
		})
	}
	return resp
}
