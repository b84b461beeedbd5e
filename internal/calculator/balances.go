package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

// BalanceInput is everything needed to aggregate one user's balances.
// Splits are matched to Statements by StatementID; a split whose statement
// falls outside Window is ignored along with it.
type BalanceInput struct {
	Accounts   []models.Account
	Friends    []models.Friend
	Statements []models.Statement
	Splits     []models.Split
	Transfers  []models.SelfTransfer
	Window     *models.Window
}

// AccountBalance is the aggregated position of one account.
// Expenses, OutsideTransactions and FriendTransactions are net outflows
// (credits subtract); SelfTransfers is inbound minus outbound.
type AccountBalance struct {
	AccountID           string
	Name                string
	StartingBalance     decimal.Decimal
	Expenses            decimal.Decimal
	SelfTransfers       decimal.Decimal
	OutsideTransactions decimal.Decimal
	FriendTransactions  decimal.Decimal
	FinalBalance        decimal.Decimal
}

// FriendBalance is the aggregated position of one friend.
// FinalBalance is positive when the friend owes the user.
type FriendBalance struct {
	FriendID           string
	Name               string
	FriendTransactions decimal.Decimal // advanced on their behalf from an account
	PaidByFriend       decimal.Decimal // paid back, or paid directly by the friend
	Splits             decimal.Decimal // split amounts attributed to them
	FinalBalance       decimal.Decimal
}

// BalanceTotals holds the figures used to verify conservation.
// Flow and Attributed are recomputed from the raw records, AccountChange and
// FriendBalance from the per-account and per-friend summaries.
type BalanceTotals struct {
	Flow          decimal.Decimal // Σ signed amounts of statements on accounts
	Attributed    decimal.Decimal // Σ amounts attributed to friends
	AccountChange decimal.Decimal // Σ (final − starting) over accounts
	FriendBalance decimal.Decimal // Σ final over friends
}

// BalanceSummary is the output of CalculateBalances.
type BalanceSummary struct {
	Accounts   []AccountBalance
	Friends    []FriendBalance
	Categories map[string]decimal.Decimal // net expense outflow per category
	Totals     BalanceTotals
}

// CalculateBalances aggregates statements, splits and self-transfers into
// per-account and per-friend balances.
//
// Algorithm:
//   - Each statement posts its net outflow into the figure named by its kind
//   - Friend statements are mirrored onto the friend: debits from an account
//     increase what the friend owes, credits or friend-paid statements decrease it
//   - Each split attributes its amount to its friend
//   - Each self-transfer is posted as a debit on the source and a credit on the destination
//
// Records referencing unknown accounts, friends or statements are never
// skipped: every such fault is collected and returned joined.
func CalculateBalances(in BalanceInput) (*BalanceSummary, error) {
	accounts := make(map[string]*AccountBalance, len(in.Accounts))
	for _, a := range in.Accounts {
		accounts[a.ID] = &AccountBalance{AccountID: a.ID, Name: a.Name, StartingBalance: a.StartingBalance}
	}
	friends := make(map[string]*FriendBalance, len(in.Friends))
	for _, f := range in.Friends {
		friends[f.ID] = &FriendBalance{FriendID: f.ID, Name: f.Name}
	}
	categories := make(map[string]decimal.Decimal)

	var faults []error
	known := make(map[string]bool, len(in.Statements))
	inWindow := make(map[string]models.Statement, len(in.Statements))

	for _, s := range in.Statements {
		known[s.ID] = true
		if !in.Window.Contains(s.OccurredAt) {
			continue
		}
		inWindow[s.ID] = s
		referrer := "statement " + s.ID

		if !s.Kind.Valid() {
			faults = append(faults, invalid("statement kind", "%s has unknown kind %q", referrer, s.Kind))
			continue
		}

		var acct *AccountBalance
		if s.AccountID != "" {
			acct = accounts[s.AccountID]
			if acct == nil {
				faults = append(faults, &ReferenceError{Kind: "account", ID: s.AccountID, Referrer: referrer})
			}
		} else if s.Kind != models.KindFriend {
			faults = append(faults, invalid("statement account", "%s of kind %s has no account", referrer, s.Kind))
			continue
		}

		var friend *FriendBalance
		if s.FriendID != "" {
			friend = friends[s.FriendID]
			if friend == nil {
				faults = append(faults, &ReferenceError{Kind: "friend", ID: s.FriendID, Referrer: referrer})
			}
		} else if s.Kind == models.KindFriend {
			faults = append(faults, invalid("statement friend", "%s is a friend transaction without a friend", referrer))
			continue
		}

		if (s.AccountID != "" && acct == nil) || (s.FriendID != "" && friend == nil) {
			continue
		}

		inflow := net(s.Amount, s.Direction)
		switch s.Kind {
		case models.KindExpense:
			acct.Expenses = acct.Expenses.Sub(inflow)
			categories[s.Category] = categories[s.Category].Sub(inflow)
		case models.KindOutside:
			acct.OutsideTransactions = acct.OutsideTransactions.Sub(inflow)
		case models.KindFriend:
			switch {
			case acct == nil:
				friend.PaidByFriend = friend.PaidByFriend.Add(s.Amount)
			case s.Direction == models.Credit:
				acct.FriendTransactions = acct.FriendTransactions.Sub(inflow)
				friend.PaidByFriend = friend.PaidByFriend.Add(s.Amount)
			default:
				acct.FriendTransactions = acct.FriendTransactions.Sub(inflow)
				friend.FriendTransactions = friend.FriendTransactions.Sub(inflow)
			}
		}
	}

	splitsByStatement := make(map[string][]models.Split)
	for _, sp := range in.Splits {
		referrer := "split " + sp.ID
		if !known[sp.StatementID] {
			faults = append(faults, &ReferenceError{Kind: "statement", ID: sp.StatementID, Referrer: referrer})
			continue
		}
		if _, ok := inWindow[sp.StatementID]; !ok {
			continue
		}
		friend := friends[sp.FriendID]
		if friend == nil {
			faults = append(faults, &ReferenceError{Kind: "friend", ID: sp.FriendID, Referrer: referrer})
			continue
		}
		friend.Splits = friend.Splits.Add(sp.Amount)
		splitsByStatement[sp.StatementID] = append(splitsByStatement[sp.StatementID], sp)
	}
	for stmtID, splits := range splitsByStatement {
		if err := ValidateStatementSplits(inWindow[stmtID], splits); err != nil {
			faults = append(faults, err)
		}
	}

	for _, t := range in.Transfers {
		if !in.Window.Contains(t.OccurredAt) {
			continue
		}
		referrer := "self-transfer " + t.ID
		from, to := accounts[t.FromAccountID], accounts[t.ToAccountID]
		if from == nil {
			faults = append(faults, &ReferenceError{Kind: "account", ID: t.FromAccountID, Referrer: referrer})
		}
		if to == nil {
			faults = append(faults, &ReferenceError{Kind: "account", ID: t.ToAccountID, Referrer: referrer})
		}
		if from == nil || to == nil {
			continue
		}
		from.SelfTransfers = from.SelfTransfers.Add(net(t.Amount, models.Debit))
		to.SelfTransfers = to.SelfTransfers.Add(net(t.Amount, models.Credit))
	}

	if len(faults) > 0 {
		return nil, errors.Join(faults...)
	}

	summary := &BalanceSummary{Categories: categories}
	summary.Totals.Flow, summary.Totals.Attributed = rawTotals(inWindow, splitsByStatement)

	for _, a := range accounts {
		a.FinalBalance = a.StartingBalance.
			Sub(a.Expenses).
			Add(a.SelfTransfers).
			Sub(a.OutsideTransactions).
			Sub(a.FriendTransactions)
		summary.Totals.AccountChange = summary.Totals.AccountChange.Add(a.FinalBalance.Sub(a.StartingBalance))
		summary.Accounts = append(summary.Accounts, *a)
	}
	for _, f := range friends {
		f.FinalBalance = f.FriendTransactions.Add(f.Splits).Sub(f.PaidByFriend)
		summary.Totals.FriendBalance = summary.Totals.FriendBalance.Add(f.FinalBalance)
		summary.Friends = append(summary.Friends, *f)
	}

	sort.Slice(summary.Accounts, func(i, j int) bool {
		if summary.Accounts[i].Name != summary.Accounts[j].Name {
			return summary.Accounts[i].Name < summary.Accounts[j].Name
		}
		return summary.Accounts[i].AccountID < summary.Accounts[j].AccountID
	})
	sort.Slice(summary.Friends, func(i, j int) bool {
		if summary.Friends[i].Name != summary.Friends[j].Name {
			return summary.Friends[i].Name < summary.Friends[j].Name
		}
		return summary.Friends[i].FriendID < summary.Friends[j].FriendID
	})

	return summary, nil
}

// CheckConservation verifies that the summaries account for every raw
// amount: the account changes equal the signed statement flow (self-transfers
// cancel out), and the friend balances equal what was attributed to friends.
func CheckConservation(s *BalanceSummary) error {
	t := s.Totals
	if !t.AccountChange.Equal(t.Flow) {
		return fmt.Errorf("account balances changed by %s but statements moved %s", t.AccountChange, t.Flow)
	}
	if !t.FriendBalance.Equal(t.Attributed) {
		return fmt.Errorf("friend balances total %s but %s was attributed to friends", t.FriendBalance, t.Attributed)
	}
	return nil
}

// net returns amount as a net inflow for the given direction: negative for
// debits, positive for credits.
func net(amount decimal.Decimal, dir models.Direction) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(dir.Sign()))
}

// rawTotals walks the raw statements independently of the per-account
// postings.
func rawTotals(statements map[string]models.Statement, splits map[string][]models.Split) (flow, attributed decimal.Decimal) {
	for _, s := range statements {
		if s.AccountID != "" {
			flow = flow.Add(s.Signed())
		}
		if s.Kind != models.KindFriend {
			continue
		}
		if s.AccountID == "" || s.Direction == models.Credit {
			attributed = attributed.Sub(s.Amount)
		} else {
			attributed = attributed.Sub(s.Signed())
		}
	}
	for _, list := range splits {
		for _, sp := range list {
			attributed = attributed.Add(sp.Amount)
		}
	}
	return flow, attributed
}
