package calculator

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/finledger/internal/models"
)

func baseBalanceInput() BalanceInput {
	return BalanceInput{
		Accounts: []models.Account{
			{ID: "acc-checking", Name: "Checking", StartingBalance: dec("5000")},
			{ID: "acc-savings", Name: "Savings", StartingBalance: dec("10000")},
		},
		Friends: []models.Friend{
			{ID: "fr-alice", Name: "Alice"},
			{ID: "fr-bob", Name: "Bob"},
		},
	}
}

func accountByID(t *testing.T, s *BalanceSummary, id string) AccountBalance {
	t.Helper()
	for _, a := range s.Accounts {
		if a.AccountID == id {
			return a
		}
	}
	t.Fatalf("account %s missing from summary", id)
	return AccountBalance{}
}

func friendByID(t *testing.T, s *BalanceSummary, id string) FriendBalance {
	t.Helper()
	for _, f := range s.Friends {
		if f.FriendID == id {
			return f
		}
	}
	t.Fatalf("friend %s missing from summary", id)
	return FriendBalance{}
}

func TestCalculateBalances(t *testing.T) {
	at := day(2024, time.March, 10)

	tests := []struct {
		name         string
		modify       func(in *BalanceInput)
		wantErr      error
		validateFunc func(t *testing.T, s *BalanceSummary)
	}{
		{
			name: "split expense charges the account in full",
			modify: func(in *BalanceInput) {
				in.Statements = []models.Statement{
					{ID: "st-dinner", Kind: models.KindExpense, Direction: models.Debit, Amount: dec("1000"), Category: "dining", AccountID: "acc-checking", OccurredAt: at},
				}
				in.Splits = []models.Split{
					{ID: "sp-1", StatementID: "st-dinner", FriendID: "fr-alice", Amount: dec("400")},
					{ID: "sp-2", StatementID: "st-dinner", FriendID: "fr-bob", Amount: dec("300")},
				}
			},
			validateFunc: func(t *testing.T, s *BalanceSummary) {
				checking := accountByID(t, s, "acc-checking")
				assertDecimal(t, "checking expenses", checking.Expenses, "1000")
				assertDecimal(t, "checking final", checking.FinalBalance, "4000")
				assertDecimal(t, "alice splits", friendByID(t, s, "fr-alice").Splits, "400")
				assertDecimal(t, "bob splits", friendByID(t, s, "fr-bob").Splits, "300")
				assertDecimal(t, "alice final", friendByID(t, s, "fr-alice").FinalBalance, "400")
				assertDecimal(t, "dining category", s.Categories["dining"], "1000")
			},
		},
		{
			name: "friend transactions and repayments",
			modify: func(in *BalanceInput) {
				in.Statements = []models.Statement{
					{ID: "st-lend", Kind: models.KindFriend, Direction: models.Debit, Amount: dec("200"), AccountID: "acc-checking", FriendID: "fr-alice", OccurredAt: at},
					{ID: "st-repay", Kind: models.KindFriend, Direction: models.Credit, Amount: dec("50"), AccountID: "acc-checking", FriendID: "fr-alice", OccurredAt: at},
					{ID: "st-cash", Kind: models.KindFriend, Amount: dec("30"), FriendID: "fr-alice", OccurredAt: at},
				}
			},
			validateFunc: func(t *testing.T, s *BalanceSummary) {
				checking := accountByID(t, s, "acc-checking")
				assertDecimal(t, "checking friend transactions", checking.FriendTransactions, "150")
				assertDecimal(t, "checking final", checking.FinalBalance, "4850")

				alice := friendByID(t, s, "fr-alice")
				assertDecimal(t, "alice friend transactions", alice.FriendTransactions, "200")
				assertDecimal(t, "alice paid", alice.PaidByFriend, "80")
				assertDecimal(t, "alice final", alice.FinalBalance, "120")
			},
		},
		{
			name: "self transfer moves money between accounts",
			modify: func(in *BalanceInput) {
				in.Transfers = []models.SelfTransfer{
					{ID: "tr-1", FromAccountID: "acc-savings", ToAccountID: "acc-checking", Amount: dec("2500"), OccurredAt: at},
				}
			},
			validateFunc: func(t *testing.T, s *BalanceSummary) {
				assertDecimal(t, "checking transfers", accountByID(t, s, "acc-checking").SelfTransfers, "2500")
				assertDecimal(t, "savings transfers", accountByID(t, s, "acc-savings").SelfTransfers, "-2500")
				assertDecimal(t, "checking final", accountByID(t, s, "acc-checking").FinalBalance, "7500")
				assertDecimal(t, "savings final", accountByID(t, s, "acc-savings").FinalBalance, "7500")
				assertDecimal(t, "account change", s.Totals.AccountChange, "0")
			},
		},
		{
			name: "outside credit raises the balance",
			modify: func(in *BalanceInput) {
				in.Statements = []models.Statement{
					{ID: "st-salary", Kind: models.KindOutside, Direction: models.Credit, Amount: dec("2000"), AccountID: "acc-savings", OccurredAt: at},
				}
			},
			validateFunc: func(t *testing.T, s *BalanceSummary) {
				savings := accountByID(t, s, "acc-savings")
				assertDecimal(t, "savings outside", savings.OutsideTransactions, "-2000")
				assertDecimal(t, "savings final", savings.FinalBalance, "12000")
			},
		},
		{
			name: "window excludes statements and their splits",
			modify: func(in *BalanceInput) {
				from := day(2024, time.March, 1)
				to := day(2024, time.March, 31)
				in.Window = &models.Window{From: &from, To: &to}
				in.Statements = []models.Statement{
					{ID: "st-old", Kind: models.KindExpense, Amount: dec("999"), AccountID: "acc-checking", OccurredAt: day(2024, time.February, 2)},
					{ID: "st-new", Kind: models.KindExpense, Amount: dec("100"), AccountID: "acc-checking", OccurredAt: at},
				}
				in.Splits = []models.Split{
					{ID: "sp-old", StatementID: "st-old", FriendID: "fr-bob", Amount: dec("999")},
				}
			},
			validateFunc: func(t *testing.T, s *BalanceSummary) {
				assertDecimal(t, "checking expenses", accountByID(t, s, "acc-checking").Expenses, "100")
				assertDecimal(t, "bob splits", friendByID(t, s, "fr-bob").Splits, "0")
			},
		},
		{
			name: "unknown account is a referential fault",
			modify: func(in *BalanceInput) {
				in.Statements = []models.Statement{
					{ID: "st-1", Kind: models.KindExpense, Amount: dec("10"), AccountID: "acc-missing", OccurredAt: at},
				}
			},
			wantErr: ErrReference,
		},
		{
			name: "split of unknown statement is a referential fault",
			modify: func(in *BalanceInput) {
				in.Splits = []models.Split{
					{ID: "sp-1", StatementID: "st-missing", FriendID: "fr-alice", Amount: dec("10")},
				}
			},
			wantErr: ErrReference,
		},
		{
			name: "unknown transfer destination is a referential fault",
			modify: func(in *BalanceInput) {
				in.Transfers = []models.SelfTransfer{
					{ID: "tr-1", FromAccountID: "acc-checking", ToAccountID: "acc-missing", Amount: dec("10"), OccurredAt: at},
				}
			},
			wantErr: ErrReference,
		},
		{
			name: "splits above the statement amount are rejected",
			modify: func(in *BalanceInput) {
				in.Statements = []models.Statement{
					{ID: "st-1", Kind: models.KindExpense, Amount: dec("100"), AccountID: "acc-checking", OccurredAt: at},
				}
				in.Splits = []models.Split{
					{ID: "sp-1", StatementID: "st-1", FriendID: "fr-alice", Amount: dec("60")},
					{ID: "sp-2", StatementID: "st-1", FriendID: "fr-bob", Amount: dec("50")},
				}
			},
			wantErr: ErrValidation,
		},
		{
			name: "expense without account is rejected",
			modify: func(in *BalanceInput) {
				in.Statements = []models.Statement{
					{ID: "st-1", Kind: models.KindExpense, Amount: dec("100"), OccurredAt: at},
				}
			},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseBalanceInput()
			tt.modify(&in)

			summary, err := CalculateBalances(in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CalculateBalances() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateBalances() unexpected error: %v", err)
			}
			if err := CheckConservation(summary); err != nil {
				t.Errorf("CheckConservation() = %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, summary)
			}
		})
	}
}

func TestCalculateBalancesCollectsEveryFault(t *testing.T) {
	in := baseBalanceInput()
	in.Statements = []models.Statement{
		{ID: "st-1", Kind: models.KindExpense, Amount: dec("10"), AccountID: "acc-missing"},
		{ID: "st-2", Kind: models.KindFriend, Amount: dec("10"), AccountID: "acc-checking", FriendID: "fr-missing"},
	}

	_, err := CalculateBalances(in)
	if err == nil {
		t.Fatal("expected an error")
	}

	var faults interface{ Unwrap() []error }
	if !errors.As(err, &faults) {
		t.Fatalf("error %v does not join multiple faults", err)
	}
	if got := len(faults.Unwrap()); got != 2 {
		t.Errorf("got %d faults, want 2: %v", got, err)
	}

	var ref *ReferenceError
	if !errors.As(err, &ref) {
		t.Fatalf("error %v carries no ReferenceError", err)
	}
	if ref.ID != "acc-missing" {
		t.Errorf("first fault ID = %q, want acc-missing", ref.ID)
	}
}

func TestCheckConservation(t *testing.T) {
	s := &BalanceSummary{Totals: BalanceTotals{
		Flow:          dec("-100"),
		AccountChange: dec("-90"),
	}}
	if err := CheckConservation(s); err == nil {
		t.Error("expected mismatch between flow and account change to fail")
	}

	s.Totals.AccountChange = dec("-100")
	s.Totals.Attributed = dec("40")
	s.Totals.FriendBalance = dec("40")
	if err := CheckConservation(s); err != nil {
		t.Errorf("CheckConservation() = %v, want nil", err)
	}
}

func TestCalculateBalancesOrdering(t *testing.T) {
	in := BalanceInput{
		Accounts: []models.Account{
			{ID: "b", Name: "Wallet"},
			{ID: "a", Name: "Bank"},
			{ID: "c", Name: "Bank"},
		},
	}
	s, err := CalculateBalances(in)
	if err != nil {
		t.Fatalf("CalculateBalances() unexpected error: %v", err)
	}
	var got []string
	for _, a := range s.Accounts {
		got = append(got, a.AccountID)
	}
	want := []string{"a", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("account order = %v, want %v", got, want)
		}
	}
}
