package ledgerv1

import (
	"time"

	"github.com/shopspring/decimal"
)

type GetBalancesRequest struct {
	// From and To bound the statements and transfers considered (inclusive).
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type AccountBalance struct {
	AccountID           string          `json:"account_id"`
	Name                string          `json:"name"`
	StartingBalance     decimal.Decimal `json:"starting_balance"`
	Expenses            decimal.Decimal `json:"expenses"`
	SelfTransfers       decimal.Decimal `json:"self_transfers"`
	OutsideTransactions decimal.Decimal `json:"outside_transactions"`
	FriendTransactions  decimal.Decimal `json:"friend_transactions"`
	FinalBalance        decimal.Decimal `json:"final_balance"`
}

type FriendBalance struct {
	FriendID           string          `json:"friend_id"`
	Name               string          `json:"name"`
	FriendTransactions decimal.Decimal `json:"friend_transactions"`
	PaidByFriend       decimal.Decimal `json:"paid_by_friend"`
	Splits             decimal.Decimal `json:"splits"`
	FinalBalance       decimal.Decimal `json:"final_balance"`
}

type BalanceTotals struct {
	Flow          decimal.Decimal `json:"flow"`
	Attributed    decimal.Decimal `json:"attributed"`
	AccountChange decimal.Decimal `json:"account_change"`
	FriendBalance decimal.Decimal `json:"friend_balance"`
}

type GetBalancesResponse struct {
	Accounts   []AccountBalance           `json:"accounts"`
	Friends    []FriendBalance            `json:"friends"`
	Categories map[string]decimal.Decimal `json:"categories"`
	Totals     BalanceTotals              `json:"totals"`
}
