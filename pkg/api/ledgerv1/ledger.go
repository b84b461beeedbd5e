package ledgerv1

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	StartingBalance decimal.Decimal  `json:"starting_balance"`
	CreditLimit     *decimal.Decimal `json:"credit_limit,omitempty"`
}

type CreateAccountRequest struct {
	Name            string           `json:"name"`
	StartingBalance decimal.Decimal  `json:"starting_balance"`
	CreditLimit     *decimal.Decimal `json:"credit_limit,omitempty"`
}

type CreateAccountResponse struct {
	Account Account `json:"account"`
}

type ListAccountsRequest struct{}

type ListAccountsResponse struct {
	Accounts []Account `json:"accounts"`
}

type DeleteAccountRequest struct {
	AccountID string `json:"account_id"`
}

type DeleteAccountResponse struct{}

type Friend struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateFriendRequest struct {
	Name string `json:"name"`
}

type CreateFriendResponse struct {
	Friend Friend `json:"friend"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

type SplitInput struct {
	FriendID string          `json:"friend_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreateStatementRequest records a transaction. Kind is "expense",
// "outside_transaction" or "friend_transaction"; Direction is "debit"
// (default) or "credit".
type CreateStatementRequest struct {
	Kind       string          `json:"kind"`
	Direction  string          `json:"direction,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Category   string          `json:"category,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Note       string          `json:"note,omitempty"`
	AccountID  string          `json:"account_id,omitempty"`
	FriendID   string          `json:"friend_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Splits     []SplitInput    `json:"splits,omitempty"`
}

type CreateStatementResponse struct {
	StatementID string   `json:"statement_id"`
	SplitIDs    []string `json:"split_ids,omitempty"`
}

type CreateSelfTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type CreateSelfTransferResponse struct {
	TransferID string `json:"transfer_id"`
}

type LoanSplitInput struct {
	FriendID   string          `json:"friend_id"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CreateLoanRequest records a loan drawn on a credit instrument. Mode names
// what Amount is, as in CalculateScheduleRequest.
type CreateLoanRequest struct {
	Name               string           `json:"name"`
	CreditInstrumentID string           `json:"credit_instrument_id"`
	Mode               string           `json:"mode"`
	Amount             decimal.Decimal  `json:"amount"`
	AnnualRate         decimal.Decimal  `json:"annual_rate"`
	TenureMonths       int              `json:"tenure_months"`
	GSTRateOnInterest  decimal.Decimal  `json:"gst_rate_on_interest"`
	ProcessingFee      decimal.Decimal  `json:"processing_fee"`
	GSTRateOnFee       decimal.Decimal  `json:"gst_rate_on_fee"`
	FirstDue           string           `json:"first_due,omitempty"`
	PaidInstallments   int              `json:"paid_installments,omitempty"`
	Splits             []LoanSplitInput `json:"splits,omitempty"`
}

type CreateLoanResponse struct {
	LoanID      string          `json:"loan_id"`
	Installment decimal.Decimal `json:"installment"`
	Principal   decimal.Decimal `json:"principal"`
}

type CreateRecurringPaymentRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  string          `json:"frequency"`
	Multiplier int             `json:"multiplier,omitempty"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date,omitempty"`
}

type CreateRecurringPaymentResponse struct {
	RecurringID string `json:"recurring_id"`
}

// LinkPaymentRequest records a statement as the payment of an obligation.
// ObligationKind is "loan" or "recurring".
type LinkPaymentRequest struct {
	ObligationKind string `json:"obligation_kind"`
	ObligationID   string `json:"obligation_id"`
	StatementID    string `json:"statement_id"`
}

type LinkPaymentResponse struct {
	LinkID string `json:"link_id"`
	// PaidInstallments is the loan's updated paid-so-far marker.
	PaidInstallments int `json:"paid_installments,omitempty"`
}
