package ledgerv1

import "github.com/shopspring/decimal"

type GetObligationsRequest struct {
	// Upto is the last date projected. Empty means twelve months ahead.
	Upto string `json:"upto,omitempty"`
}

type LoanOutstanding struct {
	LoanID                string          `json:"loan_id"`
	Name                  string          `json:"name"`
	Installment           decimal.Decimal `json:"installment"`
	PaidInstallments      int             `json:"paid_installments"`
	RemainingInstallments int             `json:"remaining_installments"`
	Outstanding           decimal.Decimal `json:"outstanding"`
	MySharePercent        decimal.Decimal `json:"my_share_percent"`
}

type InstrumentObligation struct {
	InstrumentID string            `json:"instrument_id"`
	Name         string            `json:"name"`
	Limit        *decimal.Decimal  `json:"limit,omitempty"`
	Outstanding  decimal.Decimal   `json:"outstanding"`
	Available    *decimal.Decimal  `json:"available,omitempty"`
	Loans        []LoanOutstanding `json:"loans"`
}

type ObligationItem struct {
	Kind    string          `json:"kind"`
	Ref     string          `json:"ref"`
	Name    string          `json:"name"`
	Index   int             `json:"index,omitempty"`
	Date    string          `json:"date"`
	Amount  decimal.Decimal `json:"amount"`
	MyShare decimal.Decimal `json:"my_share"`
}

type MonthObligation struct {
	Month        string           `json:"month"`
	Installments decimal.Decimal  `json:"installments"`
	Recurring    decimal.Decimal  `json:"recurring"`
	Total        decimal.Decimal  `json:"total"`
	MyShare      decimal.Decimal  `json:"my_share"`
	Items        []ObligationItem `json:"items"`
}

type GetObligationsResponse struct {
	Instruments      []InstrumentObligation `json:"instruments"`
	TotalOutstanding decimal.Decimal        `json:"total_outstanding"`
	CurrentMonth     MonthObligation        `json:"current_month"`
	Upcoming         []MonthObligation      `json:"upcoming"`
}

type GetRecurringOccurrencesRequest struct {
	RecurringID string `json:"recurring_id"`
	// From is the first date listed. Empty means today; earlier dates let
	// unpaid past occurrences show up as missed.
	From string `json:"from,omitempty"`
	Upto string `json:"upto,omitempty"`
}

type Occurrence struct {
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	PaymentID string          `json:"payment_id,omitempty"`
}

type GetRecurringOccurrencesResponse struct {
	RecurringID string       `json:"recurring_id"`
	Name        string       `json:"name"`
	Active      bool         `json:"active"`
	Occurrences []Occurrence `json:"occurrences"`
	// MonthTotals sums the occurrences per "2006-01" month.
	MonthTotals map[string]decimal.Decimal `json:"month_totals"`
}
