package ledgerv1

import "github.com/shopspring/decimal"

// CalculateScheduleRequest describes a loan without persisting it.
// Mode is "principal", "installment" or "total_payable" and names what
// Amount is.
type CalculateScheduleRequest struct {
	Mode              string          `json:"mode"`
	Amount            decimal.Decimal `json:"amount"`
	AnnualRate        decimal.Decimal `json:"annual_rate"`
	TenureMonths      int             `json:"tenure_months"`
	GSTRateOnInterest decimal.Decimal `json:"gst_rate_on_interest"`
	ProcessingFee     decimal.Decimal `json:"processing_fee"`
	GSTRateOnFee      decimal.Decimal `json:"gst_rate_on_fee"`
	FirstDue          string          `json:"first_due,omitempty"`
}

type ScheduleEntry struct {
	Index        int             `json:"index"`
	Date         string          `json:"date,omitempty"`
	Installment  decimal.Decimal `json:"installment"`
	Interest     decimal.Decimal `json:"interest"`
	Principal    decimal.Decimal `json:"principal"`
	GST          decimal.Decimal `json:"gst"`
	Fee          decimal.Decimal `json:"fee"`
	TotalPayment decimal.Decimal `json:"total_payment"`
	Balance      decimal.Decimal `json:"balance"`

	// Status and PaymentID are set when the schedule is reconciled against
	// linked payments.
	Status    string `json:"status,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

type Schedule struct {
	Installment   decimal.Decimal `json:"installment"`
	Principal     decimal.Decimal `json:"principal"`
	MonthlyRate   decimal.Decimal `json:"monthly_rate"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalGST      decimal.Decimal `json:"total_gst"`
	ProcessingFee decimal.Decimal `json:"processing_fee"`
	FeeGST        decimal.Decimal `json:"fee_gst"`
	TotalPayable  decimal.Decimal `json:"total_payable"`
	Entries       []ScheduleEntry `json:"entries"`
}

type CalculateScheduleResponse struct {
	Schedule Schedule `json:"schedule"`
}

type GetLoanScheduleRequest struct {
	LoanID string `json:"loan_id"`
}

type GetLoanScheduleResponse struct {
	LoanID           string          `json:"loan_id"`
	Name             string          `json:"name"`
	PaidInstallments int             `json:"paid_installments"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	MySharePercent   decimal.Decimal `json:"my_share_percent"`
	Schedule         Schedule        `json:"schedule"`
}
