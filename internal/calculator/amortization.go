package calculator

import (
	"time"

	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

// maxTenureMonths bounds schedule generation.
const maxTenureMonths = 600

// rate precision used for the monthly rate and the compound factor
const (
	ratePlaces   = 18
	factorPlaces = 24
)

var one = decimal.NewFromInt(1)

// Mode is the authoritative amount of a loan. It is implemented by exactly
// ByPrincipal, ByInstallment and ByTotalPayable.
type Mode interface {
	calculationMode() models.CalculationMode
}

// ByPrincipal solves the installment from a known principal.
type ByPrincipal struct{ Principal decimal.Decimal }

// ByInstallment solves the principal from a known monthly installment.
type ByInstallment struct{ Installment decimal.Decimal }

// ByTotalPayable solves the principal from the total of all installments.
type ByTotalPayable struct{ TotalPayable decimal.Decimal }

func (ByPrincipal) calculationMode() models.CalculationMode    { return models.ModePrincipal }
func (ByInstallment) calculationMode() models.CalculationMode  { return models.ModeInstallment }
func (ByTotalPayable) calculationMode() models.CalculationMode { return models.ModeTotalPayable }

// LoanTerms is a loan definition in one calculation mode.
// Rates are percentages (12 means 12%).
type LoanTerms struct {
	Mode              Mode
	AnnualRate        decimal.Decimal
	TenureMonths      int
	GSTRateOnInterest decimal.Decimal
	ProcessingFee     decimal.Decimal
	GSTRateOnFee      decimal.Decimal

	// FirstDue dates the schedule; installment i is due i-1 months later.
	FirstDue *time.Time
}

// ScheduleEntry is one installment of an amortization schedule.
type ScheduleEntry struct {
	Index        int
	Date         *time.Time
	Installment  decimal.Decimal // Principal + Interest
	Interest     decimal.Decimal
	Principal    decimal.Decimal
	GST          decimal.Decimal // tax on Interest
	Fee          decimal.Decimal // processing fee and its tax, first installment only
	TotalPayment decimal.Decimal // Installment + GST + Fee
	Balance      decimal.Decimal // remaining principal after this payment
}

// Schedule is the resolved loan with its month-by-month entries.
type Schedule struct {
	Installment   decimal.Decimal // the regular installment (the last one may differ by rounding)
	Principal     decimal.Decimal
	MonthlyRate   decimal.Decimal
	TotalInterest decimal.Decimal
	TotalGST      decimal.Decimal
	ProcessingFee decimal.Decimal
	FeeGST        decimal.Decimal
	TotalPayable  decimal.Decimal // Σ TotalPayment
	Entries       []ScheduleEntry
}

// TermsFromLoan converts a persisted loan into LoanTerms, rejecting loans
// whose populated amounts contradict their calculation mode.
func TermsFromLoan(l models.Loan) (LoanTerms, error) {
	populated := 0
	for _, v := range []*decimal.Decimal{l.Principal, l.Installment, l.TotalPayable} {
		if v != nil {
			populated++
		}
	}
	if populated != 1 {
		return LoanTerms{}, invalid("loan amounts", "loan %s has %d of principal/installment/total payable set, want exactly 1", l.ID, populated)
	}

	terms := LoanTerms{
		AnnualRate:        l.AnnualRate,
		TenureMonths:      l.TenureMonths,
		GSTRateOnInterest: l.GSTRateOnInterest,
		ProcessingFee:     l.ProcessingFee,
		GSTRateOnFee:      l.GSTRateOnFee,
		FirstDue:          l.FirstDue,
	}
	switch {
	case l.CalculationMode == models.ModePrincipal && l.Principal != nil:
		terms.Mode = ByPrincipal{Principal: *l.Principal}
	case l.CalculationMode == models.ModeInstallment && l.Installment != nil:
		terms.Mode = ByInstallment{Installment: *l.Installment}
	case l.CalculationMode == models.ModeTotalPayable && l.TotalPayable != nil:
		terms.Mode = ByTotalPayable{TotalPayable: *l.TotalPayable}
	default:
		return LoanTerms{}, invalid("calculation mode", "loan %s mode %q does not match its populated amount", l.ID, l.CalculationMode)
	}
	return terms, nil
}

// Validate checks the terms without computing anything.
func (t LoanTerms) Validate() error {
	if t.TenureMonths <= 0 || t.TenureMonths > maxTenureMonths {
		return invalid("tenure", "%d months is outside 1..%d", t.TenureMonths, maxTenureMonths)
	}
	if t.AnnualRate.IsNegative() {
		return invalid("annual rate", "%s is negative", t.AnnualRate)
	}
	if t.GSTRateOnInterest.IsNegative() || t.GSTRateOnFee.IsNegative() {
		return invalid("gst rate", "rates must not be negative")
	}
	if t.ProcessingFee.IsNegative() {
		return invalid("processing fee", "%s is negative", t.ProcessingFee)
	}

	var amount decimal.Decimal
	switch m := t.Mode.(type) {
	case ByPrincipal:
		amount = m.Principal
	case ByInstallment:
		amount = m.Installment
	case ByTotalPayable:
		amount = m.TotalPayable
	case nil:
		return invalid("calculation mode", "missing")
	default:
		return invalid("calculation mode", "unsupported %T", t.Mode)
	}
	if !amount.IsPositive() {
		return invalid(string(t.Mode.calculationMode()), "%s must be positive", amount)
	}
	return nil
}

// CalculateSchedule resolves the unknown of the loan (installment or
// principal) and generates the full schedule.
//
// Algorithm:
//   - r = annualRate / 12 / 100, f = (1+r)^n
//   - ByPrincipal: EMI = P·r·f / (f−1), or P/n when r = 0
//   - ByInstallment / ByTotalPayable (EMI = total/n): P = EMI·(f−1) / (r·f), or EMI·n when r = 0
//   - Each month: interest = balance·r, principal = EMI − interest, gst = interest·gstRate/100
//   - The last installment takes whatever balance remains, so the schedule ends at exactly zero
func CalculateSchedule(t LoanTerms) (*Schedule, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(t.TenureMonths))
	r := t.AnnualRate.DivRound(decimal.NewFromInt(1200), ratePlaces)
	f := compound(one.Add(r), t.TenureMonths)

	var principal, emi decimal.Decimal
	switch m := t.Mode.(type) {
	case ByPrincipal:
		principal = m.Principal.Round(2)
		emi = installmentFor(principal, r, f, n)
	case ByInstallment:
		emi = m.Installment.Round(2)
		principal = principalFor(emi, r, f, n)
	case ByTotalPayable:
		emi = m.TotalPayable.DivRound(n, 2)
		principal = principalFor(emi, r, f, n)
	}

	s := &Schedule{
		Installment:   emi,
		Principal:     principal,
		MonthlyRate:   r,
		ProcessingFee: t.ProcessingFee.Round(2),
		FeeGST:        percentOf(t.ProcessingFee, t.GSTRateOnFee),
		Entries:       make([]ScheduleEntry, 0, t.TenureMonths),
	}

	balance := principal
	for i := 1; i <= t.TenureMonths; i++ {
		interest := balance.Mul(r).Round(2)
		part := emi.Sub(interest)
		if i == t.TenureMonths || part.GreaterThan(balance) {
			part = balance
		}
		balance = balance.Sub(part)

		e := ScheduleEntry{
			Index:       i,
			Installment: part.Add(interest),
			Interest:    interest,
			Principal:   part,
			GST:         percentOf(interest, t.GSTRateOnInterest),
			Balance:     balance,
		}
		if i == 1 {
			e.Fee = s.ProcessingFee.Add(s.FeeGST)
		}
		e.TotalPayment = e.Installment.Add(e.GST).Add(e.Fee)
		if t.FirstDue != nil {
			due := addMonths(*t.FirstDue, i-1)
			e.Date = &due
		}

		s.TotalInterest = s.TotalInterest.Add(interest)
		s.TotalGST = s.TotalGST.Add(e.GST)
		s.TotalPayable = s.TotalPayable.Add(e.TotalPayment)
		s.Entries = append(s.Entries, e)
	}

	return s, nil
}

// Outstanding sums principal, interest and GST of the entries after the
// given installment number.
func (s *Schedule) Outstanding(paidInstallments int) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Entries {
		if e.Index > paidInstallments {
			total = total.Add(e.Installment).Add(e.GST)
		}
	}
	return total
}

func installmentFor(principal, r, f, n decimal.Decimal) decimal.Decimal {
	if r.IsZero() {
		return principal.DivRound(n, 2)
	}
	return principal.Mul(r).Mul(f).DivRound(f.Sub(one), ratePlaces).Round(2)
}

func principalFor(emi, r, f, n decimal.Decimal) decimal.Decimal {
	if r.IsZero() {
		return emi.Mul(n).Round(2)
	}
	return emi.Mul(f.Sub(one)).DivRound(r.Mul(f), ratePlaces).Round(2)
}

// compound returns base^n, rounding each step to keep the digit count bounded.
func compound(base decimal.Decimal, n int) decimal.Decimal {
	f := one
	for i := 0; i < n; i++ {
		f = f.Mul(base).Round(factorPlaces)
	}
	return f
}

// percentOf returns amount × rate / 100 rounded to cents.
func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred).Round(2)
}
