package calculator

import (
	"errors"
	"sort"
	"time"

	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

// LoanWithSplits pairs a loan with the friends sharing it.
type LoanWithSplits struct {
	Loan   models.Loan
	Splits []models.LoanSplit
}

// ObligationInput is everything needed to project what the user owes.
type ObligationInput struct {
	Instruments []models.Account
	Loans       []LoanWithSplits
	Recurring   []models.RecurringPayment
	Now         time.Time
	Upto        time.Time
}

// LoanOutstanding is the remaining burden of one loan.
type LoanOutstanding struct {
	LoanID                string
	Name                  string
	InstrumentID          string
	Installment           decimal.Decimal
	PaidInstallments      int
	RemainingInstallments int
	Outstanding           decimal.Decimal // Σ principal + interest + GST of unpaid installments
	MySharePercent        decimal.Decimal
}

// InstrumentObligation sums the loans drawn on one credit instrument.
type InstrumentObligation struct {
	InstrumentID string
	Name         string
	Limit        *decimal.Decimal
	Outstanding  decimal.Decimal
	Available    *decimal.Decimal // Limit − Outstanding, nil without a limit
	Loans        []LoanOutstanding
}

// ObligationItem is one expected payment inside a month.
type ObligationItem struct {
	Kind    models.ObligationKind
	Ref     string
	Name    string
	Index   int
	Date    time.Time
	Amount  decimal.Decimal
	MyShare decimal.Decimal
}

// MonthObligation totals the expected payments of one calendar month.
type MonthObligation struct {
	Month        string
	Installments decimal.Decimal
	Recurring    decimal.Decimal
	Total        decimal.Decimal
	MyShare      decimal.Decimal
	Items        []ObligationItem
}

// ObligationReport answers "what do I owe, this month and going forward".
type ObligationReport struct {
	Instruments      []InstrumentObligation
	TotalOutstanding decimal.Decimal
	CurrentMonth     MonthObligation
	Upcoming         []MonthObligation // months after the current one up to Upto, ascending
}

// AggregateObligations combines the unpaid installments of every loan and
// the occurrences of every recurring payment.
//
// Per loan, installments up to the loan's PaidInstallments marker are
// skipped; the rest make up its outstanding balance, summed per credit
// instrument. Dated installments and recurring occurrences are bucketed into
// the current month or a later month up to Upto. The current month holds
// every unpaid item dated in it, including days before Now. A loan's share
// carried by the user is the part of each installment not allocated to
// friends.
//
// Instruments without loans yield zero rows; an empty input yields an empty,
// valid report.
func AggregateObligations(in ObligationInput) (*ObligationReport, error) {
	instruments := make(map[string]*InstrumentObligation, len(in.Instruments))
	for _, a := range in.Instruments {
		io := &InstrumentObligation{InstrumentID: a.ID, Name: a.Name, Limit: a.CreditLimit}
		instruments[a.ID] = io
	}

	report := &ObligationReport{}
	current := &MonthObligation{Month: MonthKey(in.Now)}
	months := make(map[string]*MonthObligation)
	upto := dateOnly(in.Upto)

	bucket := func(date time.Time) *MonthObligation {
		if sameMonth(date, in.Now) {
			return current
		}
		if !date.After(in.Now) || dateOnly(date).After(upto) {
			return nil
		}
		key := MonthKey(date)
		m := months[key]
		if m == nil {
			m = &MonthObligation{Month: key}
			months[key] = m
		}
		return m
	}

	var faults []error
	for _, lw := range in.Loans {
		l := lw.Loan
		io := instruments[l.CreditInstrumentID]
		if io == nil {
			faults = append(faults, &ReferenceError{Kind: "credit instrument", ID: l.CreditInstrumentID, Referrer: "loan " + l.ID})
			continue
		}
		if l.PaidInstallments < 0 {
			faults = append(faults, invalid("paid installments", "loan %s has %d paid installments", l.ID, l.PaidInstallments))
			continue
		}
		terms, err := TermsFromLoan(l)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		schedule, err := CalculateSchedule(terms)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		allocated, err := LoanSplitTotal(lw.Splits)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		myPercent := hundred.Sub(allocated)

		paid := min(l.PaidInstallments, l.TenureMonths)
		lo := LoanOutstanding{
			LoanID:                l.ID,
			Name:                  l.Name,
			InstrumentID:          io.InstrumentID,
			Installment:           schedule.Installment,
			PaidInstallments:      paid,
			RemainingInstallments: l.TenureMonths - paid,
			Outstanding:           schedule.Outstanding(paid),
			MySharePercent:        myPercent,
		}
		io.Outstanding = io.Outstanding.Add(lo.Outstanding)
		io.Loans = append(io.Loans, lo)

		for _, e := range schedule.Entries {
			if e.Index <= paid || e.Date == nil {
				continue
			}
			m := bucket(*e.Date)
			if m == nil {
				continue
			}
			m.add(ObligationItem{
				Kind:    models.ObligationLoan,
				Ref:     l.ID,
				Name:    l.Name,
				Index:   e.Index,
				Date:    *e.Date,
				Amount:  e.TotalPayment,
				MyShare: e.TotalPayment.Mul(myPercent).Div(hundred).Round(2),
			})
		}
	}

	monthStart := time.Date(in.Now.Year(), in.Now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, def := range in.Recurring {
		seq, err := Occurrences(def, monthStart, in.Upto)
		if err != nil {
			faults = append(faults, err)
			continue
		}
		for occ := range seq {
			m := bucket(occ.Date)
			if m == nil {
				continue
			}
			m.add(ObligationItem{
				Kind:    models.ObligationRecurring,
				Ref:     def.ID,
				Name:    def.Name,
				Date:    occ.Date,
				Amount:  occ.Amount,
				MyShare: occ.Amount,
			})
		}
	}

	if len(faults) > 0 {
		return nil, errors.Join(faults...)
	}

	for _, io := range instruments {
		if io.Limit != nil {
			available := io.Limit.Sub(io.Outstanding)
			io.Available = &available
		}
		sort.Slice(io.Loans, func(i, j int) bool { return io.Loans[i].Name < io.Loans[j].Name })
		report.TotalOutstanding = report.TotalOutstanding.Add(io.Outstanding)
		report.Instruments = append(report.Instruments, *io)
	}
	sort.Slice(report.Instruments, func(i, j int) bool {
		a, b := report.Instruments[i], report.Instruments[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.InstrumentID < b.InstrumentID
	})

	current.sortItems()
	report.CurrentMonth = *current
	for _, m := range months {
		m.sortItems()
		report.Upcoming = append(report.Upcoming, *m)
	}
	sort.Slice(report.Upcoming, func(i, j int) bool { return report.Upcoming[i].Month < report.Upcoming[j].Month })

	return report, nil
}

func (m *MonthObligation) add(item ObligationItem) {
	switch item.Kind {
	case models.ObligationLoan:
		m.Installments = m.Installments.Add(item.Amount)
	case models.ObligationRecurring:
		m.Recurring = m.Recurring.Add(item.Amount)
	}
	m.Total = m.Total.Add(item.Amount)
	m.MyShare = m.MyShare.Add(item.MyShare)
	m.Items = append(m.Items, item)
}

func (m *MonthObligation) sortItems() {
	sort.SliceStable(m.Items, func(i, j int) bool { return m.Items[i].Date.Before(m.Items[j].Date) })
}
