package calculator

import (
	"iter"
	"sort"
	"time"

	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

// Status is the reconciliation state of a due entry.
type Status string

const (
	StatusPaid     Status = "paid"
	StatusUpcoming Status = "upcoming"
	StatusMissed   Status = "missed"
)

// Due is an expected payment: a schedule entry or a recurring occurrence.
type Due struct {
	Ref    string // loan or recurring payment ID
	Index  int    // installment number, or position in the occurrence sequence
	Date   *time.Time
	Amount decimal.Decimal
}

// Payment is an actual payment candidate.
type Payment struct {
	ID     string
	Date   time.Time
	Amount decimal.Decimal
}

// Reconciled is a due entry with its status and, when paid, the payment
// it was matched to.
type Reconciled struct {
	Due
	Status    Status
	PaymentID string
}

// Match reconciles dues against payments.
//
// Payments are sorted by date (stable, so equal dates keep their input
// order) and each dated due takes the first unused payment in the same
// calendar month. A payment is used at most once. An unmatched due dated
// before now's date is missed; everything else, including undated dues, is
// upcoming.
func Match(dues []Due, payments []Payment, now time.Time) []Reconciled {
	pool := make([]Payment, len(payments))
	copy(pool, payments)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Date.Before(pool[j].Date)
	})
	used := make([]bool, len(pool))
	today := dateOnly(now)

	out := make([]Reconciled, 0, len(dues))
	for _, d := range dues {
		rec := Reconciled{Due: d, Status: StatusUpcoming}
		if d.Date == nil {
			out = append(out, rec)
			continue
		}
		for i, p := range pool {
			if used[i] || !sameMonth(p.Date, *d.Date) {
				continue
			}
			used[i] = true
			rec.Status = StatusPaid
			rec.PaymentID = p.ID
			break
		}
		if rec.Status != StatusPaid && dateOnly(*d.Date).Before(today) {
			rec.Status = StatusMissed
		}
		out = append(out, rec)
	}
	return out
}

// DuesFromSchedule turns schedule entries into dues for the loan ref.
func DuesFromSchedule(s *Schedule, ref string) []Due {
	dues := make([]Due, 0, len(s.Entries))
	for _, e := range s.Entries {
		dues = append(dues, Due{Ref: ref, Index: e.Index, Date: e.Date, Amount: e.TotalPayment})
	}
	return dues
}

// DuesFromOccurrences drains an occurrence sequence into dues.
func DuesFromOccurrences(seq iter.Seq[Occurrence]) []Due {
	var dues []Due
	for occ := range seq {
		date := occ.Date
		dues = append(dues, Due{Ref: occ.RecurringID, Index: len(dues) + 1, Date: &date, Amount: occ.Amount})
	}
	return dues
}

// PaymentsFromLinks turns linked payment records into payment candidates,
// one per statement: a statement linked more than once is still one payment.
func PaymentsFromLinks(links []models.LinkedPayment) []Payment {
	payments := make([]Payment, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		if seen[l.StatementID] {
			continue
		}
		seen[l.StatementID] = true
		payments = append(payments, Payment{ID: l.StatementID, Date: l.PaidAt, Amount: l.Amount})
	}
	return payments
}
