package calculator

import (
	"iter"
	"time"

	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

// Occurrence is one projected payment of a recurring definition.
type Occurrence struct {
	RecurringID string
	Name        string
	Category    string
	Date        time.Time
	Amount      decimal.Decimal
}

// ValidateRecurring checks a recurring definition.
func ValidateRecurring(def models.RecurringPayment) error {
	if def.Multiplier < 1 {
		return invalid("frequency multiplier", "recurring payment %s has multiplier %d, want at least 1", def.ID, def.Multiplier)
	}
	switch def.Frequency {
	case models.Daily, models.Weekly, models.Monthly, models.Quarterly, models.Yearly:
	default:
		return invalid("frequency", "recurring payment %s has unknown frequency %q", def.ID, def.Frequency)
	}
	if def.EndDate != nil && def.EndDate.Before(def.StartDate) {
		return invalid("end date", "recurring payment %s ends before it starts", def.ID)
	}
	return nil
}

// Occurrences returns the occurrences of def falling within
// [max(now, start), min(upto, end)], compared by calendar date.
//
// The sequence is lazy, finite and restartable: every range over it walks
// forward from the start date again. Step k is computed as start + k periods
// rather than by repeated addition, so month-end clamping never drifts
// (Jan 31 monthly gives Feb 29, Mar 31, Apr 30, ...).
func Occurrences(def models.RecurringPayment, now, upto time.Time) (iter.Seq[Occurrence], error) {
	if err := ValidateRecurring(def); err != nil {
		return nil, err
	}

	start := dateOnly(def.StartDate)
	lower := dateOnly(now)
	if start.After(lower) {
		lower = start
	}
	upper := dateOnly(upto)
	if def.EndDate != nil && dateOnly(*def.EndDate).Before(upper) {
		upper = dateOnly(*def.EndDate)
	}

	return func(yield func(Occurrence) bool) {
		if !def.Active(now) {
			return
		}
		for k := 0; ; k++ {
			date := step(start, def.Frequency, k*def.Multiplier)
			if date.After(upper) {
				return
			}
			if date.Before(lower) {
				continue
			}
			occ := Occurrence{
				RecurringID: def.ID,
				Name:        def.Name,
				Category:    def.Category,
				Date:        date,
				Amount:      def.Amount,
			}
			if !yield(occ) {
				return
			}
		}
	}, nil
}

// GroupByMonth collects a sequence into month buckets keyed "2006-01".
func GroupByMonth(seq iter.Seq[Occurrence]) map[string][]Occurrence {
	months := make(map[string][]Occurrence)
	for occ := range seq {
		key := MonthKey(occ.Date)
		months[key] = append(months[key], occ)
	}
	return months
}

// step advances start by n frequency units.
func step(start time.Time, freq models.Frequency, n int) time.Time {
	switch freq {
	case models.Daily:
		return start.AddDate(0, 0, n)
	case models.Weekly:
		return start.AddDate(0, 0, 7*n)
	case models.Quarterly:
		return addMonths(start, 3*n)
	case models.Yearly:
		return addMonths(start, 12*n)
	default:
		return addMonths(start, n)
	}
}
