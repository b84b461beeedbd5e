package calculator

import "time"

// monthKeyLayout formats the month keys used for grouping ("2024-03").
const monthKeyLayout = "2006-01"

// MonthKey returns the calendar month key of t.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// dateOnly truncates t to its calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// addMonths adds n calendar months to t, clamping the day to the last day of
// the target month instead of overflowing (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
