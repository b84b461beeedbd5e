package models

import "time"

// Window restricts records to an inclusive time range.
// A nil bound is open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the window.
func (w *Window) Contains(t time.Time) bool {
	if w == nil {
		return true
	}
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}
