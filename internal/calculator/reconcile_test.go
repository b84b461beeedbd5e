package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/finledger/internal/models"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		dues       []Due
		payments   []Payment
		now        time.Time
		wantStatus []Status
		wantPaidBy []string
	}{
		{
			name: "paid months and an upcoming one",
			dues: []Due{
				{Ref: "loan", Index: 1, Date: dayPtr(2024, time.January, 5), Amount: dec("100")},
				{Ref: "loan", Index: 2, Date: dayPtr(2024, time.February, 5), Amount: dec("100")},
				{Ref: "loan", Index: 3, Date: dayPtr(2024, time.March, 5), Amount: dec("100")},
			},
			payments: []Payment{
				{ID: "p-feb", Date: day(2024, time.February, 3), Amount: dec("100")},
				{ID: "p-jan", Date: day(2024, time.January, 7), Amount: dec("100")},
			},
			now:        day(2024, time.March, 1),
			wantStatus: []Status{StatusPaid, StatusPaid, StatusUpcoming},
			wantPaidBy: []string{"p-jan", "p-feb", ""},
		},
		{
			name: "unpaid past due is missed",
			dues: []Due{
				{Ref: "loan", Index: 1, Date: dayPtr(2024, time.January, 5), Amount: dec("100")},
			},
			now:        day(2024, time.February, 1),
			wantStatus: []Status{StatusMissed},
			wantPaidBy: []string{""},
		},
		{
			name: "due today is still upcoming",
			dues: []Due{
				{Ref: "loan", Index: 1, Date: dayPtr(2024, time.January, 5), Amount: dec("100")},
			},
			now:        time.Date(2024, time.January, 5, 23, 0, 0, 0, time.UTC),
			wantStatus: []Status{StatusUpcoming},
			wantPaidBy: []string{""},
		},
		{
			name: "a payment settles only one due",
			dues: []Due{
				{Ref: "loan-a", Index: 1, Date: dayPtr(2024, time.January, 5), Amount: dec("100")},
				{Ref: "loan-b", Index: 1, Date: dayPtr(2024, time.January, 20), Amount: dec("200")},
			},
			payments: []Payment{
				{ID: "p-1", Date: day(2024, time.January, 6), Amount: dec("100")},
			},
			now:        day(2024, time.February, 1),
			wantStatus: []Status{StatusPaid, StatusMissed},
			wantPaidBy: []string{"p-1", ""},
		},
		{
			name: "equal dates keep input order",
			dues: []Due{
				{Ref: "loan", Index: 1, Date: dayPtr(2024, time.January, 5), Amount: dec("100")},
				{Ref: "loan", Index: 2, Date: dayPtr(2024, time.January, 25), Amount: dec("100")},
			},
			payments: []Payment{
				{ID: "p-first", Date: day(2024, time.January, 10), Amount: dec("100")},
				{ID: "p-second", Date: day(2024, time.January, 10), Amount: dec("100")},
			},
			now:        day(2024, time.February, 1),
			wantStatus: []Status{StatusPaid, StatusPaid},
			wantPaidBy: []string{"p-first", "p-second"},
		},
		{
			name: "payment in another month does not match",
			dues: []Due{
				{Ref: "loan", Index: 1, Date: dayPtr(2024, time.January, 31), Amount: dec("100")},
			},
			payments: []Payment{
				{ID: "p-late", Date: day(2024, time.February, 1), Amount: dec("100")},
			},
			now:        day(2024, time.February, 10),
			wantStatus: []Status{StatusMissed},
			wantPaidBy: []string{""},
		},
		{
			name: "undated dues are upcoming",
			dues: []Due{
				{Ref: "loan", Index: 1, Amount: dec("100")},
			},
			payments: []Payment{
				{ID: "p-1", Date: day(2024, time.January, 6), Amount: dec("100")},
			},
			now:        day(2024, time.February, 1),
			wantStatus: []Status{StatusUpcoming},
			wantPaidBy: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.dues, tt.payments, tt.now)
			if len(got) != len(tt.dues) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.dues))
			}
			for i, r := range got {
				if r.Status != tt.wantStatus[i] {
					t.Errorf("due %d status = %s, want %s", i, r.Status, tt.wantStatus[i])
				}
				if r.PaymentID != tt.wantPaidBy[i] {
					t.Errorf("due %d payment = %q, want %q", i, r.PaymentID, tt.wantPaidBy[i])
				}
			}
		})
	}
}

func TestMatchLeavesPaymentsUntouched(t *testing.T) {
	payments := []Payment{
		{ID: "b", Date: day(2024, time.February, 1)},
		{ID: "a", Date: day(2024, time.January, 1)},
	}
	Match([]Due{{Date: dayPtr(2024, time.January, 2)}}, payments, day(2024, time.March, 1))
	if payments[0].ID != "b" {
		t.Error("Match reordered the caller's payments")
	}
}

func TestDuesFromSchedule(t *testing.T) {
	terms := standardTerms()
	terms.FirstDue = dayPtr(2024, time.January, 5)
	s, err := CalculateSchedule(terms)
	if err != nil {
		t.Fatalf("CalculateSchedule() unexpected error: %v", err)
	}

	dues := DuesFromSchedule(s, "loan-1")
	if len(dues) != 12 {
		t.Fatalf("got %d dues, want 12", len(dues))
	}
	if dues[0].Ref != "loan-1" || dues[0].Index != 1 {
		t.Errorf("first due = %+v", dues[0])
	}
	assertDecimal(t, "first due amount", dues[0].Amount, "10877.85")

	payments := PaymentsFromLinks([]models.LinkedPayment{
		{ID: "lp-1", ObligationKind: models.ObligationLoan, ObligationID: "loan-1", StatementID: "st-1", PaidAt: day(2024, time.January, 4), Amount: dec("10877.85")},
	})
	got := Match(dues, payments, day(2024, time.February, 10))
	if got[0].Status != StatusPaid || got[0].PaymentID != "st-1" {
		t.Errorf("installment 1 = %s/%q, want paid by st-1", got[0].Status, got[0].PaymentID)
	}
	if got[1].Status != StatusMissed {
		t.Errorf("installment 2 = %s, want missed", got[1].Status)
	}
	if got[2].Status != StatusUpcoming {
		t.Errorf("installment 3 = %s, want upcoming", got[2].Status)
	}
}

func TestDuesFromOccurrences(t *testing.T) {
	seq, err := Occurrences(monthlyRent(), day(2024, time.January, 1), day(2024, time.March, 31))
	if err != nil {
		t.Fatalf("Occurrences() unexpected error: %v", err)
	}
	dues := DuesFromOccurrences(seq)
	if len(dues) != 3 {
		t.Fatalf("got %d dues, want 3", len(dues))
	}
	for i, d := range dues {
		if d.Index != i+1 || d.Ref != "rec-rent" || d.Date == nil {
			t.Errorf("due %d = %+v", i, d)
		}
	}
}

func TestPaymentsFromLinks(t *testing.T) {
	links := []models.LinkedPayment{
		{ID: "lp-1", ObligationID: "rec-rent", StatementID: "st-1", PaidAt: day(2024, time.March, 2), Amount: dec("500")},
		{ID: "lp-2", ObligationID: "rec-rent", StatementID: "st-1", PaidAt: day(2024, time.March, 2), Amount: dec("500")},
		{ID: "lp-3", ObligationID: "rec-rent", StatementID: "st-2", PaidAt: day(2024, time.April, 2), Amount: dec("500")},
	}
	payments := PaymentsFromLinks(links)
	if len(payments) != 2 {
		t.Fatalf("got %d payments, want one per statement", len(payments))
	}

	weekly := []Due{
		{Ref: "rec-rent", Index: 1, Date: dayPtr(2024, time.March, 1)},
		{Ref: "rec-rent", Index: 2, Date: dayPtr(2024, time.March, 8)},
		{Ref: "rec-rent", Index: 3, Date: dayPtr(2024, time.March, 15)},
	}
	got := Match(weekly, payments, day(2024, time.March, 31))
	paid := 0
	for _, r := range got {
		if r.Status == StatusPaid {
			paid++
		}
	}
	if paid != 1 {
		t.Errorf("statement linked twice settled %d dues, want 1", paid)
	}
}
