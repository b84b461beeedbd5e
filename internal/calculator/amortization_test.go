package calculator

import (
	"errors"
	"testing"
	"time"

	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

func standardTerms() LoanTerms {
	return LoanTerms{
		Mode:              ByPrincipal{Principal: dec("120000")},
		AnnualRate:        dec("12"),
		TenureMonths:      12,
		GSTRateOnInterest: dec("18"),
	}
}

func TestCalculateSchedule(t *testing.T) {
	tests := []struct {
		name         string
		terms        func() LoanTerms
		wantErr      bool
		validateFunc func(t *testing.T, s *Schedule)
	}{
		{
			name:  "principal mode at 12% over 12 months",
			terms: standardTerms,
			validateFunc: func(t *testing.T, s *Schedule) {
				// Exact formula result; worked examples quoting 10661.90 round it.
				assertDecimal(t, "installment", s.Installment, "10661.85")
				assertDecimal(t, "monthly rate", s.MonthlyRate, "0.01")

				first := s.Entries[0]
				assertDecimal(t, "entry 1 interest", first.Interest, "1200")
				assertDecimal(t, "entry 1 principal", first.Principal, "9461.85")
				assertDecimal(t, "entry 1 balance", first.Balance, "110538.15")
				assertDecimal(t, "entry 1 gst", first.GST, "216")
				assertDecimal(t, "entry 1 total", first.TotalPayment, "10877.85")

				last := s.Entries[len(s.Entries)-1]
				if !last.Balance.IsZero() {
					t.Errorf("last balance = %s, want 0", last.Balance)
				}
				assertDecimal(t, "entry 12 installment", last.Installment, "10661.91")
			},
		},
		{
			name: "processing fee is charged with the first installment",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.ProcessingFee = dec("1000")
				terms.GSTRateOnFee = dec("18")
				return terms
			},
			validateFunc: func(t *testing.T, s *Schedule) {
				assertDecimal(t, "fee gst", s.FeeGST, "180")
				assertDecimal(t, "entry 1 fee", s.Entries[0].Fee, "1180")
				assertDecimal(t, "entry 1 total", s.Entries[0].TotalPayment, "12057.85")
				if !s.Entries[1].Fee.IsZero() {
					t.Errorf("entry 2 fee = %s, want 0", s.Entries[1].Fee)
				}
			},
		},
		{
			name: "zero rate divides the principal evenly",
			terms: func() LoanTerms {
				return LoanTerms{Mode: ByPrincipal{Principal: dec("1200")}, TenureMonths: 12}
			},
			validateFunc: func(t *testing.T, s *Schedule) {
				assertDecimal(t, "installment", s.Installment, "100")
				assertDecimal(t, "total interest", s.TotalInterest, "0")
				assertDecimal(t, "total payable", s.TotalPayable, "1200")
			},
		},
		{
			name: "zero rate installment mode multiplies out",
			terms: func() LoanTerms {
				return LoanTerms{Mode: ByInstallment{Installment: dec("250")}, TenureMonths: 4}
			},
			validateFunc: func(t *testing.T, s *Schedule) {
				assertDecimal(t, "principal", s.Principal, "1000")
			},
		},
		{
			name: "installment mode recovers the principal",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.Mode = ByInstallment{Installment: dec("10661.85")}
				return terms
			},
			validateFunc: func(t *testing.T, s *Schedule) {
				if diff := s.Principal.Sub(dec("120000")).Abs(); diff.GreaterThan(dec("0.10")) {
					t.Errorf("principal = %s, want within 0.10 of 120000", s.Principal)
				}
				if !s.Entries[len(s.Entries)-1].Balance.IsZero() {
					t.Errorf("last balance = %s, want 0", s.Entries[len(s.Entries)-1].Balance)
				}
			},
		},
		{
			name: "total payable mode divides into installments",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.Mode = ByTotalPayable{TotalPayable: dec("127942.20")}
				return terms
			},
			validateFunc: func(t *testing.T, s *Schedule) {
				assertDecimal(t, "installment", s.Installment, "10661.85")
			},
		},
		{
			name: "first due date dates every entry with month-end clamping",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.FirstDue = dayPtr(2024, time.January, 31)
				return terms
			},
			validateFunc: func(t *testing.T, s *Schedule) {
				want := []time.Time{day(2024, time.January, 31), day(2024, time.February, 29), day(2024, time.March, 31), day(2024, time.April, 30)}
				for i, w := range want {
					if got := s.Entries[i].Date; got == nil || !got.Equal(w) {
						t.Errorf("entry %d date = %v, want %s", i+1, got, w.Format(time.DateOnly))
					}
				}
			},
		},
		{
			name: "undated without first due",
			terms: standardTerms,
			validateFunc: func(t *testing.T, s *Schedule) {
				for _, e := range s.Entries {
					if e.Date != nil {
						t.Fatalf("entry %d dated %v, want nil", e.Index, e.Date)
					}
				}
			},
		},
		{
			name: "zero tenure",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.TenureMonths = 0
				return terms
			},
			wantErr: true,
		},
		{
			name: "tenure above limit",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.TenureMonths = 601
				return terms
			},
			wantErr: true,
		},
		{
			name: "negative rate",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.AnnualRate = dec("-1")
				return terms
			},
			wantErr: true,
		},
		{
			name: "non-positive principal",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.Mode = ByPrincipal{Principal: decimal.Zero}
				return terms
			},
			wantErr: true,
		},
		{
			name: "missing mode",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.Mode = nil
				return terms
			},
			wantErr: true,
		},
		{
			name: "pointer mode is unsupported",
			terms: func() LoanTerms {
				terms := standardTerms()
				terms.Mode = &ByPrincipal{Principal: dec("120000")}
				return terms
			},
			wantErr: true,
		},
		{
			name: "nil pointer mode does not panic",
			terms: func() LoanTerms {
				terms := standardTerms()
				var mode *ByPrincipal
				terms.Mode = mode
				return terms
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CalculateSchedule(tt.terms())
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("CalculateSchedule() error = %v, want validation fault", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CalculateSchedule() unexpected error: %v", err)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, s)
			}
		})
	}
}

func TestScheduleInvariants(t *testing.T) {
	for _, tenure := range []int{1, 6, 12, 36, 240} {
		terms := standardTerms()
		terms.TenureMonths = tenure

		s, err := CalculateSchedule(terms)
		if err != nil {
			t.Fatalf("tenure %d: unexpected error: %v", tenure, err)
		}
		if len(s.Entries) != tenure {
			t.Fatalf("tenure %d: got %d entries", tenure, len(s.Entries))
		}

		principal, interest, gst, total := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
		prev := s.Principal
		for _, e := range s.Entries {
			if e.Balance.GreaterThan(prev) {
				t.Errorf("tenure %d: balance rose at entry %d", tenure, e.Index)
			}
			if !e.Installment.Equal(e.Principal.Add(e.Interest)) {
				t.Errorf("tenure %d: entry %d installment %s != principal + interest", tenure, e.Index, e.Installment)
			}
			prev = e.Balance
			principal = principal.Add(e.Principal)
			interest = interest.Add(e.Interest)
			gst = gst.Add(e.GST)
			total = total.Add(e.TotalPayment)
		}

		if !prev.IsZero() {
			t.Errorf("tenure %d: final balance = %s, want 0", tenure, prev)
		}
		if !principal.Equal(s.Principal) {
			t.Errorf("tenure %d: Σ principal = %s, want %s", tenure, principal, s.Principal)
		}
		if !interest.Equal(s.TotalInterest) || !gst.Equal(s.TotalGST) || !total.Equal(s.TotalPayable) {
			t.Errorf("tenure %d: totals do not match entries", tenure)
		}
	}
}

func TestScheduleOutstanding(t *testing.T) {
	s, err := CalculateSchedule(standardTerms())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertDecimal(t, "outstanding after 2", s.Outstanding(2), "107633.18")
	if got := s.Outstanding(12); !got.IsZero() {
		t.Errorf("outstanding after all = %s, want 0", got)
	}
	if !s.Outstanding(0).Equal(s.TotalPayable) {
		t.Errorf("outstanding before any = %s, want total payable %s", s.Outstanding(0), s.TotalPayable)
	}
}

func TestTermsFromLoan(t *testing.T) {
	tests := []struct {
		name     string
		loan     models.Loan
		wantMode Mode
		wantErr  bool
	}{
		{
			name:     "principal",
			loan:     models.Loan{ID: "l1", CalculationMode: models.ModePrincipal, Principal: decPtr("5000"), TenureMonths: 6},
			wantMode: ByPrincipal{Principal: dec("5000")},
		},
		{
			name:     "installment",
			loan:     models.Loan{ID: "l2", CalculationMode: models.ModeInstallment, Installment: decPtr("900"), TenureMonths: 6},
			wantMode: ByInstallment{Installment: dec("900")},
		},
		{
			name:     "total payable",
			loan:     models.Loan{ID: "l3", CalculationMode: models.ModeTotalPayable, TotalPayable: decPtr("5400"), TenureMonths: 6},
			wantMode: ByTotalPayable{TotalPayable: dec("5400")},
		},
		{
			name:    "mode contradicts populated amount",
			loan:    models.Loan{ID: "l4", CalculationMode: models.ModePrincipal, Installment: decPtr("900")},
			wantErr: true,
		},
		{
			name:    "two amounts populated",
			loan:    models.Loan{ID: "l5", CalculationMode: models.ModePrincipal, Principal: decPtr("5000"), Installment: decPtr("900")},
			wantErr: true,
		},
		{
			name:    "no amount populated",
			loan:    models.Loan{ID: "l6", CalculationMode: models.ModePrincipal},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := TermsFromLoan(tt.loan)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("TermsFromLoan() error = %v, want validation fault", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TermsFromLoan() unexpected error: %v", err)
			}
			if terms.Mode.calculationMode() != tt.wantMode.calculationMode() {
				t.Errorf("mode = %T, want %T", terms.Mode, tt.wantMode)
			}
			if terms.TenureMonths != tt.loan.TenureMonths {
				t.Errorf("tenure = %d, want %d", terms.TenureMonths, tt.loan.TenureMonths)
			}
		})
	}
}
