package export

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/finledger/internal/calculator"
	"github.com/mmynk/finledger/internal/middleware"
	"github.com/mmynk/finledger/internal/models"
	"github.com/mmynk/finledger/internal/storage/sqlstore"
)

const testUser = "alice"

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func standardSchedule(t *testing.T) *calculator.Schedule {
	t.Helper()
	first := day(2024, 1, 5)
	s, err := calculator.CalculateSchedule(calculator.LoanTerms{
		Mode:              calculator.ByPrincipal{Principal: dec("120000")},
		AnnualRate:        dec("12"),
		TenureMonths:      12,
		GSTRateOnInterest: dec("18"),
		FirstDue:          &first,
	})
	if err != nil {
		t.Fatalf("CalculateSchedule() error: %v", err)
	}
	return s
}

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows(%s) error: %v", sheet, err)
	}
	return rows
}

func TestWriteSchedule(t *testing.T) {
	s := standardSchedule(t)
	reconciled := calculator.Match(calculator.DuesFromSchedule(s, "loan-1"), []calculator.Payment{
		{ID: "stmt-1", Date: day(2024, 1, 6), Amount: dec("10877.85")},
	}, day(2024, 3, 10))

	var buf bytes.Buffer
	if err := WriteSchedule(&buf, "Laptop", s, reconciled); err != nil {
		t.Fatalf("WriteSchedule() error: %v", err)
	}

	rows := readRows(t, buf.Bytes(), "Schedule")
	if len(rows) < 13 {
		t.Fatalf("Expected at least 13 rows, got %d", len(rows))
	}
	if rows[0][0] != "#" || rows[0][9] != "Status" {
		t.Errorf("header = %v", rows[0])
	}

	tests := []struct {
		name string
		row  int
		col  int
		want string
	}{
		{"first index", 1, 0, "1"},
		{"first date", 1, 1, "2024-01-05"},
		{"first installment", 1, 2, "10661.85"},
		{"first interest", 1, 3, "1200"},
		{"first total", 1, 7, "10877.85"},
		{"first status", 1, 9, "paid"},
		{"second status", 2, 9, "missed"},
		{"last balance", 12, 8, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rows[tt.row][tt.col]; got != tt.want {
				t.Errorf("cell (%d,%d) = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestWriteObligations(t *testing.T) {
	limit := dec("200000")
	report, err := calculator.AggregateObligations(calculator.ObligationInput{
		Instruments: []models.Account{{ID: "card", Name: "Card", CreditLimit: &limit}},
		Recurring: []models.RecurringPayment{{
			ID: "rent", Name: "Rent", Amount: dec("500"), Frequency: models.Monthly, Multiplier: 1,
			StartDate: day(2024, 1, 20),
		}},
		Now:  day(2024, 3, 10),
		Upto: day(2024, 4, 30),
	})
	if err != nil {
		t.Fatalf("AggregateObligations() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteObligations(&buf, report); err != nil {
		t.Fatalf("WriteObligations() error: %v", err)
	}

	inst := readRows(t, buf.Bytes(), "Instruments")
	if len(inst) != 3 {
		t.Fatalf("Expected header, one instrument and total, got %d rows", len(inst))
	}
	if inst[1][0] != "Card" || inst[1][8] != "200000" {
		t.Errorf("instrument row = %v", inst[1])
	}

	proj := readRows(t, buf.Bytes(), "Projection")
	// header, March item + total, April item + total
	if len(proj) != 5 {
		t.Fatalf("Expected 5 projection rows, got %d: %v", len(proj), proj)
	}
	if proj[1][0] != "2024-03" || proj[1][1] != "2024-03-20" || proj[1][3] != "Rent" {
		t.Errorf("first item = %v", proj[1])
	}
	if proj[2][2] != "total" || proj[2][5] != "500" {
		t.Errorf("March total = %v", proj[2])
	}
}

func TestHandler(t *testing.T) {
	store, err := sqlstore.New(sqlstore.SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	limit := dec("200000")
	card := &models.Account{UserID: testUser, Name: "Card", CreditLimit: &limit}
	if err := store.CreateAccount(ctx, card); err != nil {
		t.Fatalf("CreateAccount() error: %v", err)
	}
	principal := dec("120000")
	first := day(2024, 1, 5)
	loan := &models.Loan{
		UserID:             testUser,
		Name:               "Laptop",
		CreditInstrumentID: card.ID,
		CalculationMode:    models.ModePrincipal,
		Principal:          &principal,
		AnnualRate:         dec("12"),
		TenureMonths:       12,
		GSTRateOnInterest:  dec("18"),
		FirstDue:           &first,
	}
	if err := store.CreateLoan(ctx, loan, nil); err != nil {
		t.Fatalf("CreateLoan() error: %v", err)
	}

	h := NewHandler(store)
	h.now = func() time.Time { return day(2024, 3, 10) }
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUserID(req.Context(), testUser)))
		})
	})
	r.Route("/export", h.Routes)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"schedule", "/export/loans/" + loan.ID + "/schedule.xlsx", http.StatusOK},
		{"unknown loan", "/export/loans/missing/schedule.xlsx", http.StatusNotFound},
		{"obligations", "/export/obligations.xlsx?upto=2024-06-30", http.StatusOK},
		{"bad upto", "/export/obligations.xlsx?upto=soon", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
				t.Errorf("content type = %s", ct)
			}
			if _, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes())); err != nil {
				t.Errorf("response is not a workbook: %v", err)
			}
		})
	}
}
