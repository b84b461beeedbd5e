package calculator

import (
	"errors"
	"testing"

	"github.com/mmynk/finledger/internal/models"
)

func TestValidateStatementSplits(t *testing.T) {
	stmt := models.Statement{ID: "st-1", Amount: dec("100")}

	tests := []struct {
		name    string
		stmt    models.Statement
		splits  []models.Split
		wantErr bool
	}{
		{
			name:   "under-allocated",
			stmt:   stmt,
			splits: []models.Split{{ID: "a", Amount: dec("40")}, {ID: "b", Amount: dec("30")}},
		},
		{
			name:   "fully allocated",
			stmt:   stmt,
			splits: []models.Split{{ID: "a", Amount: dec("60")}, {ID: "b", Amount: dec("40")}},
		},
		{
			name:   "negative amount compares by magnitude",
			stmt:   models.Statement{ID: "st-2", Amount: dec("-100")},
			splits: []models.Split{{ID: "a", Amount: dec("100")}},
		},
		{
			name:    "over-allocated",
			stmt:    stmt,
			splits:  []models.Split{{ID: "a", Amount: dec("60")}, {ID: "b", Amount: dec("40.01")}},
			wantErr: true,
		},
		{
			name:    "negative split",
			stmt:    stmt,
			splits:  []models.Split{{ID: "a", Amount: dec("-1")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatementSplits(tt.stmt, tt.splits)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStatementSplits() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v is not a validation fault", err)
			}
		})
	}
}

func TestMyShare(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		splits  []models.LoanSplit
		want    string
		wantErr bool
	}{
		{name: "no splits", amount: "1000", want: "1000"},
		{
			name:   "half shared",
			amount: "10843.62",
			splits: []models.LoanSplit{{ID: "s1", Percentage: dec("50")}},
			want:   "5421.81",
		},
		{
			name:   "two friends",
			amount: "999",
			splits: []models.LoanSplit{{ID: "s1", Percentage: dec("33.33")}, {ID: "s2", Percentage: dec("33.33")}},
			want:   "333.07",
		},
		{
			name:   "fully shared",
			amount: "500",
			splits: []models.LoanSplit{{ID: "s1", Percentage: dec("100")}},
			want:   "0",
		},
		{
			name:    "over 100 percent",
			amount:  "500",
			splits:  []models.LoanSplit{{ID: "s1", Percentage: dec("60")}, {ID: "s2", Percentage: dec("50")}},
			wantErr: true,
		},
		{
			name:    "negative percentage",
			amount:  "500",
			splits:  []models.LoanSplit{{ID: "s1", Percentage: dec("-5")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MyShare(dec(tt.amount), tt.splits)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("MyShare() error = %v, want validation fault", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("MyShare() unexpected error: %v", err)
			}
			assertDecimal(t, "share", got, tt.want)
		})
	}
}
