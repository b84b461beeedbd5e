package calculator

import (
	"github.com/mmynk/finledger/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValidateStatementSplits checks that the splits of one statement never
// attribute more than the statement amount. Under-allocation is allowed: the
// unsplit remainder stays with the originating account.
func ValidateStatementSplits(stmt models.Statement, splits []models.Split) error {
	total := decimal.Zero
	for _, sp := range splits {
		if sp.Amount.IsNegative() {
			return invalid("split amount", "split %s of statement %s is negative (%s)", sp.ID, stmt.ID, sp.Amount)
		}
		total = total.Add(sp.Amount)
	}
	if total.GreaterThan(stmt.Amount.Abs()) {
		return invalid("splits", "statement %s splits total %s exceeds its amount %s", stmt.ID, total, stmt.Amount.Abs())
	}
	return nil
}

// LoanSplitTotal sums the percentages of a loan's splits after validating
// each one is within 0..100 and the total does not exceed 100.
func LoanSplitTotal(splits []models.LoanSplit) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, sp := range splits {
		if sp.Percentage.IsNegative() || sp.Percentage.GreaterThan(hundred) {
			return decimal.Zero, invalid("loan split percentage", "split %s has percentage %s outside 0..100", sp.ID, sp.Percentage)
		}
		total = total.Add(sp.Percentage)
	}
	if total.GreaterThan(hundred) {
		return decimal.Zero, invalid("loan splits", "percentages total %s%%, more than 100%%", total)
	}
	return total, nil
}

// MyShare returns the part of amount the user carries after the loan splits:
// amount × (100 − Σ percentages) / 100, rounded to cents.
func MyShare(amount decimal.Decimal, splits []models.LoanSplit) (decimal.Decimal, error) {
	allocated, err := LoanSplitTotal(splits)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(hundred.Sub(allocated)).Div(hundred).Round(2), nil
}
