// Package export renders loan schedules and obligation projections as XLSX
// workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mmynk/finledger/internal/calculator"
)

const (
	dateLayout  = "2006-01-02"
	moneyFormat = "#,##0.00"
)

// sheetWriter appends rows to one sheet and tracks the next free row.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	money int
	bold  int
}

func newWorkbook() (*excelize.File, int, int, error) {
	f := excelize.NewFile()
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr(moneyFormat)})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to create money style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return f, money, bold, nil
}

// sheet names the workbook's first sheet, or adds a new one.
func sheet(f *excelize.File, name string, first bool, money, bold int) (*sheetWriter, error) {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	return &sheetWriter{f: f, sheet: name, row: 1, money: money, bold: bold}, nil
}

func (w *sheetWriter) header(cols ...string) error {
	values := make([]any, len(cols))
	for i, c := range cols {
		values[i] = c
	}
	if err := w.append(values...); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), w.row-1)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, fmt.Sprintf("A%d", w.row-1), last, w.bold)
}

// append writes one row. Decimals become numeric cells with the money style.
func (w *sheetWriter) append(values ...any) error {
	row := make([]any, len(values))
	for i, v := range values {
		if d, ok := v.(decimal.Decimal); ok {
			row[i] = d.InexactFloat64()
			continue
		}
		row[i] = v
	}
	start := fmt.Sprintf("A%d", w.row)
	if err := w.f.SetSheetRow(w.sheet, start, &row); err != nil {
		return err
	}
	for i, v := range values {
		if _, ok := v.(decimal.Decimal); !ok {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(w.sheet, cell, cell, w.money); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func (w *sheetWriter) skip() { w.row++ }

// WriteSchedule renders one loan's schedule. reconciled may be nil; when
// given it is parallel to the schedule entries and fills the status column.
func WriteSchedule(out io.Writer, title string, s *calculator.Schedule, reconciled []calculator.Reconciled) error {
	f, money, bold, err := newWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := sheet(f, "Schedule", true, money, bold)
	if err != nil {
		return fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	if err := w.header("#", "Due date", "Installment", "Interest", "Principal", "GST", "Fee", "Total payment", "Balance", "Status"); err != nil {
		return fmt.Errorf("failed to write schedule header: %w", err)
	}
	for i, e := range s.Entries {
		due := ""
		if e.Date != nil {
			due = e.Date.Format(dateLayout)
		}
		status := ""
		if i < len(reconciled) {
			status = string(reconciled[i].Status)
		}
		if err := w.append(e.Index, due, e.Installment, e.Interest, e.Principal, e.GST, e.Fee, e.TotalPayment, e.Balance, status); err != nil {
			return fmt.Errorf("failed to write installment %d: %w", e.Index, err)
		}
	}

	w.skip()
	summary := []struct {
		label string
		value decimal.Decimal
	}{
		{"Principal", s.Principal},
		{"Installment", s.Installment},
		{"Total interest", s.TotalInterest},
		{"Total GST", s.TotalGST},
		{"Processing fee", s.ProcessingFee},
		{"Fee GST", s.FeeGST},
		{"Total payable", s.TotalPayable},
	}
	if err := w.append(title); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	for _, row := range summary {
		if err := w.append(row.label, row.value); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteObligations renders an obligation report on two sheets: the
// outstanding balance per credit instrument and loan, and the month by month
// projection with one row per expected payment.
func WriteObligations(out io.Writer, r *calculator.ObligationReport) error {
	f, money, bold, err := newWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()

	inst, err := sheet(f, "Instruments", true, money, bold)
	if err != nil {
		return fmt.Errorf("failed to create instruments sheet: %w", err)
	}
	if err := inst.header("Instrument", "Loan", "Installment", "Paid", "Remaining", "Outstanding", "My share %", "Limit", "Available"); err != nil {
		return fmt.Errorf("failed to write instruments header: %w", err)
	}
	for _, in := range r.Instruments {
		limit, available := any(""), any("")
		if in.Limit != nil {
			limit = *in.Limit
		}
		if in.Available != nil {
			available = *in.Available
		}
		if err := inst.append(in.Name, "", "", "", "", in.Outstanding, "", limit, available); err != nil {
			return fmt.Errorf("failed to write instrument %s: %w", in.InstrumentID, err)
		}
		for _, lo := range in.Loans {
			if err := inst.append("", lo.Name, lo.Installment, lo.PaidInstallments, lo.RemainingInstallments, lo.Outstanding, lo.MySharePercent); err != nil {
				return fmt.Errorf("failed to write loan %s: %w", lo.LoanID, err)
			}
		}
	}
	if err := inst.append("Total", "", "", "", "", r.TotalOutstanding); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	proj, err := sheet(f, "Projection", false, money, bold)
	if err != nil {
		return fmt.Errorf("failed to create projection sheet: %w", err)
	}
	if err := proj.header("Month", "Date", "Kind", "Name", "Installment #", "Amount", "My share"); err != nil {
		return fmt.Errorf("failed to write projection header: %w", err)
	}
	months := append([]calculator.MonthObligation{r.CurrentMonth}, r.Upcoming...)
	for _, m := range months {
		for _, it := range m.Items {
			index := any("")
			if it.Index > 0 {
				index = it.Index
			}
			if err := proj.append(m.Month, it.Date.Format(dateLayout), string(it.Kind), it.Name, index, it.Amount, it.MyShare); err != nil {
				return fmt.Errorf("failed to write %s item: %w", m.Month, err)
			}
		}
		if err := proj.append(m.Month, "", "total", "", "", m.Total, m.MyShare); err != nil {
			return fmt.Errorf("failed to write %s total: %w", m.Month, err)
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
