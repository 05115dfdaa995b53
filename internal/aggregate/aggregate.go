// Package aggregate computes the expense summaries: monthly totals and a
// per-month category breakdown. Both functions are pure O(n) scans. A
// record whose date cannot be parsed is skipped, logged and reported in
// the result; it never aborts the aggregation.
package aggregate

import (
	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
)

// MonthTotal is the summed amount of one month.
type MonthTotal struct {
	Month models.MonthKey
	Total decimal.Decimal
}

// CategoryAmount is the summed amount of one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// MonthBreakdown is the total of one month and its per-category totals,
// categories ordered by first appearance within the month.
type MonthBreakdown struct {
	Month      models.MonthKey
	Total      decimal.Decimal
	Categories []CategoryAmount
}

// SkippedRecord identifies an expense left out of a summary.
type SkippedRecord struct {
	Index int // 1-based position in the input
	Err   *parsererror.ParseError
}

// MonthlyReport holds monthly totals in order of first-seen month.
type MonthlyReport struct {
	Months  []MonthTotal
	Skipped []SkippedRecord
}

// BreakdownReport holds per-month category breakdowns in order of
// first-seen month.
type BreakdownReport struct {
	Months  []MonthBreakdown
	Skipped []SkippedRecord
}

// MonthlyTotals groups expenses by calendar month and sums their amounts.
func MonthlyTotals(expenses []models.Expense, logger logging.Logger) MonthlyReport {
	report := MonthlyReport{Months: []MonthTotal{}}
	positions := make(map[models.MonthKey]int)

	for i, e := range expenses {
		key, ok := monthOf(i, e, logger, &report.Skipped)
		if !ok {
			continue
		}
		pos, seen := positions[key]
		if !seen {
			pos = len(report.Months)
			positions[key] = pos
			report.Months = append(report.Months, MonthTotal{Month: key, Total: decimal.Zero})
		}
		report.Months[pos].Total = report.Months[pos].Total.Add(e.Amount)
	}

	return report
}

// CategoryMonthlyBreakdown buckets expenses by month, keeping a running
// monthly total and a running total per category within the month.
func CategoryMonthlyBreakdown(expenses []models.Expense, logger logging.Logger) BreakdownReport {
	report := BreakdownReport{Months: []MonthBreakdown{}}
	monthPos := make(map[models.MonthKey]int)
	categoryPos := make(map[models.MonthKey]map[string]int)

	for i, e := range expenses {
		key, ok := monthOf(i, e, logger, &report.Skipped)
		if !ok {
			continue
		}
		mp, seen := monthPos[key]
		if !seen {
			mp = len(report.Months)
			monthPos[key] = mp
			categoryPos[key] = make(map[string]int)
			report.Months = append(report.Months, MonthBreakdown{Month: key, Total: decimal.Zero})
		}
		month := &report.Months[mp]
		month.Total = month.Total.Add(e.Amount)

		cp, seen := categoryPos[key][e.Category]
		if !seen {
			cp = len(month.Categories)
			categoryPos[key][e.Category] = cp
			month.Categories = append(month.Categories, CategoryAmount{Category: e.Category, Amount: decimal.Zero})
		}
		month.Categories[cp].Amount = month.Categories[cp].Amount.Add(e.Amount)
	}

	return report
}

func monthOf(i int, e models.Expense, logger logging.Logger, skipped *[]SkippedRecord) (models.MonthKey, bool) {
	date, err := dateutils.ParseExpenseDate(e.Date)
	if err != nil {
		pe := &parsererror.ParseError{Parser: "aggregate", Field: "date", Value: e.Date, Err: err}
		*skipped = append(*skipped, SkippedRecord{Index: i + 1, Err: pe})
		logger.Warn("Skipping expense with invalid date",
			logging.F(logging.FieldIndex, i+1),
			logging.F(logging.FieldDate, e.Date),
			logging.F(logging.FieldError, err.Error()))
		return models.MonthKey{}, false
	}
	return models.MonthKeyOf(date), true
}

// Lookup returns the total of a month.
func (r MonthlyReport) Lookup(key models.MonthKey) (decimal.Decimal, bool) {
	for _, m := range r.Months {
		if m.Month == key {
			return m.Total, true
		}
	}
	return decimal.Zero, false
}

// GrandTotal sums all months.
func (r MonthlyReport) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Months {
		total = total.Add(m.Total)
	}
	return total
}

// Lookup returns the breakdown of a month.
func (r BreakdownReport) Lookup(key models.MonthKey) (MonthBreakdown, bool) {
	for _, m := range r.Months {
		if m.Month == key {
			return m, true
		}
	}
	return MonthBreakdown{}, false
}

// Category returns the total of a category within the month.
func (m MonthBreakdown) Category(name string) (decimal.Decimal, bool) {
	for _, c := range m.Categories {
		if c.Category == name {
			return c.Amount, true
		}
	}
	return decimal.Zero, false
}

// GrandTotal sums all months.
func (r BreakdownReport) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, m := range r.Months {
		total = total.Add(m.Total)
	}
	return total
}
