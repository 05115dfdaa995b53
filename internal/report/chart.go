package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"fjacquet/expense-tracker/internal/aggregate"

	"github.com/shopspring/decimal"
)

const (
	barRune   = '█'
	shareRune = '▒'
)

var hundred = decimal.NewFromInt(100)

// MonthlyChart draws one horizontal bar per month, the largest month
// spanning the full chart width.
func (r *Renderer) MonthlyChart(report aggregate.MonthlyReport) error {
	var b strings.Builder
	if len(report.Months) == 0 {
		b.WriteString("No expenses found\n")
		r.skipped(&b, report.Skipped)
		return r.flush(&b)
	}

	peak := decimal.Zero
	labelWidth := 0
	for _, m := range report.Months {
		peak = decimal.Max(peak, m.Total)
		labelWidth = max(labelWidth, utf8.RuneCountInString(m.Month.String()))
	}

	b.WriteString("\nMonthly Expenses\n")
	for _, m := range report.Months {
		fmt.Fprintf(&b, "%-*s | %s %s\n",
			labelWidth, m.Month, bar(barRune, scale(m.Total, peak, r.chartWidth)), r.FormatAmount(m.Total))
	}
	r.skipped(&b, report.Skipped)
	return r.flush(&b)
}

// CategoryChart draws, for every month, the share of each category as a
// bar with its percentage of the monthly total.
func (r *Renderer) CategoryChart(report aggregate.BreakdownReport) error {
	var b strings.Builder
	if len(report.Months) == 0 {
		b.WriteString("No expenses found\n")
		r.skipped(&b, report.Skipped)
		return r.flush(&b)
	}

	for _, m := range report.Months {
		fmt.Fprintf(&b, "\nCategory-wise Expenses for %s\n", m.Month)
		labelWidth := 0
		for _, c := range m.Categories {
			labelWidth = max(labelWidth, utf8.RuneCountInString(c.Category))
		}
		for _, c := range m.Categories {
			pct := Share(c.Amount, m.Total)
			fmt.Fprintf(&b, "%-*s | %s %s%%\n",
				labelWidth, c.Category, bar(shareRune, scale(c.Amount, m.Total, r.chartWidth)), pct.StringFixed(1))
		}
	}
	r.skipped(&b, report.Skipped)
	return r.flush(&b)
}

// Share returns part as a percentage of total. A zero or negative total
// yields zero.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total)
}

// scale maps value onto 0..width relative to peak. Positive values always
// get at least one rune so they stay visible.
func scale(value, peak decimal.Decimal, width int) int {
	if !value.IsPositive() || !peak.IsPositive() {
		return 0
	}
	n := int(value.Mul(decimal.NewFromInt(int64(width))).Div(peak).Round(0).IntPart())
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}
	return n
}

func bar(r rune, n int) string {
	return strings.Repeat(string(r), n)
}
