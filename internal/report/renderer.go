// Package report renders expenses, rules and summaries as text and
// exports expenses to CSV. Nothing in this package mutates a store.
package report

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/expense-tracker/internal/aggregate"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// DefaultChartWidth is the length in runes of the longest bar.
	DefaultChartWidth = 40

	separatorWidth = 70
)

// Options configures a Renderer.
type Options struct {
	ChartWidth int
	Locale     language.Tag
}

// Renderer writes human readable output to an io.Writer.
type Renderer struct {
	out        io.Writer
	printer    *message.Printer
	chartWidth int
	logger     logging.Logger
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, opts Options, logger logging.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	width := opts.ChartWidth
	if width <= 0 {
		width = DefaultChartWidth
	}
	tag := opts.Locale
	if tag == language.Und {
		tag = language.English
	}
	return &Renderer{
		out:        out,
		printer:    message.NewPrinter(tag),
		chartWidth: width,
		logger:     logger,
	}
}

// FormatAmount renders an amount with two decimals and the locale's
// digit grouping, e.g. 1,234.50.
func (r *Renderer) FormatAmount(amount decimal.Decimal) string {
	return r.printer.Sprintf("%v", number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}

// ListExpenses prints every expense with its 1-based index.
func (r *Renderer) ListExpenses(expenses []models.Expense) error {
	var b strings.Builder
	if len(expenses) == 0 {
		b.WriteString("No expenses found\n")
		return r.flush(&b)
	}

	b.WriteString("\n" + strings.Repeat("*", separatorWidth) + "\n")
	for i, e := range expenses {
		fmt.Fprintf(&b, "%d. Amount: %s, Category: %s, Description: %s, Date: %s\n",
			i+1, r.FormatAmount(e.Amount), e.Category, e.Description, e.Date)
	}
	return r.flush(&b)
}

// ListRules prints every recurring rule with its 1-based index.
func (r *Renderer) ListRules(rules []models.RecurringRule) error {
	var b strings.Builder
	if len(rules) == 0 {
		b.WriteString("No recurring expenses found\n")
		return r.flush(&b)
	}

	b.WriteString("\n" + strings.Repeat("*", separatorWidth) + "\n")
	for i, rule := range rules {
		fmt.Fprintf(&b, "%d. Name: %s, Amount: %s, Category: %s, Description: %s, Frequency: %s, Day: %s\n",
			i+1, rule.Name, r.FormatAmount(rule.Amount), rule.Category, rule.Description, rule.Frequency, rule.Day)
	}
	return r.flush(&b)
}

// MonthlySummary prints the total of each month.
func (r *Renderer) MonthlySummary(report aggregate.MonthlyReport) error {
	var b strings.Builder
	if len(report.Months) == 0 {
		b.WriteString("No expenses found\n")
		r.skipped(&b, report.Skipped)
		return r.flush(&b)
	}

	b.WriteString("\nMonthly Summary\n")
	b.WriteString(strings.Repeat("-", separatorWidth) + "\n")
	for _, m := range report.Months {
		fmt.Fprintf(&b, "%s: %s\n", m.Month, r.FormatAmount(m.Total))
	}
	r.skipped(&b, report.Skipped)
	return r.flush(&b)
}

// CategorySummary prints each month's total followed by its categories.
func (r *Renderer) CategorySummary(report aggregate.BreakdownReport) error {
	var b strings.Builder
	if len(report.Months) == 0 {
		b.WriteString("No expenses found\n")
		r.skipped(&b, report.Skipped)
		return r.flush(&b)
	}

	b.WriteString("\nCategory Summary\n")
	b.WriteString(strings.Repeat("-", separatorWidth) + "\n")
	for _, m := range report.Months {
		fmt.Fprintf(&b, "%s (Total: %s)\n", m.Month, r.FormatAmount(m.Total))
		for _, c := range m.Categories {
			fmt.Fprintf(&b, "  %s: %s\n", c.Category, r.FormatAmount(c.Amount))
		}
	}
	r.skipped(&b, report.Skipped)
	return r.flush(&b)
}

func (r *Renderer) skipped(b *strings.Builder, skipped []aggregate.SkippedRecord) {
	for _, s := range skipped {
		fmt.Fprintf(b, "Skipped expense #%d: invalid date '%s'\n", s.Index, s.Err.Value)
	}
}

func (r *Renderer) flush(b *strings.Builder) error {
	if _, err := io.WriteString(r.out, b.String()); err != nil {
		r.logger.WithError(err).Error("Failed to write output")
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
