package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/expense-tracker/internal/aggregate"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleExpenses() []models.Expense {
	return []models.Expense{
		{Amount: decimal.NewFromInt(50), Category: "Food", Description: "Lunch", Date: "05-03-2024"},
		{Amount: decimal.NewFromInt(100), Category: "Food", Description: "Dinner", Date: "20-03-2024"},
		{Amount: decimal.NewFromInt(50), Category: "Transport", Description: "Bus", Date: "02-04-2024"},
	}
}

func newTestRenderer(width int) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer(&buf, Options{ChartWidth: width, Locale: language.English}, logging.NewMockLogger()), &buf
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		locale language.Tag
		amount string
		want   string
	}{
		{"english two decimals", language.English, "150", "150.00"},
		{"english grouping", language.English, "1234.5", "1,234.50"},
		{"rounds to cents", language.English, "0.005", "0.01"},
		{"german separators", language.German, "1234.5", "1.234,50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(&bytes.Buffer{}, Options{Locale: tt.locale}, logging.NewMockLogger())
			assert.Equal(t, tt.want, r.FormatAmount(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestListExpenses(t *testing.T) {
	r, buf := newTestRenderer(10)

	require.NoError(t, r.ListExpenses(nil))
	assert.Equal(t, "No expenses found\n", buf.String())

	buf.Reset()
	require.NoError(t, r.ListExpenses(sampleExpenses()))
	out := buf.String()
	assert.Contains(t, out, strings.Repeat("*", 70))
	assert.Contains(t, out, "1. Amount: 50.00, Category: Food, Description: Lunch, Date: 05-03-2024\n")
	assert.Contains(t, out, "3. Amount: 50.00, Category: Transport, Description: Bus, Date: 02-04-2024\n")
}

func TestListRules(t *testing.T) {
	r, buf := newTestRenderer(10)

	require.NoError(t, r.ListRules(nil))
	assert.Equal(t, "No recurring expenses found\n", buf.String())

	buf.Reset()
	rules := []models.RecurringRule{{
		Name: "Rent", Amount: decimal.NewFromInt(1000), Category: "Housing", Description: "Rent",
		Frequency: models.FrequencyMonthly, Day: models.MonthDay(1),
	}}
	require.NoError(t, r.ListRules(rules))
	assert.Contains(t, buf.String(),
		"1. Name: Rent, Amount: 1,000.00, Category: Housing, Description: Rent, Frequency: Monthly, Day: 1\n")
}

func TestSummaries(t *testing.T) {
	r, buf := newTestRenderer(10)
	expenses := append(sampleExpenses(), models.Expense{Amount: decimal.NewFromInt(9), Category: "Food", Date: "bogus"})

	require.NoError(t, r.MonthlySummary(aggregate.MonthlyTotals(expenses, logging.NewMockLogger())))
	out := buf.String()
	assert.Contains(t, out, "March 2024: 150.00\n")
	assert.Contains(t, out, "April 2024: 50.00\n")
	assert.Contains(t, out, "Skipped expense #4: invalid date 'bogus'\n")
	assert.Less(t, strings.Index(out, "March 2024"), strings.Index(out, "April 2024"))

	buf.Reset()
	require.NoError(t, r.CategorySummary(aggregate.CategoryMonthlyBreakdown(expenses, logging.NewMockLogger())))
	out = buf.String()
	assert.Contains(t, out, "March 2024 (Total: 150.00)\n  Food: 150.00\n")
	assert.Contains(t, out, "April 2024 (Total: 50.00)\n  Transport: 50.00\n")
	assert.Contains(t, out, "Skipped expense #4")
}

func TestSummaries_Empty(t *testing.T) {
	r, buf := newTestRenderer(10)

	require.NoError(t, r.MonthlySummary(aggregate.MonthlyReport{}))
	require.NoError(t, r.CategorySummary(aggregate.BreakdownReport{}))
	require.NoError(t, r.MonthlyChart(aggregate.MonthlyReport{}))
	require.NoError(t, r.CategoryChart(aggregate.BreakdownReport{}))
	assert.Equal(t, strings.Repeat("No expenses found\n", 4), buf.String())
}

func TestMonthlyChart(t *testing.T) {
	r, buf := newTestRenderer(10)

	require.NoError(t, r.MonthlyChart(aggregate.MonthlyTotals(sampleExpenses(), logging.NewMockLogger())))

	out := buf.String()
	assert.Contains(t, out, "March 2024 | "+strings.Repeat("█", 10)+" 150.00\n")
	assert.Contains(t, out, "April 2024 | "+strings.Repeat("█", 3)+" 50.00\n")
}

func TestCategoryChart(t *testing.T) {
	r, buf := newTestRenderer(10)
	expenses := []models.Expense{
		{Amount: decimal.NewFromInt(75), Category: "Food", Date: "01-05-2024"},
		{Amount: decimal.NewFromInt(25), Category: "Fun", Date: "02-05-2024"},
	}

	require.NoError(t, r.CategoryChart(aggregate.CategoryMonthlyBreakdown(expenses, logging.NewMockLogger())))

	out := buf.String()
	assert.Contains(t, out, "Category-wise Expenses for May 2024\n")
	assert.Contains(t, out, "Food | "+strings.Repeat("▒", 8)+" 75.0%\n")
	assert.Contains(t, out, "Fun  | "+strings.Repeat("▒", 3)+" 25.0%\n")
}

func TestShareAndScale(t *testing.T) {
	assert.Equal(t, "33.3", Share(decimal.NewFromInt(1), decimal.NewFromInt(3)).StringFixed(1))
	assert.True(t, Share(decimal.NewFromInt(5), decimal.Zero).IsZero())

	assert.Equal(t, 0, scale(decimal.Zero, decimal.NewFromInt(10), 40))
	assert.Equal(t, 1, scale(decimal.NewFromFloat(0.01), decimal.NewFromInt(1000), 40), "tiny values stay visible")
	assert.Equal(t, 40, scale(decimal.NewFromInt(10), decimal.NewFromInt(10), 40))
	assert.Equal(t, 0, scale(decimal.NewFromInt(-3), decimal.NewFromInt(10), 40))
}

func TestRenderer_WriteFailure(t *testing.T) {
	mock := logging.NewMockLogger()
	r := NewRenderer(failingWriter{}, Options{}, mock)

	err := r.ListExpenses(sampleExpenses())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.True(t, mock.HasEntry("ERROR", "Failed to write output"))
}

func TestWriteCSV(t *testing.T) {
	tests := []struct {
		name      string
		expenses  []models.Expense
		delimiter rune
		want      string
	}{
		{
			name:      "header only when empty",
			expenses:  nil,
			delimiter: ',',
			want:      "Amount,Category,Description,Date\n",
		},
		{
			name:      "rows in store order",
			expenses:  sampleExpenses()[:2],
			delimiter: ',',
			want:      "Amount,Category,Description,Date\n50.00,Food,Lunch,05-03-2024\n100.00,Food,Dinner,20-03-2024\n",
		},
		{
			name:      "custom delimiter",
			expenses:  sampleExpenses()[:1],
			delimiter: ';',
			want:      "Amount;Category;Description;Date\n50.00;Food;Lunch;05-03-2024\n",
		},
		{
			name: "quotes fields containing the delimiter",
			expenses: []models.Expense{
				{Amount: decimal.RequireFromString("7.5"), Category: "Food", Description: "Coffee, cake", Date: "01-01-2024"},
			},
			delimiter: ',',
			want:      "Amount,Category,Description,Date\n7.50,Food,\"Coffee, cake\",01-01-2024\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCSV(&buf, tt.expenses, tt.delimiter))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestExportCSV_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "2024", "expenses.csv")
	mock := logging.NewMockLogger()

	require.NoError(t, ExportCSV(path, sampleExpenses(), ',', mock))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Amount,Category,Description,Date", lines[0])
	assert.Equal(t, "50.00,Transport,Bus,02-04-2024", lines[3])
	assert.True(t, mock.HasEntry("INFO", "Successfully wrote expenses to CSV file"))
}

func TestExportCSV_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	err := ExportCSV(filepath.Join(blocker, "out.csv"), sampleExpenses(), ',', logging.NewMockLogger())
	assert.Error(t, err)
}
