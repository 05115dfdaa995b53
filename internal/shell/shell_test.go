package shell

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/recurring"
	"fjacquet/expense-tracker/internal/report"
	"fjacquet/expense-tracker/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// 1 March 2024 is a Friday.
var fixedNow = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

type harness struct {
	shell          *Shell
	out            *bytes.Buffer
	expenses       *store.ExpenseStore
	rules          *store.RuleStore
	expenseBackend *store.MemoryBackend
	ruleBackend    *store.MemoryBackend
	logger         *logging.MockLogger
}

func newHarness(t *testing.T, input, expensesJSON, rulesJSON string, csvPath string) *harness {
	t.Helper()
	h := &harness{out: &bytes.Buffer{}, logger: logging.NewMockLogger()}

	h.expenseBackend = store.NewMemoryBackend(nil)
	if expensesJSON != "" {
		h.expenseBackend = store.NewMemoryBackend([]byte(expensesJSON))
	}
	h.ruleBackend = store.NewMemoryBackend(nil)
	if rulesJSON != "" {
		h.ruleBackend = store.NewMemoryBackend([]byte(rulesJSON))
	}

	var err error
	h.expenses, err = store.LoadExpenseStore(h.expenseBackend, store.JSONCodec{}, h.logger)
	require.NoError(t, err)
	h.rules, err = store.LoadRuleStore(h.ruleBackend, store.JSONCodec{}, h.logger)
	require.NoError(t, err)

	renderer := report.NewRenderer(h.out, report.Options{ChartWidth: 10, Locale: language.English}, h.logger)
	processor := recurring.NewProcessor(recurring.Options{}, h.logger)
	h.shell = New(strings.NewReader(input), h.out, h.expenses, h.rules, processor, renderer,
		Options{CSVPath: csvPath, Now: func() time.Time { return fixedNow }}, h.logger)
	return h
}

const twoExpenses = `[
  {"amount": 50, "category": "Food", "description": "Lunch", "date": "05-03-2024"},
  {"amount": 100, "category": "Food", "description": "Dinner", "date": "20-03-2024"}
]`

func TestRun_ExitShowsMenu(t *testing.T) {
	h := newHarness(t, "11\n", "", "", "")

	require.NoError(t, h.shell.Run())

	out := h.out.String()
	assert.Contains(t, out, "PERSONAL EXPENSE TRACKER")
	assert.Contains(t, out, "Choose an option from below")
	for _, item := range mainMenu {
		assert.Contains(t, out, item)
	}
	assert.Contains(t, out, "1. List all Expenses\n")
	assert.Contains(t, out, "11. Exit\n")
	assert.Contains(t, out, "Enter your choice: ")
}

func TestRun_EOFExitsCleanly(t *testing.T) {
	h := newHarness(t, "1\n", "", "", "")

	require.NoError(t, h.shell.Run())
	assert.Contains(t, h.out.String(), "No expenses found")
}

func TestRun_InvalidChoiceRedisplaysMenu(t *testing.T) {
	h := newHarness(t, "abc\n0\n12\n11\n", "", "", "")

	require.NoError(t, h.shell.Run())

	out := h.out.String()
	assert.Equal(t, 3, strings.Count(out, "Invalid Choice"))
	assert.Equal(t, 4, strings.Count(out, "PERSONAL EXPENSE TRACKER"))
}

func TestRun_AddAndList(t *testing.T) {
	h := newHarness(t, "2\n50\nFood\nLunch\n5-3-2024\n1\n11\n", "", "", "")

	require.NoError(t, h.shell.Run())

	require.Equal(t, 1, h.expenses.Len())
	assert.Equal(t, 1, h.expenseBackend.Writes)
	out := h.out.String()
	assert.Contains(t, out, "Data saved successfully!")
	assert.Contains(t, out, "1. Amount: 50.00, Category: Food, Description: Lunch, Date: 05-03-2024")
}

func TestRun_AddDefaultsDateToToday(t *testing.T) {
	h := newHarness(t, "2\n12.5\nFood\nCoffee\n\n11\n", "", "", "")

	require.NoError(t, h.shell.Run())

	expense, err := h.expenses.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "01-03-2024", expense.Date)
}

func TestRun_AddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"bad amount", "2\nabc\nFood\nLunch\n01-03-2024\n11\n", "Error: invalid amount 'abc': must be a number"},
		{"empty amount", "2\n\nFood\nLunch\n01-03-2024\n11\n", "Error: invalid amount: must be a number"},
		{"bad date", "2\n5\nFood\nLunch\n2024-03-01\n11\n", "Error: invalid date '2024-03-01': expected DD-MM-YYYY"},
		{"empty category", "2\n5\n\nLunch\n01-03-2024\n11\n", "Error: invalid category: must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.input, "", "", "")

			require.NoError(t, h.shell.Run())

			assert.Contains(t, h.out.String(), tt.message)
			assert.Zero(t, h.expenses.Len())
			assert.Zero(t, h.expenseBackend.Writes)
		})
	}
}

func TestRun_AddWarnsOnNonPositiveAmount(t *testing.T) {
	h := newHarness(t, "2\n-5\nRefund\nShop\n01-03-2024\n11\n", "", "", "")

	require.NoError(t, h.shell.Run())

	assert.Equal(t, 1, h.expenses.Len())
	assert.True(t, h.logger.HasEntry("WARN", "Expense amount is not positive"))
}

func TestRun_UpdateKeepsEmptyFields(t *testing.T) {
	h := newHarness(t, "3\n2\n\nDrinks\n\n\n11\n", twoExpenses, "", "")

	require.NoError(t, h.shell.Run())

	updated, err := h.expenses.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "Drinks", updated.Category)
	assert.Equal(t, "Dinner", updated.Description)
	assert.Equal(t, "20-03-2024", updated.Date)
	assert.Equal(t, "100", updated.Amount.String())

	first, err := h.expenses.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Food", first.Category)
	assert.Contains(t, h.out.String(), "Updating: Amount: 100.00")
}

func TestRun_UpdateInvalidIndex(t *testing.T) {
	for _, index := range []string{"0", "3", "x"} {
		t.Run(index, func(t *testing.T) {
			h := newHarness(t, "3\n"+index+"\n11\n", twoExpenses, "", "")

			require.NoError(t, h.shell.Run())

			assert.Contains(t, h.out.String(), "Error: invalid index '"+index+"'")
			assert.Equal(t, 2, h.expenses.Len())
			assert.Zero(t, h.expenseBackend.Writes)
		})
	}
}

func TestRun_UpdateAndDeleteOnEmptyStore(t *testing.T) {
	h := newHarness(t, "3\n4\n11\n", "", "", "")

	require.NoError(t, h.shell.Run())

	assert.Equal(t, 2, strings.Count(h.out.String(), "No expenses found"))
}

func TestRun_Delete(t *testing.T) {
	h := newHarness(t, "4\n1\n1\n11\n", twoExpenses, "", "")

	require.NoError(t, h.shell.Run())

	require.Equal(t, 1, h.expenses.Len())
	remaining, err := h.expenses.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", remaining.Description)
	out := h.out.String()
	assert.Contains(t, out, "Deleted expense #1: Lunch")
	assert.Contains(t, out, "1. Amount: 100.00, Category: Food, Description: Dinner")
}

func TestRun_SaveFailureIsReportedAndSessionContinues(t *testing.T) {
	h := newHarness(t, "2\n5\nFood\nTea\n01-03-2024\n1\n11\n", "", "", "")
	h.expenseBackend.WriteErr = errors.New("disk full")

	require.NoError(t, h.shell.Run())

	out := h.out.String()
	assert.Contains(t, out, "Error while saving the data: failed to save data to 'memory': disk full")
	assert.NotContains(t, out, "Data saved successfully!")
	assert.Contains(t, out, "1. Amount: 5.00, Category: Food, Description: Tea", "record stays in memory")
}

func TestRun_SummariesAndCharts(t *testing.T) {
	h := newHarness(t, "5\n6\n7\n8\n11\n", twoExpenses, "", "")

	require.NoError(t, h.shell.Run())

	out := h.out.String()
	assert.Contains(t, out, "March 2024: 150.00")
	assert.Contains(t, out, "March 2024 (Total: 150.00)\n  Food: 150.00")
	assert.Contains(t, out, "March 2024 | "+strings.Repeat("█", 10)+" 150.00")
	assert.Contains(t, out, "Food | "+strings.Repeat("▒", 10)+" 100.0%")
}

func TestRun_ExportCSV(t *testing.T) {
	defaultPath := filepath.Join(t.TempDir(), "out", "expenses.csv")
	h := newHarness(t, "9\n\n11\n", twoExpenses, "", defaultPath)

	require.NoError(t, h.shell.Run())

	data, err := os.ReadFile(defaultPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Amount,Category,Description,Date\n50.00,Food,Lunch,05-03-2024\n"))
	assert.Contains(t, h.out.String(), "Exported 2 expenses to "+defaultPath)
}

func TestRun_RecurringAddProcessesToday(t *testing.T) {
	input := strings.Join([]string{
		"10", "2", "Rent", "1000", "Housing", "Rent", "Monthly", "1",
		"1", "4", "1", "11",
	}, "\n") + "\n"
	h := newHarness(t, input, "", "", "")

	require.NoError(t, h.shell.Run())

	require.Equal(t, 1, h.rules.Len())
	require.Equal(t, 1, h.expenses.Len())
	generated, err := h.expenses.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "01-03-2024", generated.Date)
	assert.Equal(t, "Rent", generated.Description)

	out := h.out.String()
	assert.Contains(t, out, "Manage Recurring Expenses\n1. List\n2. Add\n3. Delete\n4. Back\n")
	assert.Contains(t, out, "Recurring expense added!")
	assert.Contains(t, out, "Added 1 recurring expense(s) for today")
	assert.Contains(t, out, "1. Name: Rent, Amount: 1,000.00, Category: Housing, Description: Rent, Frequency: Monthly, Day: 1")
}

func TestRun_RecurringAddRejectsUnknownFrequency(t *testing.T) {
	input := "10\n2\nGym\n15\nHealth\nGym\nYearly\n1\n4\n11\n"
	h := newHarness(t, input, "", "", "")

	require.NoError(t, h.shell.Run())

	assert.Zero(t, h.rules.Len())
	assert.Contains(t, h.out.String(), "Error: invalid frequency 'Yearly': must be Monthly or Weekly")
}

func TestRun_RecurringDeleteAndInvalidChoice(t *testing.T) {
	rules := `[{"name":"Gym","amount":15,"category":"Health","description":"Gym","frequency":"Weekly","day":"Monday"}]`
	h := newHarness(t, "10\n7\n3\n1\n3\n4\n11\n", "", rules, "")

	require.NoError(t, h.shell.Run())

	out := h.out.String()
	assert.Contains(t, out, "Invalid Choice")
	assert.Contains(t, out, "Deleted recurring expense #1: Gym")
	assert.Contains(t, out, "No recurring expenses found")
	assert.Zero(t, h.rules.Len())
	assert.Equal(t, 1, h.ruleBackend.Writes)
}

func TestRun_EOFInsideSubMenu(t *testing.T) {
	h := newHarness(t, "10\n2\nRent\n", "", "", "")

	require.NoError(t, h.shell.Run())
	assert.Zero(t, h.rules.Len())
}

func TestNew_Defaults(t *testing.T) {
	h := newHarness(t, "", "", "", "")
	s := New(strings.NewReader(""), h.out, h.expenses, h.rules, nil, nil, Options{}, nil)

	assert.Equal(t, ',', s.opts.Delimiter)
	assert.Equal(t, "expenses.csv", s.opts.CSVPath)
	assert.NotNil(t, s.opts.Now)
}
