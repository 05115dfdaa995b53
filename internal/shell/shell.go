// Package shell implements the interactive numbered menu. The shell owns
// the stores for the whole session; every operation reports its errors and
// returns to the menu.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/aggregate"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/parsererror"
	"fjacquet/expense-tracker/internal/recurring"
	"fjacquet/expense-tracker/internal/report"
	"fjacquet/expense-tracker/internal/store"
)

const (
	banner        = "\n ^^^^^^^^^^^^^^ PERSONAL EXPENSE TRACKER ^^^^^^^^^^^^^^"
	invalidChoice = "Invalid Choice"
	savedMessage  = "Data saved successfully!"
)

var mainMenu = []string{
	"List all Expenses",
	"Add an Expense",
	"Update an Expense",
	"Delete an Expense",
	"Monthly Summary",
	"Category Summary",
	"Monthly Chart",
	"Category Chart",
	"Export to CSV",
	"Manage Recurring Expenses",
	"Exit",
}

var recurringMenu = []string{
	"List",
	"Add",
	"Delete",
	"Back",
}

// errInputClosed ends the session when the input reaches EOF.
var errInputClosed = errors.New("input closed")

// Options configures a Shell.
type Options struct {
	CSVPath   string
	Delimiter rune
	// Now returns the current date; it defaults to time.Now.
	Now func() time.Time
}

// Shell is an interactive session over a line-oriented reader and a writer.
type Shell struct {
	in        *bufio.Scanner
	out       io.Writer
	expenses  *store.ExpenseStore
	rules     *store.RuleStore
	processor *recurring.Processor
	renderer  *report.Renderer
	opts      Options
	logger    logging.Logger
}

// New creates a shell. The renderer is expected to write to out.
func New(in io.Reader, out io.Writer, expenses *store.ExpenseStore, rules *store.RuleStore,
	processor *recurring.Processor, renderer *report.Renderer, opts Options, logger logging.Logger) *Shell {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.CSVPath == "" {
		opts.CSVPath = "expenses.csv"
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Shell{
		in:        bufio.NewScanner(in),
		out:       out,
		expenses:  expenses,
		rules:     rules,
		processor: processor,
		renderer:  renderer,
		opts:      opts,
		logger:    logger,
	}
}

// Run displays the menu until the user exits or the input is exhausted.
func (s *Shell) Run() error {
	s.logger.Debug("Interactive session started",
		logging.F(logging.FieldCount, s.expenses.Len()))

	for {
		s.println(banner)
		s.println("Choose an option from below")
		s.printMenu(mainMenu)

		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			return s.finish(err)
		}

		exit, err := s.dispatch(choice)
		if err != nil {
			return s.finish(err)
		}
		if exit {
			s.logger.Debug("Interactive session ended")
			return nil
		}
	}
}

func (s *Shell) dispatch(choice string) (bool, error) {
	var err error
	switch choice {
	case "1":
		err = s.renderer.ListExpenses(s.expenses.Expenses())
	case "2":
		err = s.addExpense()
	case "3":
		err = s.updateExpense()
	case "4":
		err = s.deleteExpense()
	case "5":
		err = s.renderer.MonthlySummary(aggregate.MonthlyTotals(s.expenses.Expenses(), s.logger))
	case "6":
		err = s.renderer.CategorySummary(aggregate.CategoryMonthlyBreakdown(s.expenses.Expenses(), s.logger))
	case "7":
		err = s.renderer.MonthlyChart(aggregate.MonthlyTotals(s.expenses.Expenses(), s.logger))
	case "8":
		err = s.renderer.CategoryChart(aggregate.CategoryMonthlyBreakdown(s.expenses.Expenses(), s.logger))
	case "9":
		err = s.exportCSV()
	case "10":
		err = s.manageRecurring()
	case "11":
		return true, nil
	default:
		s.println(invalidChoice)
	}

	if errors.Is(err, errInputClosed) {
		return false, err
	}
	if err != nil {
		s.reportError(err)
	}
	return false, nil
}

func (s *Shell) manageRecurring() error {
	for {
		s.println("\nManage Recurring Expenses")
		s.printMenu(recurringMenu)

		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.renderer.ListRules(s.rules.Rules())
		case "2":
			err = s.addRule()
		case "3":
			err = s.deleteRule()
		case "4":
			return nil
		default:
			s.println(invalidChoice)
		}

		if errors.Is(err, errInputClosed) {
			return err
		}
		if err != nil {
			s.reportError(err)
		}
	}
}

func (s *Shell) addExpense() error {
	expense, err := s.readExpense(models.NewExpenseBuilder(), false)
	if err != nil {
		return err
	}
	s.warnNonPositive(expense)
	return s.saved(s.expenses.Add(expense))
}

func (s *Shell) updateExpense() error {
	if s.expenses.Len() == 0 {
		s.println("No expenses found")
		return nil
	}
	index, err := s.readIndex("Enter the expense number to update: ")
	if err != nil {
		return err
	}
	current, err := s.expenses.Get(index)
	if err != nil {
		return err
	}
	s.printf("Updating: Amount: %s, Category: %s, Description: %s, Date: %s\n",
		s.renderer.FormatAmount(current.Amount), current.Category, current.Description, current.Date)

	expense, err := s.readExpense(models.NewExpenseBuilder().FromExpense(current), true)
	if err != nil {
		return err
	}
	s.warnNonPositive(expense)
	return s.saved(s.expenses.Update(index, expense))
}

func (s *Shell) deleteExpense() error {
	if s.expenses.Len() == 0 {
		s.println("No expenses found")
		return nil
	}
	index, err := s.readIndex("Enter the expense number to delete: ")
	if err != nil {
		return err
	}
	removed, err := s.expenses.Delete(index)
	if parsererror.IsValidation(err) {
		return err
	}
	s.printf("Deleted expense #%d: %s\n", index, removed.Description)
	return s.saved(err)
}

func (s *Shell) exportCSV() error {
	path, err := s.prompt(fmt.Sprintf("Enter file name [%s]: ", s.opts.CSVPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = s.opts.CSVPath
	}
	if err := report.ExportCSV(path, s.expenses.Expenses(), s.opts.Delimiter, s.logger); err != nil {
		return err
	}
	s.printf("Exported %d expenses to %s\n", s.expenses.Len(), path)
	return nil
}

func (s *Shell) addRule() error {
	b := models.NewRuleBuilder()
	fields := []struct {
		label string
		set   func(string)
	}{
		{"Enter name: ", func(v string) { b.WithName(v) }},
		{"Enter amount: ", func(v string) { b.WithAmountFromString(v) }},
		{"Enter category: ", func(v string) { b.WithCategory(v) }},
		{"Enter description: ", func(v string) { b.WithDescription(v) }},
		{"Enter frequency (Monthly/Weekly): ", func(v string) { b.WithFrequency(v) }},
		{"Enter day (1-31 for Monthly, weekday name for Weekly): ", func(v string) { b.WithDay(v) }},
	}
	for _, f := range fields {
		v, err := s.prompt(f.label)
		if err != nil {
			return err
		}
		f.set(v)
	}

	rule, err := b.Build()
	if err != nil {
		return err
	}
	if err := s.rules.Add(rule); err != nil {
		return err
	}
	s.println("Recurring expense added!")

	added, err := s.processor.Apply(s.opts.Now(), s.expenses, []models.RecurringRule{rule})
	if added > 0 {
		s.printf("Added %d recurring expense(s) for today\n", added)
	}
	return err
}

func (s *Shell) deleteRule() error {
	if s.rules.Len() == 0 {
		s.println("No recurring expenses found")
		return nil
	}
	index, err := s.readIndex("Enter the recurring expense number to delete: ")
	if err != nil {
		return err
	}
	removed, err := s.rules.Delete(index)
	if parsererror.IsValidation(err) {
		return err
	}
	s.printf("Deleted recurring expense #%d: %s\n", index, removed.Name)
	return s.saved(err)
}

// readExpense prompts for every expense field. On update an empty answer
// keeps the current value; on add an empty date means today.
func (s *Shell) readExpense(b *models.ExpenseBuilder, update bool) (models.Expense, error) {
	values := make([]string, 4)
	labels := []string{"Enter amount: ", "Enter category: ", "Enter description: ", "Enter date (DD-MM-YYYY): "}
	for i, label := range labels {
		v, err := s.prompt(label)
		if err != nil {
			return models.Expense{}, err
		}
		values[i] = v
	}

	keep := func(v string) bool { return update && v == "" }
	if !keep(values[0]) {
		b.WithAmountFromString(values[0])
	}
	if !keep(values[1]) {
		b.WithCategory(values[1])
	}
	if !keep(values[2]) {
		b.WithDescription(values[2])
	}
	if !keep(values[3]) {
		b.WithDate(values[3])
	}
	return b.WithDefaultDate(s.opts.Now()).Build()
}

func (s *Shell) readIndex(label string) (int, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &parsererror.ValidationError{Field: "index", Value: raw, Reason: "must be a number"}
	}
	return index, nil
}

func (s *Shell) saved(err error) error {
	if err != nil {
		return err
	}
	s.println(savedMessage)
	return nil
}

func (s *Shell) warnNonPositive(e models.Expense) {
	if !e.Amount.IsPositive() {
		s.logger.Warn("Expense amount is not positive",
			logging.F(logging.FieldAmount, e.Amount.String()),
			logging.F(logging.FieldDescription, e.Description))
	}
}

func (s *Shell) reportError(err error) {
	if parsererror.IsSave(err) {
		s.printf("Error while saving the data: %v\n", err)
		return
	}
	s.printf("Error: %v\n", err)
}

func (s *Shell) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		s.println("")
		s.logger.Debug("Input closed, leaving interactive session")
		return nil
	}
	return err
}

func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s", label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) printMenu(items []string) {
	for i, item := range items {
		s.printf("%d. %s\n", i+1, item)
	}
}

func (s *Shell) println(line string) {
	s.printf("%s\n", line)
}

func (s *Shell) printf(format string, args ...interface{}) {
	// Terminal writes are best effort.
	_, _ = fmt.Fprintf(s.out, format, args...)
}
