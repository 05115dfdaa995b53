// Package container provides dependency injection for the expense tracker.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"io"
	"time"

	"fjacquet/expense-tracker/internal/config"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/recurring"
	"fjacquet/expense-tracker/internal/report"
	"fjacquet/expense-tracker/internal/shell"
	"fjacquet/expense-tracker/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	expenses  *store.ExpenseStore
	rules     *store.RuleStore
	processor *recurring.Processor
}

// NewContainer creates and wires all application dependencies, loading
// both stores from the configured data directory.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	expensesPath := cfg.ExpensesPath()
	expenses, err := store.LoadExpenseStore(store.NewFileBackend(expensesPath), store.CodecForPath(expensesPath), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	rulesPath := cfg.RecurringPath()
	rules, err := store.LoadRuleStore(store.NewFileBackend(rulesPath), store.CodecForPath(rulesPath), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}

	processor := recurring.NewProcessor(recurring.Options{
		WeeklyDuplicateGuard: cfg.Recurring.WeeklyDuplicateGuard,
		ClampMonthEnd:        cfg.Recurring.ClampMonthEnd,
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldFile, expensesPath),
		logging.F("expenses_count", expenses.Len()),
		logging.F("rules_count", rules.Len()))

	return &Container{
		logger:    logger,
		config:    cfg,
		expenses:  expenses,
		rules:     rules,
		processor: processor,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetExpenseStore returns the expense store.
func (c *Container) GetExpenseStore() *store.ExpenseStore {
	return c.expenses
}

// GetRuleStore returns the recurring rule store.
func (c *Container) GetRuleStore() *store.RuleStore {
	return c.rules
}

// GetProcessor returns the recurrence processor.
func (c *Container) GetProcessor() *recurring.Processor {
	return c.processor
}

// NewRenderer creates a renderer writing to out with the configured chart
// width and locale.
func (c *Container) NewRenderer(out io.Writer) *report.Renderer {
	return report.NewRenderer(out, report.Options{
		ChartWidth: c.config.Report.ChartWidth,
		Locale:     c.config.LocaleTag(),
	}, c.logger)
}

// NewShell creates an interactive session over in and out.
func (c *Container) NewShell(in io.Reader, out io.Writer, now func() time.Time) *shell.Shell {
	return shell.New(in, out, c.expenses, c.rules, c.processor, c.NewRenderer(out), shell.Options{
		CSVPath:   c.config.CSVPath(),
		Delimiter: c.config.DelimiterRune(),
		Now:       now,
	}, c.logger)
}

// ProcessRecurring applies the recurring rules for today.
func (c *Container) ProcessRecurring(today time.Time) (int, error) {
	return c.processor.Apply(today, c.expenses, c.rules.Rules())
}
