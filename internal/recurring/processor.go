// Package recurring turns recurring rules into concrete expenses. A rule is
// evaluated against today's date by the Schedule registered for its
// frequency; rules with an unknown frequency never match.
package recurring

import (
	"fmt"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
	"fjacquet/expense-tracker/internal/store"
)

// Options tunes the schedules.
type Options struct {
	WeeklyDuplicateGuard bool
	ClampMonthEnd        bool
}

// Result lists the expenses generated by one processing run, in rule order.
type Result struct {
	Added []models.Expense
}

// Processor evaluates rules against a date.
type Processor struct {
	schedules map[models.Frequency]Schedule
	logger    logging.Logger
}

// NewProcessor creates a processor with the default schedules.
func NewProcessor(opts Options, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Processor{
		schedules: map[models.Frequency]Schedule{
			models.FrequencyMonthly: MonthlySchedule{ClampMonthEnd: opts.ClampMonthEnd},
			models.FrequencyWeekly:  WeeklySchedule{DuplicateGuard: opts.WeeklyDuplicateGuard},
		},
		logger: logger,
	}
}

// ScheduleFor returns the schedule of a frequency.
func (p *Processor) ScheduleFor(freq models.Frequency) (Schedule, error) {
	s, ok := p.schedules[freq]
	if !ok {
		return nil, fmt.Errorf("unsupported frequency: %s", freq)
	}
	return s, nil
}

// Process computes the expenses the rules generate on today. It does not
// modify its inputs. Expenses generated earlier in the same run count as
// history for later rules.
func (p *Processor) Process(today time.Time, expenses []models.Expense, rules []models.RecurringRule) Result {
	date := dateutils.FormatExpenseDate(today)
	history := p.history(expenses)
	result := Result{}

	for i, rule := range rules {
		schedule, err := p.ScheduleFor(rule.Frequency)
		if err != nil {
			p.logger.Debug("Ignoring recurring rule",
				logging.F(logging.FieldRule, i+1),
				logging.F(logging.FieldFrequency, string(rule.Frequency)))
			continue
		}
		if !schedule.IsDue(rule, today) {
			continue
		}
		if schedule.Recorded(rule, today, history) {
			p.logger.Debug("Recurring expense already recorded",
				logging.F(logging.FieldRule, i+1),
				logging.F(logging.FieldDescription, rule.Description))
			continue
		}

		expense := rule.Instantiate(date)
		result.Added = append(result.Added, expense)
		history = append(history, Entry{Description: expense.Description, Date: today})
		p.logger.Info("Recurring expense generated",
			logging.F(logging.FieldRule, i+1),
			logging.F(logging.FieldDescription, rule.Description),
			logging.F(logging.FieldDate, date))
	}

	return result
}

// Apply runs Process against the store, appends the generated expenses and
// saves once if anything was added. On a save failure the expenses stay in
// memory and the error is returned.
func (p *Processor) Apply(today time.Time, expenses *store.ExpenseStore, rules []models.RecurringRule) (int, error) {
	result := p.Process(today, expenses.Expenses(), rules)
	if len(result.Added) == 0 {
		p.logger.Debug("No recurring expenses due", logging.F(logging.FieldDate, dateutils.FormatExpenseDate(today)))
		return 0, nil
	}

	expenses.Append(result.Added...)
	if err := expenses.Save(); err != nil {
		return len(result.Added), err
	}

	p.logger.Info("Recurring expenses processed", logging.F(logging.FieldCount, len(result.Added)))
	return len(result.Added), nil
}

func (p *Processor) history(expenses []models.Expense) []Entry {
	history := make([]Entry, 0, len(expenses))
	for _, e := range expenses {
		date, err := dateutils.ParseExpenseDate(e.Date)
		if err != nil {
			continue
		}
		history = append(history, Entry{Description: e.Description, Date: date})
	}
	return history
}
