package recurring

import (
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/models"
)

// Entry is an expense whose date has already been parsed.
type Entry struct {
	Description string
	Date        time.Time
}

// Schedule is the strategy deciding, for one frequency, whether a rule is
// due today and whether its expense has already been recorded.
type Schedule interface {
	// IsDue reports whether the rule triggers on today.
	IsDue(rule models.RecurringRule, today time.Time) bool

	// Recorded reports whether history already holds the expense that the
	// rule would generate today.
	Recorded(rule models.RecurringRule, today time.Time, history []Entry) bool
}

// MonthlySchedule triggers on a fixed day of month, at most once per month.
type MonthlySchedule struct {
	// ClampMonthEnd makes a day beyond the month length trigger on the
	// last day of the month.
	ClampMonthEnd bool
}

// IsDue returns true if today is the rule's day of month.
func (s MonthlySchedule) IsDue(rule models.RecurringRule, today time.Time) bool {
	if !rule.Day.IsDayOfMonth() {
		return false
	}
	target := rule.Day.DayOfMonth
	if s.ClampMonthEnd {
		if last := dateutils.LastDayOfMonth(today); target > last {
			target = last
		}
	}
	return today.Day() == target
}

// Recorded returns true if an expense with the rule's description already
// falls in today's month.
func (MonthlySchedule) Recorded(rule models.RecurringRule, today time.Time, history []Entry) bool {
	for _, e := range history {
		if e.Description == rule.Description && dateutils.SameMonth(e.Date, today) {
			return true
		}
	}
	return false
}

// WeeklySchedule triggers on a weekday.
type WeeklySchedule struct {
	// DuplicateGuard skips the rule when an expense with the same
	// description already exists for today. Without it every run on the
	// matching weekday appends.
	DuplicateGuard bool
}

// IsDue returns true if today is the rule's weekday.
func (WeeklySchedule) IsDue(rule models.RecurringRule, today time.Time) bool {
	if rule.Day.IsDayOfMonth() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(rule.Day.Weekday), dateutils.WeekdayName(today))
}

// Recorded returns true only when the guard is on and today's expense exists.
func (s WeeklySchedule) Recorded(rule models.RecurringRule, today time.Time, history []Entry) bool {
	if !s.DuplicateGuard {
		return false
	}
	for _, e := range history {
		if e.Description == rule.Description && dateutils.SameDay(e.Date, today) {
			return true
		}
	}
	return false
}
