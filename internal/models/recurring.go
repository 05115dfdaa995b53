package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Frequency is the schedule of a recurring rule.
type Frequency string

const (
	FrequencyMonthly Frequency = "Monthly"
	FrequencyWeekly  Frequency = "Weekly"
)

// ParseFrequency resolves a frequency name case-insensitively.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return FrequencyMonthly, nil
	case "weekly":
		return FrequencyWeekly, nil
	default:
		return Frequency(s), &parsererror.ValidationError{
			Field:  "frequency",
			Value:  s,
			Reason: "must be Monthly or Weekly",
		}
	}
}

// IsKnown reports whether f is a supported frequency. Rules with an unknown
// frequency can be loaded but never match.
func (f Frequency) IsKnown() bool {
	return f == FrequencyMonthly || f == FrequencyWeekly
}

// RuleDay is the trigger day of a rule: a day of month (1..31) for Monthly
// rules or a weekday name for Weekly rules. It is persisted as a number or
// a string respectively.
type RuleDay struct {
	DayOfMonth int
	Weekday    string
}

// MonthDay returns a day-of-month RuleDay.
func MonthDay(day int) RuleDay {
	return RuleDay{DayOfMonth: day}
}

// WeekDay returns a weekday RuleDay.
func WeekDay(name string) RuleDay {
	return RuleDay{Weekday: name}
}

// ParseRuleDay interprets user input for the given frequency.
func ParseRuleDay(freq Frequency, s string) (RuleDay, error) {
	s = strings.TrimSpace(s)
	switch freq {
	case FrequencyMonthly:
		day, err := strconv.Atoi(s)
		if err != nil || day < 1 || day > 31 {
			return RuleDay{}, &parsererror.ValidationError{Field: "day", Value: s, Reason: "must be a day of month between 1 and 31"}
		}
		return MonthDay(day), nil
	case FrequencyWeekly:
		wd, ok := dateutils.ParseWeekday(s)
		if !ok {
			return RuleDay{}, &parsererror.ValidationError{Field: "day", Value: s, Reason: "must be a weekday name such as Monday"}
		}
		return WeekDay(wd.String()), nil
	default:
		return RuleDay{}, &parsererror.ValidationError{Field: "frequency", Value: string(freq), Reason: "must be Monthly or Weekly"}
	}
}

// IsDayOfMonth reports whether the day holds a day of month.
func (d RuleDay) IsDayOfMonth() bool {
	return d.Weekday == "" && d.DayOfMonth != 0
}

// String renders the day as it is displayed and persisted.
func (d RuleDay) String() string {
	if d.Weekday != "" {
		return d.Weekday
	}
	return strconv.Itoa(d.DayOfMonth)
}

func (d *RuleDay) set(raw string) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		*d = MonthDay(n)
		return
	}
	*d = WeekDay(raw)
}

// MarshalJSON writes a JSON number for a day of month, a JSON string otherwise.
func (d RuleDay) MarshalJSON() ([]byte, error) {
	if d.Weekday != "" {
		return json.Marshal(d.Weekday)
	}
	return json.Marshal(d.DayOfMonth)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (d *RuleDay) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*d = MonthDay(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rule day must be a number or a string: %w", err)
	}
	d.set(s)
	return nil
}

// MarshalYAML writes an integer for a day of month, a string otherwise.
func (d RuleDay) MarshalYAML() (interface{}, error) {
	if d.Weekday != "" {
		return d.Weekday, nil
	}
	return d.DayOfMonth, nil
}

// UnmarshalYAML accepts either an integer or a string scalar.
func (d *RuleDay) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("rule day must be a scalar, got kind %d", node.Kind)
	}
	d.set(node.Value)
	return nil
}

// RecurringRule is a template that generates an expense on a schedule.
// Generated expenses carry the rule's description, which is the only link
// back to the rule.
type RecurringRule struct {
	Name        string          `json:"name" yaml:"name"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Frequency   Frequency       `json:"frequency" yaml:"frequency"`
	Day         RuleDay         `json:"day" yaml:"day"`
}

// IndexedRule pairs a rule with its 1-based display index.
type IndexedRule struct {
	Index int
	Rule  RecurringRule
}

// Validate checks a rule entered by the user.
func (r RecurringRule) Validate() error {
	if !r.Frequency.IsKnown() {
		return &parsererror.ValidationError{Field: "frequency", Value: string(r.Frequency), Reason: "must be Monthly or Weekly"}
	}
	if strings.TrimSpace(r.Category) == "" {
		return &parsererror.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	_, err := ParseRuleDay(r.Frequency, r.Day.String())
	return err
}

// Instantiate builds the expense generated by the rule on the given date.
func (r RecurringRule) Instantiate(date string) Expense {
	return Expense{
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
	}
}
