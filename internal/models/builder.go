package models

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
)

// ExpenseBuilder provides a fluent API for constructing expenses from user
// input. The first error sticks and is returned by Build.
type ExpenseBuilder struct {
	e           Expense
	defaultDate time.Time
	err         error
}

// NewExpenseBuilder creates a new ExpenseBuilder
func NewExpenseBuilder() *ExpenseBuilder {
	return &ExpenseBuilder{e: Expense{Amount: decimal.Zero}}
}

// FromExpense starts from an existing expense, e.g. for an update.
func (b *ExpenseBuilder) FromExpense(e Expense) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.e = e
	return b
}

// WithAmount sets the amount
func (b *ExpenseBuilder) WithAmount(amount decimal.Decimal) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.e.Amount = amount
	return b
}

// WithAmountFromString parses and sets the amount
func (b *ExpenseBuilder) WithAmountFromString(amountStr string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	amount, err := ParseAmount(amountStr)
	if err != nil {
		b.err = &parsererror.ValidationError{Field: "amount", Value: amountStr, Reason: "must be a number"}
		return b
	}
	b.e.Amount = amount
	return b
}

// WithCategory sets the category
func (b *ExpenseBuilder) WithCategory(category string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.e.Category = strings.TrimSpace(category)
	return b
}

// WithDescription sets the description
func (b *ExpenseBuilder) WithDescription(description string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.e.Description = strings.TrimSpace(description)
	return b
}

// WithDate sets the date from a DD-MM-YYYY string, normalised to two-digit
// day and month. An empty string leaves the date unset.
func (b *ExpenseBuilder) WithDate(dateStr string) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(dateStr) == "" {
		b.e.Date = ""
		return b
	}
	normalized, err := dateutils.NormalizeExpenseDate(dateStr)
	if err != nil {
		b.err = &parsererror.ValidationError{Field: "date", Value: dateStr, Reason: "expected DD-MM-YYYY"}
		return b
	}
	b.e.Date = normalized
	return b
}

// WithDateFromTime sets the date from a time.Time
func (b *ExpenseBuilder) WithDateFromTime(date time.Time) *ExpenseBuilder {
	if b.err != nil {
		return b
	}
	b.e.Date = dateutils.FormatExpenseDate(date)
	return b
}

// WithDefaultDate sets the date used when none was given.
func (b *ExpenseBuilder) WithDefaultDate(date time.Time) *ExpenseBuilder {
	b.defaultDate = date
	return b
}

// Build validates the expense and returns it
func (b *ExpenseBuilder) Build() (Expense, error) {
	if b.err != nil {
		return Expense{}, b.err
	}
	if b.e.Date == "" && !b.defaultDate.IsZero() {
		b.e.Date = dateutils.FormatExpenseDate(b.defaultDate)
	}
	if b.e.Date == "" {
		return Expense{}, &parsererror.ValidationError{Field: "date", Reason: "is required"}
	}
	if err := b.e.Validate(); err != nil {
		return Expense{}, err
	}
	return b.e, nil
}

// RuleBuilder provides a fluent API for constructing recurring rules.
// Frequency and day are resolved together in Build since the meaning of
// the day depends on the frequency.
type RuleBuilder struct {
	r         RecurringRule
	frequency string
	day       string
	err       error
}

// NewRuleBuilder creates a new RuleBuilder
func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{r: RecurringRule{Amount: decimal.Zero}}
}

// WithName sets the rule name
func (b *RuleBuilder) WithName(name string) *RuleBuilder {
	b.r.Name = strings.TrimSpace(name)
	return b
}

// WithAmountFromString parses and sets the amount
func (b *RuleBuilder) WithAmountFromString(amountStr string) *RuleBuilder {
	if b.err != nil {
		return b
	}
	amount, err := ParseAmount(amountStr)
	if err != nil {
		b.err = &parsererror.ValidationError{Field: "amount", Value: amountStr, Reason: "must be a number"}
		return b
	}
	b.r.Amount = amount
	return b
}

// WithCategory sets the category
func (b *RuleBuilder) WithCategory(category string) *RuleBuilder {
	b.r.Category = strings.TrimSpace(category)
	return b
}

// WithDescription sets the description that links generated expenses to
// the rule.
func (b *RuleBuilder) WithDescription(description string) *RuleBuilder {
	b.r.Description = strings.TrimSpace(description)
	return b
}

// WithFrequency sets the frequency name, Monthly or Weekly.
func (b *RuleBuilder) WithFrequency(frequency string) *RuleBuilder {
	b.frequency = frequency
	return b
}

// WithDay sets the trigger day: a day of month or a weekday name.
func (b *RuleBuilder) WithDay(day string) *RuleBuilder {
	b.day = day
	return b
}

// Build validates the rule and returns it
func (b *RuleBuilder) Build() (RecurringRule, error) {
	if b.err != nil {
		return RecurringRule{}, b.err
	}
	freq, err := ParseFrequency(b.frequency)
	if err != nil {
		return RecurringRule{}, err
	}
	day, err := ParseRuleDay(freq, b.day)
	if err != nil {
		return RecurringRule{}, err
	}
	b.r.Frequency = freq
	b.r.Day = day
	if b.r.Name == "" {
		b.r.Name = b.r.Description
	}
	if err := b.r.Validate(); err != nil {
		return RecurringRule{}, fmt.Errorf("invalid recurring rule: %w", err)
	}
	return b.r, nil
}
