package models

import (
	"strings"

	"fjacquet/expense-tracker/internal/dateutils"
	"fjacquet/expense-tracker/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Expense is one logged spending event. Its identity is its position in
// the owning collection.
type Expense struct {
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Date        string          `json:"date" yaml:"date"` // DD-MM-YYYY
}

// IndexedExpense pairs an expense with its 1-based display index.
type IndexedExpense struct {
	Index   int
	Expense Expense
}

// Validate checks the invariants enforced on user input: a non-empty
// category and a DD-MM-YYYY date. Amounts are not range-checked.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return &parsererror.ValidationError{Field: "category", Reason: "must not be empty"}
	}
	if _, err := dateutils.ParseExpenseDate(e.Date); err != nil {
		return &parsererror.ValidationError{Field: "date", Value: e.Date, Reason: "expected DD-MM-YYYY"}
	}
	return nil
}

// Equal compares two expenses field by field, using decimal equality for
// the amount.
func (e Expense) Equal(other Expense) bool {
	return e.Amount.Equal(other.Amount) &&
		e.Category == other.Category &&
		e.Description == other.Description &&
		e.Date == other.Date
}
