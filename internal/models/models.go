// Package models provides the record types persisted and processed by the
// expense tracker: expenses, recurring rules and month grouping keys.
package models

import "github.com/shopspring/decimal"

func init() {
	// Amounts are persisted as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
