// Package dateutils provides the date handling shared by the stores, the
// aggregation engine and the recurrence processor. Expense dates are kept
// as DD-MM-YYYY strings and parsed on demand.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DateLayoutExpense is the canonical stored layout (DD-MM-YYYY).
	DateLayoutExpense = "02-01-2006"
	// dateLayoutLenient accepts single-digit days and months on input.
	dateLayoutLenient = "2-1-2006"
	// MonthKeyLayout renders a month grouping key, e.g. "March 2024".
	MonthKeyLayout = "January 2006"
)

var whitespace = regexp.MustCompile(`\s+`)

// ParseExpenseDate parses a DD-MM-YYYY date. Single-digit day and month
// components are accepted; anything else is an error.
func ParseExpenseDate(dateStr string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := time.Parse(dateLayoutLenient, cleaned)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q as DD-MM-YYYY: %w", dateStr, err)
	}
	return t, nil
}

// FormatExpenseDate formats a time as DD-MM-YYYY.
func FormatExpenseDate(date time.Time) string {
	return date.Format(DateLayoutExpense)
}

// NormalizeExpenseDate parses and re-formats a date so that stored values
// always carry two-digit day and month.
func NormalizeExpenseDate(dateStr string) (string, error) {
	t, err := ParseExpenseDate(dateStr)
	if err != nil {
		return "", err
	}
	return FormatExpenseDate(t), nil
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// SameMonth reports whether two dates fall in the same calendar month and year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// SameDay reports whether two dates fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return SameMonth(a, b) && a.Day() == b.Day()
}

// LastDayOfMonth returns the number of days in the month of date.
func LastDayOfMonth(date time.Time) int {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WeekdayName returns the English weekday name of date, e.g. "Monday".
func WeekdayName(date time.Time) string {
	return date.Weekday().String()
}

// ParseWeekday resolves an English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return time.Sunday, false
}
