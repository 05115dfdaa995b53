package models

import (
	"fmt"
	"time"

	"fjacquet/expense-tracker/internal/dateutils"
)

// MonthKey identifies a calendar month of a specific year.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf returns the month key of date.
func MonthKeyOf(date time.Time) MonthKey {
	return MonthKey{Year: date.Year(), Month: date.Month()}
}

// ParseMonthKey parses a "March 2024" style key.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse(dateutils.MonthKeyLayout, dateutils.CleanDateString(s))
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKeyOf(t), nil
}

// String renders the key as "Month Year", e.g. "March 2024".
func (k MonthKey) String() string {
	return fmt.Sprintf("%s %d", k.Month, k.Year)
}

// Contains reports whether date falls within the month.
func (k MonthKey) Contains(date time.Time) bool {
	return date.Year() == k.Year && date.Month() == k.Month
}
