package store

import (
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// ExpenseStore is the ordered collection of expenses.
type ExpenseStore struct {
	c *collection[models.Expense]
}

// LoadExpenseStore creates an expense store and loads its persisted data.
// A nil codec selects one from the backend location.
func LoadExpenseStore(backend Backend, codec Codec, logger logging.Logger) (*ExpenseStore, error) {
	s := &ExpenseStore{c: newCollection[models.Expense]("expenses", backend, codec, logger)}
	if err := s.c.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Add appends an expense and saves.
func (s *ExpenseStore) Add(expense models.Expense) error {
	s.c.logger.Info("Adding expense",
		logging.F(logging.FieldCategory, expense.Category),
		logging.F(logging.FieldDate, expense.Date))
	return s.c.add(expense)
}

// Update replaces the expense at the 1-based index and saves. An index out
// of range returns a ValidationError and leaves the store unchanged.
func (s *ExpenseStore) Update(index int, expense models.Expense) error {
	if err := s.c.replace(index, expense); err != nil {
		return err
	}
	s.c.logger.Info("Updated expense", logging.F(logging.FieldIndex, index))
	return nil
}

// Delete removes the expense at the 1-based index and saves.
func (s *ExpenseStore) Delete(index int) (models.Expense, error) {
	removed, err := s.c.remove(index)
	if err == nil {
		s.c.logger.Info("Deleted expense", logging.F(logging.FieldIndex, index))
	}
	return removed, err
}

// Append adds expenses without saving; callers batch the save.
func (s *ExpenseStore) Append(expenses ...models.Expense) {
	s.c.items = append(s.c.items, expenses...)
}

// Save persists the collection.
func (s *ExpenseStore) Save() error {
	return s.c.save()
}

// Reload discards in-memory records and reads the backend again.
func (s *ExpenseStore) Reload() error {
	return s.c.load()
}

// Get returns the expense at the 1-based index.
func (s *ExpenseStore) Get(index int) (models.Expense, error) {
	if err := s.c.checkIndex(index); err != nil {
		return models.Expense{}, err
	}
	return s.c.items[index-1], nil
}

// List returns the expenses in insertion order with their display index.
func (s *ExpenseStore) List() []models.IndexedExpense {
	out := make([]models.IndexedExpense, len(s.c.items))
	for i, e := range s.c.items {
		out[i] = models.IndexedExpense{Index: i + 1, Expense: e}
	}
	return out
}

// Expenses returns a copy of the collection.
func (s *ExpenseStore) Expenses() []models.Expense {
	return s.c.snapshot()
}

// Len returns the number of expenses.
func (s *ExpenseStore) Len() int {
	return len(s.c.items)
}

// Location returns where the collection is persisted.
func (s *ExpenseStore) Location() string {
	return s.c.backend.Location()
}
