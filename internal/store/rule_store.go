package store

import (
	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/models"
)

// RuleStore is the ordered collection of recurring rules. Rules are added
// and deleted, never updated in place.
type RuleStore struct {
	c *collection[models.RecurringRule]
}

// LoadRuleStore creates a rule store and loads its persisted data. Rules
// with an unknown frequency are kept; they never match.
func LoadRuleStore(backend Backend, codec Codec, logger logging.Logger) (*RuleStore, error) {
	s := &RuleStore{c: newCollection[models.RecurringRule]("recurring", backend, codec, logger)}
	if err := s.c.load(); err != nil {
		return nil, err
	}
	for i, r := range s.c.items {
		if !r.Frequency.IsKnown() {
			s.c.logger.Warn("Recurring rule has an unknown frequency and will never match",
				logging.F(logging.FieldIndex, i+1),
				logging.F(logging.FieldRule, r.Name),
				logging.F(logging.FieldFrequency, string(r.Frequency)))
		}
	}
	return s, nil
}

// Add validates and appends a rule, then saves.
func (s *RuleStore) Add(rule models.RecurringRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	s.c.logger.Info("Adding recurring rule",
		logging.F(logging.FieldRule, rule.Name),
		logging.F(logging.FieldFrequency, string(rule.Frequency)))
	return s.c.add(rule)
}

// Delete removes the rule at the 1-based index and saves.
func (s *RuleStore) Delete(index int) (models.RecurringRule, error) {
	removed, err := s.c.remove(index)
	if err == nil {
		s.c.logger.Info("Deleted recurring rule", logging.F(logging.FieldIndex, index))
	}
	return removed, err
}

// Save persists the collection.
func (s *RuleStore) Save() error {
	return s.c.save()
}

// List returns the rules in insertion order with their display index.
func (s *RuleStore) List() []models.IndexedRule {
	out := make([]models.IndexedRule, len(s.c.items))
	for i, r := range s.c.items {
		out[i] = models.IndexedRule{Index: i + 1, Rule: r}
	}
	return out
}

// Rules returns a copy of the collection.
func (s *RuleStore) Rules() []models.RecurringRule {
	return s.c.snapshot()
}

// Len returns the number of rules.
func (s *RuleStore) Len() int {
	return len(s.c.items)
}

// Location returns where the collection is persisted.
func (s *RuleStore) Location() string {
	return s.c.backend.Location()
}
