// Package store provides the Expense Store and the Recurring Rule Store:
// ordered in-memory collections with a whole-collection load/save round
// trip through a Backend. Records are identified by their 1-based position.
package store

import (
	"bytes"
	"errors"
	"fmt"

	"fjacquet/expense-tracker/internal/logging"
	"fjacquet/expense-tracker/internal/parsererror"
)

// collection holds the ordered records of one store.
type collection[T any] struct {
	name    string
	backend Backend
	codec   Codec
	logger  logging.Logger
	items   []T
}

func newCollection[T any](name string, backend Backend, codec Codec, logger logging.Logger) *collection[T] {
	if codec == nil {
		codec = CodecForPath(backend.Location())
	}
	return &collection[T]{
		name:    name,
		backend: backend,
		codec:   codec,
		logger:  logger.WithField(logging.FieldStore, name),
		items:   []T{},
	}
}

// load replaces the in-memory records with the persisted ones. Absent data
// yields an empty collection; malformed data yields a *parsererror.ParseError.
func (c *collection[T]) load() error {
	data, err := c.backend.Read()
	if err != nil {
		if errors.Is(err, parsererror.ErrNotFound) {
			c.logger.Info("No persisted data found, starting empty",
				logging.F(logging.FieldFile, c.backend.Location()))
			c.items = []T{}
			return nil
		}
		return fmt.Errorf("error reading %s from %s: %w", c.name, c.backend.Location(), err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		c.logger.Warn("Persisted file is empty, starting empty",
			logging.F(logging.FieldFile, c.backend.Location()))
		c.items = []T{}
		return nil
	}

	var items []T
	if err := c.codec.Unmarshal(data, &items); err != nil {
		return &parsererror.ParseError{
			Parser: c.codec.Name(),
			Field:  c.name,
			Value:  c.backend.Location(),
			Err:    err,
		}
	}
	if items == nil {
		items = []T{}
	}
	c.items = items

	c.logger.Debug("Loaded records",
		logging.F(logging.FieldFile, c.backend.Location()),
		logging.F(logging.FieldCount, len(items)))
	return nil
}

// save writes the whole collection. Failures are logged and returned as a
// *parsererror.SaveError; the in-memory records are left untouched.
func (c *collection[T]) save() error {
	data, err := c.codec.Marshal(c.items)
	if err != nil {
		return &parsererror.SaveError{Path: c.backend.Location(), Err: err}
	}
	if err := c.backend.Write(data); err != nil {
		c.logger.WithError(err).Error("Failed to save records",
			logging.F(logging.FieldFile, c.backend.Location()))
		return &parsererror.SaveError{Path: c.backend.Location(), Err: err}
	}
	c.logger.Debug("Saved records",
		logging.F(logging.FieldFile, c.backend.Location()),
		logging.F(logging.FieldCount, len(c.items)))
	return nil
}

// checkIndex validates a 1-based index against the current length.
func (c *collection[T]) checkIndex(index int) error {
	if index < 1 || index > len(c.items) {
		reason := "no records to select"
		if len(c.items) > 0 {
			reason = fmt.Sprintf("must be between 1 and %d", len(c.items))
		}
		return &parsererror.ValidationError{
			Field:  "index",
			Value:  fmt.Sprintf("%d", index),
			Reason: reason,
		}
	}
	return nil
}

func (c *collection[T]) add(item T) error {
	c.items = append(c.items, item)
	return c.save()
}

func (c *collection[T]) replace(index int, item T) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.items[index-1] = item
	return c.save()
}

func (c *collection[T]) remove(index int) (T, error) {
	var removed T
	if err := c.checkIndex(index); err != nil {
		return removed, err
	}
	removed = c.items[index-1]
	c.items = append(c.items[:index-1], c.items[index:]...)
	return removed, c.save()
}

func (c *collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}
