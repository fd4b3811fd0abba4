// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// collection is a JSON array on disk. Every write rewrites the whole file.
type collection[T any] struct {
	mu       sync.RWMutex
	items    []*T
	filename string
}

func newCollection[T any](filename string, seed []*T) (*collection[T], error) {
	c := &collection[T]{filename: filename}
	found, err := c.loadFromFile()
	if err != nil {
		return nil, err
	}
	if !found && len(seed) > 0 {
		c.items = seed
		if err := c.saveToFile(context.Background()); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// snapshot decodes a private copy of every item so callers never share
// memory with the store.
func (c *collection[T]) snapshot(span trace.Span, keep func(*T) bool) ([]*T, error) {
	span.AddEvent("RLock")
	c.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer c.mu.RUnlock()

	var res []*T
	for _, item := range c.items {
		if keep != nil && !keep(item) {
			continue
		}
		cp, err := clone(item)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		res = append(res, cp)
	}
	return res, nil
}

// find returns a copy of the first matching item.
func (c *collection[T]) find(span trace.Span, match func(*T) bool) (*T, bool, error) {
	span.AddEvent("RLock")
	c.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if match(item) {
			cp, err := clone(item)
			return cp, true, err
		}
	}
	return nil, false, nil
}

// update runs fn under the write lock and persists the result if fn
// succeeds. On failure the in-memory state is restored.
func (c *collection[T]) update(ctx context.Context, span trace.Span, fn func(items []*T) ([]*T, error)) error {
	span.AddEvent("Lock")
	c.mu.Lock()
	defer span.AddEvent("Unlock")
	defer c.mu.Unlock()

	prev := c.items
	next, err := fn(append([]*T(nil), c.items...))
	if err != nil {
		span.RecordError(err)
		return err
	}
	c.items = next
	if err := c.saveToFile(ctx); err != nil {
		c.items = prev
		return err
	}
	return nil
}

func clone[T any](in *T) (*T, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	out := new(T)
	return out, json.Unmarshal(data, out)
}

// saveToFile saves the current collection to the JSON file.
func (c *collection[T]) saveToFile(ctx context.Context) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "SaveToFile")
	defer span.End()

	items := c.items
	if items == nil {
		items = []*T{}
	}
	fileData, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		span.RecordError(err)
		return err
	}

	err = os.WriteFile(c.filename, fileData, 0644)
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// loadFromFile loads the collection from the JSON file and reports whether
// the file existed.
func (c *collection[T]) loadFromFile() (bool, error) {
	if _, err := os.Stat(c.filename); os.IsNotExist(err) {
		return false, nil
	}

	fileData, err := os.ReadFile(c.filename)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return true, json.Unmarshal(fileData, &c.items)
}
