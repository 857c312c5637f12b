// Package repository owns the in-memory AppData aggregate and serializes all
// access to it.
//
// The aggregate is the single source of truth. Readers see it under a lock;
// writers get a deep copy, mutate that, and the copy replaces the original
// only after the store accepted it. The lock is the mutual-exclusion
// boundary required when several sessions share one process: the whole
// read-check-mutate sequence of a payment runs inside one Update call.
package repository

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/dmitrijs2005/patentcert/internal/store"
)

type Aggregate struct {
	mu    sync.Mutex
	store store.Store
	data  *models.AppData
}

// Open loads the persisted document (or the seed) and wraps it.
// A corrupt document surfaces here and must abort startup.
func Open(ctx context.Context, s store.Store) (*Aggregate, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Aggregate{store: s, data: data}, nil
}

// View runs fn with read access to the current aggregate. fn must not
// retain or mutate the value; copy out what is needed.
func (a *Aggregate) View(fn func(data *models.AppData)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(a.data)
}

// Update runs fn against a deep copy of the aggregate, persists the copy,
// and only then makes it current. If fn or the save fails, the in-memory
// and persisted state both stay at the previous document: the mutation is
// committed entirely or not at all.
func (a *Aggregate) Update(ctx context.Context, fn func(data *models.AppData) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.data.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.CurrentUser = nil
	if err := a.store.Save(ctx, next); err != nil {
		return err
	}
	a.data = next
	return nil
}

// Reset erases the stored document and reloads, bringing the aggregate back
// to the seed.
func (a *Aggregate) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.Reset(ctx); err != nil {
		return err
	}
	data, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	a.data = data
	return nil
}
