// Package cache holds full-table snapshots of the durable store. Every read
// path in the server is served from these snapshots; the store is only
// touched by Refresh, which swaps in a complete replacement snapshot after a
// successful mutation.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Loader re-reads one entire entity table from the durable store.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Cache holds the last known complete snapshot of one entity table.
//
// Readers are lock-free: Snapshot loads an atomic pointer and always observes
// either the old complete snapshot or the new one, never a partial state.
// Refresh holds a mutex across the store read and the swap, so overlapping
// refreshes are serialized and a refresh that returned can never be
// overwritten by one that started earlier.
type Cache[T any] struct {
	name string
	load Loader[T]

	mu   sync.Mutex          // serializes whole refreshes; readers never take it
	snap atomic.Pointer[[]T] // nil until the first successful refresh
}

// New creates a cache for one entity table. The cache is empty until the
// first Refresh; the registry refreshes every cache at startup.
func New[T any](name string, load Loader[T]) *Cache[T] {
	return &Cache[T]{name: name, load: load}
}

// Name returns the cache's entity name, used in errors and logs.
func (c *Cache[T]) Name() string {
	return c.name
}

// Refresh re-reads the entire table and atomically replaces the snapshot.
// If the store read fails the previous snapshot is retained and the error is
// returned to the caller; the cache is never emptied by a failed refresh.
//
// The mutex is held across the store read, not just the swap: a goroutine
// descheduled between its load returning and the swap could otherwise
// overwrite a newer snapshot with an older one, and a mutation's own refresh
// must stay visible once Refresh returns. Readers are unaffected since
// Snapshot never takes the mutex.
//
// The store read is detached from the caller's cancellation: once a mutation
// has been written, the refresh must run to completion or leave the prior
// snapshot intact, not stop halfway because the request went away.
func (c *Cache[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.load(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("refresh %s cache: %w", c.name, err)
	}

	c.snap.Store(&rows)
	return nil
}

// Snapshot returns the current snapshot. Callers must treat it as immutable;
// it is shared by every concurrent reader until the next refresh replaces it.
// Returns nil before the first successful refresh.
func (c *Cache[T]) Snapshot() []T {
	p := c.snap.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Len returns the number of rows in the current snapshot.
func (c *Cache[T]) Len() int {
	return len(c.Snapshot())
}

// Find returns the first snapshot row matching pred.
func Find[T any](c *Cache[T], pred func(T) bool) (T, bool) {
	for _, row := range c.Snapshot() {
		if pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// Exists reports whether any snapshot row matches pred.
func Exists[T any](c *Cache[T], pred func(T) bool) bool {
	_, ok := Find(c, pred)
	return ok
}

// Select returns all snapshot rows matching pred, preserving snapshot order.
func Select[T any](c *Cache[T], pred func(T) bool) []T {
	var out []T
	for _, row := range c.Snapshot() {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}
