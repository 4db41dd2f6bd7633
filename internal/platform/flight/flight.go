// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package flight provides a single-slot shared future for deduplicating work.

When an operation can be triggered from several independent points (the device
registrar fires on mount and again on a delayed late-auth check), all callers
must observe one underlying execution rather than issuing duplicates. A
[Slot] holds at most one outstanding call; late arrivals join it and receive
the same settled result.

Architecture:

  - Slot[T]: acquire-or-join semantics. The first caller runs the computation;
    concurrent callers block on the shared result.
  - Settlement: The slot is cleared when the call settles (success or failure),
    regardless of how many logical callers triggered it.
*/
package flight

import (
	"context"
	"sync"
)

// call is one outstanding execution shared by every joined caller.
type call[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Slot is a single-slot shared future.
//
// # Concurrency
//
// Safe for concurrent use. The zero value is ready.
type Slot[T any] struct {
	mu      sync.Mutex
	current *call[T]
	waiting int
}

/*
Do executes fn, or joins the outstanding execution if one exists.

Description: Acquire-or-join. Exactly one fn runs at a time; every caller that
arrives while it is outstanding receives the same value and error. A joining
caller whose context ends before settlement gets its context's error, but the
underlying execution is left to resolve for the remaining callers.

Parameters:
  - context: context.Context
  - fn: func() (T, error)

Returns:
  - T: Settled value
  - bool: true when this caller joined an existing flight
  - error: fn's error, or the joining caller's context error
*/
func (slot *Slot[T]) Do(context context.Context, fn func() (T, error)) (T, bool, error) {
	slot.mu.Lock()

	if existing := slot.current; existing != nil {
		// Counted before unlocking: once waiting, this caller is committed
		// to the outstanding call's result.
		slot.waiting++
		slot.mu.Unlock()

		value, joined, err := join(context, existing)

		slot.mu.Lock()
		slot.waiting--
		slot.mu.Unlock()
		return value, joined, err
	}

	current := &call[T]{done: make(chan struct{})}
	slot.current = current
	slot.mu.Unlock()

	current.value, current.err = fn()

	// Clear the slot before signalling so a caller arriving after settlement
	// starts a fresh flight instead of reading a stale result.
	slot.mu.Lock()
	slot.current = nil
	slot.mu.Unlock()

	close(current.done)
	return current.value, false, current.err
}

// join blocks on an outstanding call until it settles or ctx ends.
func join[T any](ctx context.Context, c *call[T]) (T, bool, error) {
	select {
	case <-c.done:
		return c.value, true, c.err
	case <-ctx.Done():
		var zero T
		return zero, true, ctx.Err()
	}
}

// InFlight reports whether an execution is currently outstanding.
func (slot *Slot[T]) InFlight() bool {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.current != nil
}

// Waiting reports how many callers are joined to the outstanding execution.
// Zero when no flight is outstanding.
func (slot *Slot[T]) Waiting() int {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.waiting
}
