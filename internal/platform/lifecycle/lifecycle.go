// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lifecycle models the lifetime of an owning UI component.

Background work launched by the core (profile revalidation, the late-auth
device check) can outlive the screen that started it. A [Scope] is the
explicit cancellation token that replaces the implicit "mounted" flag: it is
checked before every caller-visible state mutation, and timers bound to it are
cleared on teardown.

Updates arriving after teardown are silently discarded rather than erroring;
a torn-down screen is a normal condition, not a failure.
*/
package lifecycle

import (
	"context"
	"time"
)

// Scope is a cancellation token for one component lifetime.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScope creates a live [Scope] derived from the parent context.
// Cancelling the parent tears the scope down as well.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the context that async work launched under this scope
// should run against.
func (scope *Scope) Context() context.Context {
	return scope.ctx
}

// Active reports whether the owning component is still alive. Async
// continuations must check this before mutating caller-visible state.
func (scope *Scope) Active() bool {
	return scope.ctx.Err() == nil
}

// Cancel tears the scope down. Idempotent.
func (scope *Scope) Cancel() {
	scope.cancel()
}

/*
AfterFunc schedules fn to run once after delay, bound to the scope's lifetime.

Description: The timer is cleared automatically on teardown; fn never fires
against a dead scope. The returned stop function cancels the timer early and
reports whether it did so before fn ran.

Parameters:
  - delay: time.Duration
  - fn: func()

Returns:
  - func() bool: Early-cancel handle
*/
func (scope *Scope) AfterFunc(delay time.Duration, fn func()) func() bool {
	timer := time.AfterFunc(delay, func() {
		if scope.Active() {
			fn()
		}
	})

	// Clear the timer when the scope is torn down before it fires.
	unbind := context.AfterFunc(scope.ctx, func() {
		timer.Stop()
	})

	return func() bool {
		unbind()
		return timer.Stop()
	}
}
