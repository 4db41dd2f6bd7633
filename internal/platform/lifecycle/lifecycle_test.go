// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lifecycle_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/aktiv/internal/platform/lifecycle"
)

/*
TestScope_Teardown verifies the active flag and idempotent cancellation.
*/
func TestScope_Teardown(t *testing.T) {
	scope := lifecycle.NewScope(context.Background())

	assert.True(t, scope.Active())
	assert.NoError(t, scope.Context().Err())

	scope.Cancel()
	assert.False(t, scope.Active())
	assert.ErrorIs(t, scope.Context().Err(), context.Canceled)

	// Idempotent
	scope.Cancel()
	assert.False(t, scope.Active())
}

/*
TestScope_ParentCancellation verifies that tearing down the parent context
tears the scope down as well.
*/
func TestScope_ParentCancellation(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	scope := lifecycle.NewScope(parent)

	cancel()
	assert.False(t, scope.Active())
}

/*
TestScope_AfterFunc verifies that scope-bound timers fire while alive and are
cleared on teardown.
*/
func TestScope_AfterFunc(t *testing.T) {
	t.Run("fires_while_alive", func(t *testing.T) {
		scope := lifecycle.NewScope(context.Background())
		defer scope.Cancel()

		fired := make(chan struct{})
		scope.AfterFunc(5*time.Millisecond, func() { close(fired) })

		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatal("timer did not fire on a live scope")
		}
	})

	t.Run("cleared_on_teardown", func(t *testing.T) {
		scope := lifecycle.NewScope(context.Background())

		var fired atomic.Bool
		scope.AfterFunc(10*time.Millisecond, func() { fired.Store(true) })

		scope.Cancel()
		time.Sleep(30 * time.Millisecond)
		assert.False(t, fired.Load())
	})

	t.Run("early_stop", func(t *testing.T) {
		scope := lifecycle.NewScope(context.Background())
		defer scope.Cancel()

		var fired atomic.Bool
		stop := scope.AfterFunc(10*time.Millisecond, func() { fired.Store(true) })

		assert.True(t, stop())
		time.Sleep(30 * time.Millisecond)
		assert.False(t, fired.Load())
	})
}
