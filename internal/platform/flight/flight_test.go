// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package flight_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aktiv/internal/platform/flight"
)

/*
TestSlot_SingleExecution verifies that N concurrent callers share exactly one
underlying execution and observe the same result.
*/
func TestSlot_SingleExecution(t *testing.T) {
	var slot flight.Slot[string]
	var executions atomic.Int32

	started := make(chan struct{})
	release := make(chan struct{})

	// First caller holds the flight open
	var wg sync.WaitGroup
	results := make([]string, 5)
	joins := make([]bool, 5)

	wg.Add(1)
	go func() {
		defer wg.Done()
		value, joined, err := slot.Do(context.Background(), func() (string, error) {
			executions.Add(1)
			close(started)
			<-release
			return "device-token-1", nil
		})
		require.NoError(t, err)
		results[0], joins[0] = value, joined
	}()

	<-started

	// Four late arrivals join the same flight
	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			value, joined, err := slot.Do(context.Background(), func() (string, error) {
				executions.Add(1)
				return "duplicate", nil
			})
			require.NoError(t, err)
			results[i], joins[i] = value, joined
		}(i)
	}

	// Every late arrival must be joined to the flight before it settles;
	// otherwise a straggler would legitimately start a fresh flight.
	assert.True(t, slot.InFlight())
	require.Eventually(t, func() bool { return slot.Waiting() == 4 }, 2*time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), executions.Load())
	for i, value := range results {
		assert.Equal(t, "device-token-1", value)
		if i > 0 {
			assert.True(t, joins[i], "late caller %d should have joined", i)
		}
	}
	assert.False(t, joins[0])
	assert.False(t, slot.InFlight())
	assert.Equal(t, 0, slot.Waiting())
}

/*
TestSlot_SharedFailure verifies that a failed flight propagates the same error
to every joined caller and then clears the slot.
*/
func TestSlot_SharedFailure(t *testing.T) {
	var slot flight.Slot[int]
	boom := errors.New("platform rejected registration")

	_, joined, err := slot.Do(context.Background(), func() (int, error) {
		return 0, boom
	})
	assert.False(t, joined)
	assert.ErrorIs(t, err, boom)

	// Slot cleared on settlement: the next caller starts a fresh flight
	value, joined, err := slot.Do(context.Background(), func() (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.False(t, joined)
	assert.Equal(t, 7, value)
}

/*
TestSlot_JoinCancellation verifies that a joining caller can bail out without
disturbing the underlying execution.
*/
func TestSlot_JoinCancellation(t *testing.T) {
	var slot flight.Slot[string]

	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _, _ = slot.Do(context.Background(), func() (string, error) {
			close(started)
			<-release
			return "settled", nil
		})
	}()

	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, joined, err := slot.Do(ctx, func() (string, error) {
		t.Fatal("joined caller must never start a second execution")
		return "", nil
	})
	assert.True(t, joined)
	assert.ErrorIs(t, err, context.Canceled)

	// The original flight still settles normally
	close(release)
}
