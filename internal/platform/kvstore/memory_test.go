// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aktiv/internal/platform/kvstore"
)

/*
TestMemoryStore_RoundTrip verifies basic Get/Set/Delete behavior.
*/
func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	// 1. A missing key reports ErrNotFound
	_, err := store.Get(ctx, "auth.token")
	assert.True(t, kvstore.IsNotFound(err))

	// 2. Set then Get returns the stored value
	require.NoError(t, store.Set(ctx, "auth.token", "tok-1"))
	value, err := store.Get(ctx, "auth.token")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", value)

	// 3. Overwrite is last-write-wins
	require.NoError(t, store.Set(ctx, "auth.token", "tok-2"))
	value, _ = store.Get(ctx, "auth.token")
	assert.Equal(t, "tok-2", value)

	// 4. Delete removes the key; deleting again is not an error
	require.NoError(t, store.Delete(ctx, "auth.token"))
	_, err = store.Get(ctx, "auth.token")
	assert.True(t, kvstore.IsNotFound(err))
	assert.NoError(t, store.Delete(ctx, "auth.token"))
}

/*
TestMemoryStore_FaultInjection verifies the test-only failure hooks.
*/
func TestMemoryStore_FaultInjection(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	boom := errors.New("disk unavailable")

	require.NoError(t, store.Set(ctx, "k", "v"))

	// Injected read failure is returned verbatim and is NOT a not-found
	store.FailReads = boom
	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
	assert.False(t, kvstore.IsNotFound(err))

	// Injected write failure blocks Set and Delete
	store.FailReads = nil
	store.FailWrites = boom
	assert.ErrorIs(t, store.Set(ctx, "k", "v2"), boom)
	assert.ErrorIs(t, store.Delete(ctx, "k"), boom)

	// Previously stored value is untouched
	store.FailWrites = nil
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}
