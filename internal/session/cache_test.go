// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"
	"github.com/taibuivan/aktiv/internal/session"
)

/*
TestProfileCache_RoundTrip verifies write/read/purge of the durable record.
*/
func TestProfileCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	cache := session.NewProfileCache(store)

	user := session.User{FullName: "Mai Tran", Email: "mai@example.com", IsEmailVerified: true}

	// 1. Miss before any write
	_, err := cache.Read(ctx, "acct-A")
	assert.True(t, kvstore.IsNotFound(err))

	// 2. Write then read
	require.NoError(t, cache.Write(ctx, "acct-A", user))
	profile, err := cache.Read(ctx, "acct-A")
	require.NoError(t, err)
	assert.Equal(t, user, profile.User)
	assert.Equal(t, "acct-A", profile.AccountID)
	assert.False(t, profile.Timestamp.IsZero())

	// 3. Purge removes the record
	require.NoError(t, cache.Purge(ctx, "acct-A"))
	_, err = cache.Read(ctx, "acct-A")
	assert.True(t, kvstore.IsNotFound(err))
}

/*
TestProfileCache_AccountIsolation verifies that no profile written for account
A is ever returned for account B.
*/
func TestProfileCache_AccountIsolation(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	cache := session.NewProfileCache(store)

	require.NoError(t, cache.Write(ctx, "acct-A", session.User{FullName: "Account A"}))

	// 1. A different account never sees it
	_, err := cache.Read(ctx, "acct-B")
	assert.True(t, kvstore.IsNotFound(err))

	// 2. Even a payload planted under B's key is rejected when its embedded
	//    owner says A (ownership check beats key naming)
	planted, err := store.Get(ctx, constants.KeyProfileCachePrefix+"acct-A")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, constants.KeyProfileCachePrefix+"acct-B", planted))

	_, err = cache.Read(ctx, "acct-B")
	assert.True(t, kvstore.IsNotFound(err))
}

/*
TestProfileCache_MalformedPayload verifies that undecodable payloads read as
misses rather than errors.
*/
func TestProfileCache_MalformedPayload(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	cache := session.NewProfileCache(store)

	require.NoError(t, store.Set(ctx, constants.KeyProfileCachePrefix+"acct-A", "{not json"))

	_, err := cache.Read(ctx, "acct-A")
	assert.True(t, kvstore.IsNotFound(err))
}

/*
TestAccountScopedCache_EmptyAccount verifies guardrails around a missing identity.
*/
func TestAccountScopedCache_EmptyAccount(t *testing.T) {
	ctx := context.Background()
	scoped := session.NewAccountScopedCache(kvstore.NewMemoryStore(), "cache.test.")

	// Reads miss, writes fail, deletes are no-ops
	_, err := scoped.Get(ctx, "")
	assert.True(t, kvstore.IsNotFound(err))
	assert.Error(t, scoped.Put(ctx, "", "payload"))
	assert.NoError(t, scoped.Delete(ctx, ""))
}
