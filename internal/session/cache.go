// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"

	stdctx "context"
)

// # Account-Scoped Cache

// AccountScopedCache derives storage keys from the current account identity
// and validates that stored payloads belong to that account.
//
// # Why scoping matters
//
// The store is shared per device, not per account. Without scoped keys and
// ownership checks, logging in with account B after account A could surface
// A's cached data — a leak, not just a staleness bug.
type AccountScopedCache struct {
	store   kvstore.Store
	baseKey string
}

// NewAccountScopedCache creates a cache namespace rooted at baseKey.
func NewAccountScopedCache(store kvstore.Store, baseKey string) *AccountScopedCache {
	return &AccountScopedCache{store: store, baseKey: baseKey}
}

// key derives the full storage key for one account.
func (cache *AccountScopedCache) key(accountID string) string {
	return cache.baseKey + accountID
}

/*
Get returns the raw payload stored for accountID.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - string: Raw payload
  - error: kvstore.ErrNotFound or retrieval failures
*/
func (cache *AccountScopedCache) Get(context stdctx.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", kvstore.ErrNotFound
	}
	return cache.store.Get(context, cache.key(accountID))
}

// Put stores the raw payload for accountID.
func (cache *AccountScopedCache) Put(context stdctx.Context, accountID string, payload string) error {
	if accountID == "" {
		return fmt.Errorf("session_cache_put_missing_account")
	}
	return cache.store.Set(context, cache.key(accountID), payload)
}

// Delete removes the payload stored for accountID.
func (cache *AccountScopedCache) Delete(context stdctx.Context, accountID string) error {
	if accountID == "" {
		return nil
	}
	return cache.store.Delete(context, cache.key(accountID))
}

// # Profile Cache

// ProfileCache stores and retrieves the durable [CachedProfile] record.
//
// # Ownership
//
// Exclusively written by [Manager]; read by [Manager] and by the recovery
// path inside the revalidator. Entries never expire; they are purged only on
// a confirmed invalid token or a token-less startup.
type ProfileCache struct {
	scoped *AccountScopedCache
}

// NewProfileCache creates the profile cache over the given store.
func NewProfileCache(store kvstore.Store) *ProfileCache {
	return &ProfileCache{
		scoped: NewAccountScopedCache(store, constants.KeyProfileCachePrefix),
	}
}

/*
Read returns the cached profile for accountID.

Description: A payload whose embedded owner does not match accountID is
rejected as a miss — a mismatched profile must never be surfaced, whatever
the key said. Malformed payloads are also treated as misses.

Parameters:
  - context: context.Context
  - accountID: string

Returns:
  - *CachedProfile: Hydrated record
  - error: kvstore.ErrNotFound or retrieval failures
*/
func (cache *ProfileCache) Read(context stdctx.Context, accountID string) (*CachedProfile, error) {
	payload, err := cache.scoped.Get(context, accountID)
	if err != nil {
		return nil, err
	}

	var profile CachedProfile
	if err := json.Unmarshal([]byte(payload), &profile); err != nil {
		return nil, kvstore.ErrNotFound
	}

	// Ownership check: invariant over key naming.
	if profile.AccountID != accountID {
		return nil, kvstore.ErrNotFound
	}

	return &profile, nil
}

/*
Write overwrites the cached profile for accountID with a fresh payload.

Parameters:
  - context: context.Context
  - accountID: string
  - user: User

Returns:
  - error: Persistence failures
*/
func (cache *ProfileCache) Write(context stdctx.Context, accountID string, user User) error {
	profile := CachedProfile{
		AccountID: accountID,
		User:      user,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("session_cache_encode_failed: %w", err)
	}

	return cache.scoped.Put(context, accountID, string(payload))
}

// Purge removes the cached profile for accountID. Called on a confirmed
// invalid token and on a token-less startup, never on expiry. Logout leaves
// the entry in place so the same account's next login renders instantly.
func (cache *ProfileCache) Purge(context stdctx.Context, accountID string) error {
	return cache.scoped.Delete(context, accountID)
}
