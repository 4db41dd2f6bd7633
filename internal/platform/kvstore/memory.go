// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kvstore

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] with a mutex-guarded in-process map.
//
// It is the embedded default when no hosted store is configured, and the
// substrate for every test in the core. Fault hooks let tests simulate the
// storage-read/write failures the session layer must absorb.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string

	// FailReads and FailWrites, when set, are returned verbatim from the
	// corresponding operations. Test-only fault injection.
	FailReads  error
	FailWrites error
}

// NewMemoryStore creates an empty in-memory [Store].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value stored under key, or [ErrNotFound].
func (store *MemoryStore) Get(context context.Context, key string) (string, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.FailReads != nil {
		return "", store.FailReads
	}

	value, ok := store.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores value under key.
func (store *MemoryStore) Set(context context.Context, key string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.FailWrites != nil {
		return store.FailWrites
	}

	store.data[key] = value
	return nil
}

// Delete removes the value stored under key.
func (store *MemoryStore) Delete(context context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.FailWrites != nil {
		return store.FailWrites
	}

	delete(store.data, key)
	return nil
}

// Len reports the number of stored keys. Test helper.
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.data)
}
