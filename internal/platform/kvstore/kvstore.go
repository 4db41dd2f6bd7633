// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package kvstore defines the durable key-value substrate the client core is built on.

Everything the core persists — the auth token, account-scoped profile caches,
first-run flags, the notification refresh date — goes through the [Store]
interface. The host application supplies whichever implementation matches its
platform; the core never assumes more than per-key read/write with no transactions.

Implementations:

  - MemoryStore: mutex-guarded map, the embedded default and the test substrate.
  - RedisStore: go-redis backed, for hosted and desktop deployments that share
    client state through a Redis instance.

A read of an absent key returns [ErrNotFound]; callers that treat storage
failures as cache misses (the session layer does) can branch on it with
[IsNotFound].
*/
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by [Store.Get] when the key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// # Storage Contract

// Store is the durable per-key read/write contract.
//
// # Concurrency
//
// Implementations must be safe for concurrent use. The core performs
// sequential read-modify-write from a single logical owner per key, so no
// cross-key transactionality is required.
type Store interface {

	/*
		Get returns the value stored under key.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - string: Stored value
		  - error: ErrNotFound when absent, or retrieval failures
	*/
	Get(context context.Context, key string) (string, error)

	/*
		Set stores value under key, overwriting any previous value.

		Parameters:
		  - context: context.Context
		  - key: string
		  - value: string

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, key string, value string) error

	/*
		Delete removes the value stored under key. Deleting an absent key is not an error.

		Parameters:
		  - context: context.Context
		  - key: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, key string) error
}

// IsNotFound reports whether err indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
