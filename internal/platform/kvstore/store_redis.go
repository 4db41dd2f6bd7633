// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package kvstore

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/aktiv/internal/platform/constants"
	platformredis "github.com/taibuivan/aktiv/internal/platform/redis"

	stdctx "context"
)

// RedisStore implements [Store] on top of a Redis client.
//
// Hosted and desktop deployments use it to share client state across
// processes. Keys are namespaced under a common prefix so a shared instance
// can serve multiple concerns without collisions.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromURL dials the instance named by [config.Config.RedisURL]
// and wraps it in a [RedisStore]. Connectivity is verified before returning.
func NewRedisStoreFromURL(context stdctx.Context, redisURL string, logger *slog.Logger) (*RedisStore, error) {
	client, err := platformredis.NewClient(context, redisURL, logger)
	if err != nil {
		return nil, err
	}
	return NewRedisStore(client), nil
}

/*
Get retrieves the value stored under key.

Description: Returns ErrNotFound when the key is absent, so callers can treat
missing and expired entries uniformly.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - string: Stored value
  - error: ErrNotFound or connectivity errors
*/
func (store *RedisStore) Get(context stdctx.Context, key string) (string, error) {

	// Namespace under the shared client-state prefix
	value, err := store.client.Get(context, constants.RedisPrefixClientState+key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis_state_get_failed: %w", err)
	}

	// Return the stored value
	return value, nil
}

/*
Set stores value under key with no expiration.

Description: Client state has no natural expiry; entries live until an
explicit Delete.

Parameters:
  - context: context.Context
  - key: string
  - value: string

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Set(context stdctx.Context, key string, value string) error {

	// Persist with no TTL: durability is the point of this store
	if err := store.client.Set(context, constants.RedisPrefixClientState+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis_state_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Delete removes the value stored under key.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context stdctx.Context, key string) error {

	// Delete the namespaced key
	if err := store.client.Del(context, constants.RedisPrefixClientState+key).Err(); err != nil {
		return fmt.Errorf("redis_state_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
