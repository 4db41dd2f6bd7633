// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package device_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/aktiv/internal/device"
	"github.com/taibuivan/aktiv/internal/platform/config"
	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"
)

func TestRefreshLimiter_AllowsOncePerInterval(t *testing.T) {
	store := kvstore.NewMemoryStore()
	limiter := device.NewRefreshLimiter(store, &config.Config{NotifRefreshInterval: time.Hour}, testLogger())

	assert.True(t, limiter.Allow(context.Background()))
	assert.False(t, limiter.Allow(context.Background()))

	// The grant left a persisted refresh date behind.
	raw, err := store.Get(context.Background(), constants.KeyNotifLastRefreshDate)
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, raw)
	require.NoError(t, err)
}

/*
TestRefreshLimiter_PersistsAcrossInstances verifies the restart guard: a new
limiter on the same store still sees the recent refresh and declines.
*/
func TestRefreshLimiter_PersistsAcrossInstances(t *testing.T) {
	store := kvstore.NewMemoryStore()

	first := device.NewRefreshLimiter(store, &config.Config{NotifRefreshInterval: time.Hour}, testLogger())
	require.True(t, first.Allow(context.Background()))

	second := device.NewRefreshLimiter(store, &config.Config{NotifRefreshInterval: time.Hour}, testLogger())
	assert.False(t, second.Allow(context.Background()))
}

func TestRefreshLimiter_StaleDateAllows(t *testing.T) {
	store := kvstore.NewMemoryStore()
	stale := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)
	require.NoError(t, store.Set(context.Background(), constants.KeyNotifLastRefreshDate, stale))

	limiter := device.NewRefreshLimiter(store, &config.Config{NotifRefreshInterval: time.Hour}, testLogger())
	assert.True(t, limiter.Allow(context.Background()))
}

/*
TestRefreshLimiter_FailsOpenOnStorageError verifies a broken store never
blocks the refresh; the in-process limiter still applies.
*/
func TestRefreshLimiter_FailsOpenOnStorageError(t *testing.T) {
	store := kvstore.NewMemoryStore()
	store.FailReads = errors.New("storage corrupt")
	store.FailWrites = errors.New("storage corrupt")

	limiter := device.NewRefreshLimiter(store, &config.Config{NotifRefreshInterval: time.Hour}, testLogger())
	assert.True(t, limiter.Allow(context.Background()))
	assert.False(t, limiter.Allow(context.Background()))
}
