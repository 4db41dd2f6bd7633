// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package device

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/aktiv/internal/platform/config"
	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"

	stdctx "context"
)

// RefreshLimiter caps how often the push token is refreshed against the
// platform, across app restarts.
//
// Two layers: a persisted last-refresh date survives restarts, and an
// in-process limiter absorbs bursts within one run. Storage failures fail
// open — a skipped refresh costs more than a redundant one.
type RefreshLimiter struct {
	store    kvstore.Store
	limiter  *rate.Limiter
	interval time.Duration
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewRefreshLimiter creates a limiter allowing one refresh per the configured
// interval.
func NewRefreshLimiter(store kvstore.Store, cfg *config.Config, logger *slog.Logger) *RefreshLimiter {
	interval := cfg.NotifRefreshInterval
	if interval <= 0 {
		interval = constants.NotifRefreshInterval
	}
	return &RefreshLimiter{
		store:    store,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
		logger:   logger,
	}
}

/*
Allow reports whether a token refresh may run now, and records it when so.

Description: False when the persisted last-refresh date is within the
configured interval, or when the in-process limiter is exhausted. On true,
the current time is persisted as the new last-refresh date.

Parameters:
  - context: context.Context

Returns:
  - bool: Whether the caller should refresh now
*/
func (limiter *RefreshLimiter) Allow(context stdctx.Context) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	raw, err := limiter.store.Get(context, constants.KeyNotifLastRefreshDate)
	if err == nil {
		if last, perr := time.Parse(time.RFC3339, raw); perr == nil {
			if time.Since(last) < limiter.interval {
				return false
			}
		}
	} else if !kvstore.IsNotFound(err) {
		limiter.logger.Warn("notif_refresh_date_read_failed", slog.Any("error", err))
	}

	if !limiter.limiter.Allow() {
		return false
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := limiter.store.Set(context, constants.KeyNotifLastRefreshDate, now); err != nil {
		limiter.logger.Warn("notif_refresh_date_write_failed", slog.Any("error", err))
	}

	return true
}
