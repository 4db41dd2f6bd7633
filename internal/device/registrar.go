// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package device

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/aktiv/internal/platform/config"
	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/flight"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"
	"github.com/taibuivan/aktiv/internal/platform/lifecycle"
	"github.com/taibuivan/aktiv/pkg/uuid"

	stdctx "context"
)

// Registrar owns the device-registration lifecycle for one component mount.
//
// # Concurrency
//
// Token acquisition is single-flight: however many triggers fire, at most one
// platform registration and one backend sync run at a time, and every caller
// observes the same settled result. The late-auth timer and all background
// work are bound to a lifecycle scope cancelled by [Registrar.Close].
type Registrar struct {
	notifier Notifier
	syncer   PushSyncer
	auth     AuthState
	store    kvstore.Store
	scope    *lifecycle.Scope
	logger   *slog.Logger

	lateDelay time.Duration
	slot      flight.Slot[string]

	mu        sync.Mutex
	token     string
	synced    bool
	stopTimer func() bool
}

// NewRegistrar constructs a [Registrar] with its collaborators.
//
// # Parameters
//   - notifier: Platform notification boundary.
//   - syncer: Backend push-token endpoint.
//   - auth: Read-only session state.
//   - store: Persistent store (installation ID).
//   - cfg: Runtime configuration (late-auth check delay).
//   - logger: Structured logger.
func NewRegistrar(notifier Notifier, syncer PushSyncer, auth AuthState, store kvstore.Store, cfg *config.Config, logger *slog.Logger) *Registrar {
	lateDelay := cfg.LateAuthCheckDelay
	if lateDelay <= 0 {
		lateDelay = constants.LateAuthCheckDelay
	}
	return &Registrar{
		notifier:  notifier,
		syncer:    syncer,
		auth:      auth,
		store:     store,
		scope:     lifecycle.NewScope(stdctx.Background()),
		logger:    logger,
		lateDelay: lateDelay,
	}
}

// Close cancels the late-auth timer and tears the registrar down. An
// in-flight registration is left to resolve; its result is discarded.
func (registrar *Registrar) Close() {
	registrar.mu.Lock()
	stop := registrar.stopTimer
	registrar.mu.Unlock()

	if stop != nil {
		stop()
	}
	registrar.scope.Cancel()
}

// # Registration

/*
RegisterDevice acquires the device's push token and syncs it to the backend
when authentication allows.

Description: Single-flight — if a registration is already outstanding, this
call joins it and returns the shared result instead of starting a second
platform call. Permission denial is terminal for the attempt and reported
upward for user messaging. On success the token is synced only if a session
currently exists; otherwise it is held in memory for the late-auth check.

Parameters:
  - context: context.Context

Returns:
  - string: The device token, or "" when none was obtained
  - error: ErrPermissionDenied, platform failures, or transport failures
*/
func (registrar *Registrar) RegisterDevice(context stdctx.Context) (string, error) {
	token, joined, err := registrar.slot.Do(context, func() (string, error) {
		// The flight runs on the registrar's scope so a joined caller's
		// cancellation cannot abort work other callers are waiting on.
		return registrar.register(registrar.scope.Context())
	})
	if joined {
		registrar.logger.Debug("device_registration_joined_existing_flight")
	}
	return token, err
}

// register is the single-flight body: configure, permission, acquire, sync.
func (registrar *Registrar) register(ctx stdctx.Context) (string, error) {
	if err := registrar.notifier.EnsureConfigured(ctx); err != nil {
		return "", fmt.Errorf("device_configure_failed: %w", err)
	}

	granted, err := registrar.notifier.RequestPermission(ctx)
	if err != nil {
		return "", fmt.Errorf("device_permission_check_failed: %w", err)
	}
	if !granted {
		return "", ErrPermissionDenied
	}

	token, err := registrar.notifier.AcquireToken(ctx)
	if err != nil {
		return "", fmt.Errorf("device_token_acquire_failed: %w", err)
	}

	if !registrar.scope.Active() {
		// Torn down mid-flight: discard silently.
		return token, nil
	}

	registrar.mu.Lock()
	registrar.token = token
	registrar.synced = false
	registrar.mu.Unlock()

	// Hand-off sync only once a session exists; otherwise the token is held
	// in memory and the late-auth check retries opportunistically.
	if registrar.auth.IsAuthenticated() {
		registrar.sync(ctx)
	} else {
		registrar.logger.Debug("device_token_held_awaiting_auth")
	}

	return token, nil
}

// sync pushes the held token to the backend and records the outcome. A
// failed sync keeps the token held so a later check can retry.
func (registrar *Registrar) sync(ctx stdctx.Context) {
	registrar.mu.Lock()
	token := registrar.token
	synced := registrar.synced
	registrar.mu.Unlock()

	if token == "" || synced {
		return
	}

	installationID := registrar.installationID(ctx)
	authToken := registrar.auth.Token()

	if err := registrar.syncer.SavePushToken(ctx, authToken, token, installationID, Platform); err != nil {
		registrar.logger.Warn("push_token_sync_failed", slog.Any("error", err))
		return
	}

	if !registrar.scope.Active() {
		return
	}

	registrar.mu.Lock()
	registrar.synced = true
	registrar.mu.Unlock()

	registrar.logger.Info("push_token_synced", slog.String("installation_id", installationID))
}

// installationID returns the per-install device identifier, creating and
// persisting one on first use. A failed write only costs ID stability across
// restarts, so it is logged and ignored.
func (registrar *Registrar) installationID(ctx stdctx.Context) string {
	if id, err := registrar.store.Get(ctx, constants.KeyInstallationID); err == nil && id != "" {
		return id
	}

	id := uuid.New()
	if err := registrar.store.Set(ctx, constants.KeyInstallationID, id); err != nil {
		registrar.logger.Warn("installation_id_persist_failed", slog.Any("error", err))
	}
	return id
}

// # Late-Auth Reconciliation

/*
ScheduleLateAuthCheck arms the one-shot delayed re-read of authentication
state.

Description: Closes the race where login completes slightly after the first
registration attempt. When the timer fires: authenticated with a held,
unsynced token -> sync it; authenticated with no token and no flight
outstanding -> start a fresh registration. The timer is cancelled on teardown.
*/
func (registrar *Registrar) ScheduleLateAuthCheck() {
	stop := registrar.scope.AfterFunc(registrar.lateDelay, registrar.lateAuthCheck)

	registrar.mu.Lock()
	registrar.stopTimer = stop
	registrar.mu.Unlock()
}

// lateAuthCheck runs once on the armed timer.
func (registrar *Registrar) lateAuthCheck() {
	ctx := registrar.scope.Context()

	if !registrar.auth.IsAuthenticated() {
		return
	}

	registrar.mu.Lock()
	token := registrar.token
	synced := registrar.synced
	registrar.mu.Unlock()

	switch {
	case token != "" && !synced:
		registrar.sync(ctx)
	case token == "" && !registrar.slot.InFlight():
		if _, err := registrar.RegisterDevice(ctx); err != nil {
			registrar.logger.Debug("late_auth_registration_failed", slog.Any("error", err))
		}
	}
}

// Synced reports whether the held token has been confirmed by the backend.
func (registrar *Registrar) Synced() bool {
	registrar.mu.Lock()
	defer registrar.mu.Unlock()
	return registrar.synced
}
