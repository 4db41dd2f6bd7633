// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"log/slog"
	"sync"

	"github.com/taibuivan/aktiv/internal/platform/config"
	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/ctxutil"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"
	"github.com/taibuivan/aktiv/internal/platform/lifecycle"
	"github.com/taibuivan/aktiv/internal/platform/retry"
	"github.com/taibuivan/aktiv/internal/platform/sec"

	stdctx "context"
)

// # Contracts & Types

// Backend bundles the remote calls the session manager depends on.
type Backend interface {
	ProfileFetcher

	/*
		Logout invalidates the credential server-side. Best-effort: the caller
		swallows failures and proceeds with local logout regardless.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Transport failures (ignored by the caller)
	*/
	Logout(context stdctx.Context, token string) error
}

// Warmer lazily initializes a dependent feature cache once a fresh profile is
// confirmed. Fire-and-forget; errors are ignored.
type Warmer func(context stdctx.Context) error

// Manager owns the in-memory authentication state and orchestrates
// cache-first display with background revalidation.
//
// # Concurrency
//
// All state transitions run under one mutex; suspension points (store and
// network calls) sit outside it. Background continuations re-check the
// lifecycle scope before mutating caller-visible state, so work settling
// after teardown is silently discarded.
type Manager struct {
	store       kvstore.Store
	profiles    *ProfileCache
	backend     Backend
	revalidator *Revalidator
	scope       *lifecycle.Scope
	logger      *slog.Logger

	mu        sync.Mutex
	token     string
	accountID string
	user      *User
	confirmed bool
	warmers   []Warmer
}

// NewManager constructs a [Manager] with its collaborators.
//
// # Parameters
//   - store: The persistent key-value substrate.
//   - backend: Remote profile and logout endpoints.
//   - policy: Retry schedule for background revalidation.
//   - logger: Structured logger.
func NewManager(store kvstore.Store, backend Backend, policy retry.Policy, logger *slog.Logger) *Manager {
	return &Manager{
		store:       store,
		profiles:    NewProfileCache(store),
		backend:     backend,
		revalidator: NewRevalidator(backend, policy, logger),
		scope:       lifecycle.NewScope(stdctx.Background()),
		logger:      logger,
	}
}

// DefaultRetryPolicy is the production revalidation schedule: one initial
// attempt plus two retries, pausing 1s then 2s.
func DefaultRetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: constants.ProfileRetryAttempts,
		Backoff:     constants.ProfileRetryBackoff,
	}
}

// RetryPolicy derives the revalidation schedule from configuration, falling
// back to [DefaultRetryPolicy] for unset fields.
func RetryPolicy(cfg *config.Config) retry.Policy {
	policy := DefaultRetryPolicy()
	if cfg.ProfileRetryAttempts > 0 {
		policy.MaxAttempts = cfg.ProfileRetryAttempts
	}
	if len(cfg.ProfileRetryBackoff) > 0 {
		policy.Backoff = cfg.ProfileRetryBackoff
	}
	return policy
}

// RegisterWarmer adds a dependent feature-cache initializer invoked after
// every confirmed profile fetch.
func (manager *Manager) RegisterWarmer(warmer Warmer) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.warmers = append(manager.warmers, warmer)
}

// Close tears the manager down. In-flight revalidation is left to resolve;
// its result is discarded by the scope guard.
func (manager *Manager) Close() {
	manager.scope.Cancel()
}

// # Auth Status

/*
CheckAuthStatus resolves the current authentication state without blocking on
the network.

Description: Reads the stored token. Absent token: the last-known account's
cached profile is purged and the state is Unauthenticated. Present token: the
state is optimistically authenticated immediately; a cached profile (if any)
supplies the displayed identity, and background revalidation is kicked off
either way. Control returns to the caller before any network round-trip.

Parameters:
  - context: context.Context

Returns:
  - Status: Synchronous snapshot for the UI
*/
func (manager *Manager) CheckAuthStatus(context stdctx.Context) Status {
	token, err := manager.store.Get(context, constants.KeyAuthToken)
	if err != nil {
		if !kvstore.IsNotFound(err) {
			// Storage failure reads as token-absent.
			manager.logger.Warn("auth_token_read_failed", slog.Any("error", err))
		}
		token = ""
	}

	if token == "" {
		manager.becomeUnauthenticated(context)
		return manager.Snapshot()
	}

	accountID := sec.AccountID(token)

	manager.mu.Lock()
	manager.token = token
	manager.accountID = accountID
	manager.mu.Unlock()

	// Remembered so a later token-less startup can purge this account's cache.
	if err := manager.store.Set(context, constants.KeyLastAccountID, accountID); err != nil {
		manager.logger.Warn("last_account_write_failed", slog.Any("error", err))
	}

	// Cache-first display: a hit unblocks the UI with the stored identity;
	// a miss still unblocks it on the token alone.
	if cached, err := manager.profiles.Read(context, accountID); err == nil {
		manager.mu.Lock()
		if manager.user == nil {
			user := cached.User
			manager.user = &user
		}
		manager.mu.Unlock()
	} else if !kvstore.IsNotFound(err) {
		manager.logger.Warn("profile_cache_read_failed", slog.Any("error", err))
	}

	// Background confirmation, never awaited by the caller.
	go manager.Revalidate(manager.scope.Context())

	return manager.Snapshot()
}

// becomeUnauthenticated clears session state and purges the last-known
// account's cached profile.
func (manager *Manager) becomeUnauthenticated(context stdctx.Context) {
	manager.mu.Lock()
	accountID := manager.accountID
	manager.token = ""
	manager.user = nil
	manager.confirmed = false
	manager.mu.Unlock()

	// A fresh process has no in-memory account; fall back to the persisted one.
	if accountID == "" {
		if last, err := manager.store.Get(context, constants.KeyLastAccountID); err == nil {
			accountID = last
		}
	}

	if accountID != "" {
		if err := manager.profiles.Purge(context, accountID); err != nil {
			manager.logger.Warn("profile_cache_purge_failed", slog.Any("error", err))
		}
	}
}

// # Login / Logout

// Login sets the in-memory user after a successful external login call.
// Token persistence belongs to the login endpoint's caller; the profile cache
// is written by the next successful fetch.
func (manager *Manager) Login(user User) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.user = &user
}

/*
Logout ends the session locally after a best-effort remote revocation.

Description: The remote call's failure is swallowed — logout always succeeds
locally. The cached profile is intentionally preserved so a subsequent login
by the same account renders instantly before any network round-trip.

Parameters:
  - context: context.Context
*/
func (manager *Manager) Logout(context stdctx.Context) {
	manager.mu.Lock()
	token := manager.token
	manager.mu.Unlock()

	if token != "" {
		if err := manager.backend.Logout(context, token); err != nil {
			manager.logger.Debug("remote_logout_failed", slog.Any("error", err))
		}
	}

	if err := manager.store.Delete(context, constants.KeyAuthToken); err != nil {
		manager.logger.Warn("auth_token_delete_failed", slog.Any("error", err))
	}

	manager.mu.Lock()
	manager.token = ""
	manager.user = nil
	manager.confirmed = false
	manager.mu.Unlock()
}

// # Derived State

// IsAuthenticated reports whether the session counts as authenticated: a
// user is set OR a token exists. Never depends on cache freshness.
func (manager *Manager) IsAuthenticated() bool {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.user != nil || manager.token != ""
}

// Token returns the current credential, or "" when unauthenticated.
func (manager *Manager) Token() string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return manager.token
}

// Snapshot returns the current [Status] without touching storage or network.
func (manager *Manager) Snapshot() Status {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	status := Status{
		Authenticated: manager.user != nil || manager.token != "",
	}
	switch {
	case !status.Authenticated:
		status.State = StateUnauthenticated
	case manager.confirmed:
		status.State = StateConfirmed
	default:
		status.State = StateOptimistic
	}
	if manager.user != nil {
		user := *manager.user
		status.User = &user
	}
	return status
}

// # Background Confirmation

/*
Revalidate confirms the session against the backend and applies the resulting
state transition.

Description: Fetches the authoritative profile with bounded retries, then
settles on one of three outcomes. Success overwrites cache and in-memory user
and warms dependent feature caches. A definitive revocation clears token,
cache, and user — the only path that logs the user out automatically. Any
other failure leaves everything untouched, falling back to the cached profile
when no user was set yet. Runs on the manager's scope: results settling after
teardown are discarded.

Parameters:
  - context: context.Context
*/
func (manager *Manager) Revalidate(context stdctx.Context) {
	manager.mu.Lock()
	token := manager.token
	accountID := manager.accountID
	manager.mu.Unlock()

	if token == "" {
		return
	}

	// Identity travels with the context so transport logs can attribute it.
	context = ctxutil.WithAccountID(context, accountID)
	context = ctxutil.WithLogger(context, manager.logger.With(slog.String("account", accountID)))

	fresh, err := manager.revalidator.Run(context, token)

	// The owning component may be gone by the time the network settles.
	if !manager.scope.Active() {
		return
	}

	if err == nil {
		manager.applyFreshProfile(context, accountID, *fresh)
		return
	}

	switch Classify(err) {
	case OutcomeHardInvalidate:
		manager.logger.Info("session_revoked_by_backend", slog.String("account", accountID))
		manager.hardInvalidate(context, accountID)
	default:
		manager.logger.Debug("revalidation_soft_keep", slog.Any("error", err))
		manager.softKeep(context, accountID)
	}
}

// applyFreshProfile installs a confirmed profile: cache overwrite, in-memory
// user, and fire-and-forget warmers.
func (manager *Manager) applyFreshProfile(context stdctx.Context, accountID string, fresh User) {
	if err := manager.profiles.Write(context, accountID, fresh); err != nil {
		// A failed cache write degrades the next cold start, nothing else.
		manager.logger.Warn("profile_cache_write_failed", slog.Any("error", err))
	}

	manager.mu.Lock()
	manager.user = &fresh
	manager.confirmed = true
	warmers := manager.warmers
	manager.mu.Unlock()

	for _, warmer := range warmers {
		go func(warm Warmer) {
			_ = warm(manager.scope.Context())
		}(warmer)
	}
}

// hardInvalidate destroys all local session state: stored token, cached
// profile, in-memory user.
func (manager *Manager) hardInvalidate(context stdctx.Context, accountID string) {
	if err := manager.store.Delete(context, constants.KeyAuthToken); err != nil {
		manager.logger.Warn("auth_token_delete_failed", slog.Any("error", err))
	}
	if err := manager.profiles.Purge(context, accountID); err != nil {
		manager.logger.Warn("profile_cache_purge_failed", slog.Any("error", err))
	}

	manager.mu.Lock()
	manager.token = ""
	manager.user = nil
	manager.confirmed = false
	manager.mu.Unlock()
}

// softKeep leaves token and user untouched; when no user is set yet it makes
// a best-effort attempt to populate the display identity from cache.
func (manager *Manager) softKeep(context stdctx.Context, accountID string) {
	manager.mu.Lock()
	hasUser := manager.user != nil
	manager.mu.Unlock()

	if hasUser {
		return
	}

	cached, err := manager.profiles.Read(context, accountID)
	if err != nil {
		return
	}

	if !manager.scope.Active() {
		return
	}

	manager.mu.Lock()
	if manager.user == nil {
		user := cached.User
		manager.user = &user
	}
	manager.mu.Unlock()
}
