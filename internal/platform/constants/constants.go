// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the client core.

It defines default timeouts, retry schedules, and cross-cutting storage keys that
are shared between different layers of the system.

Categories:

  - Storage Keys: Stable names of values in the persistent key-value store.
  - Session Timing: Revalidation retry schedule and backend timeouts.
  - Device Registration: Late-auth reconciliation delay.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "aktiv-core"
	AppVersion = "0.1.0-dev"
)

// # Storage Keys

const (
	// KeyAuthToken stores the opaque backend credential. Its presence alone
	// implies optimistic authentication.
	KeyAuthToken = "auth.token"

	// KeyProfileCachePrefix prefixes account-scoped cached-profile entries.
	// The full key is KeyProfileCachePrefix + accountID.
	KeyProfileCachePrefix = "cache.profile."

	// KeyLastAccountID remembers the most recently resolved account so that a
	// startup without a token can purge that account's stale cached profile.
	KeyLastAccountID = "account.lastKnown"

	// KeyHasEverSignedUp is a one-way flag set after the first completed signup.
	KeyHasEverSignedUp = "flag.hasEverSignedUp"

	// KeyDeviceLanguageSelected is a one-way flag set once the user picks a language.
	KeyDeviceLanguageSelected = "flag.deviceLanguageSelected"

	// KeyNotifLastRefreshDate stores the RFC 3339 timestamp of the last
	// notification-token refresh, for cross-restart rate limiting.
	KeyNotifLastRefreshDate = "notif.lastRefreshDate"

	// KeyInstallationID stores the per-install device identifier sent
	// alongside the push token.
	KeyInstallationID = "device.installationId"
)

// # Session Timing

const (
	// DefaultRequestTimeout bounds every backend call.
	DefaultRequestTimeout = 10 * time.Second

	// ProfileRetryAttempts is the total number of profile fetch attempts
	// (one initial try plus two retries).
	ProfileRetryAttempts = 3
)

// ProfileRetryBackoff is the pause schedule between revalidation attempts.
var ProfileRetryBackoff = []time.Duration{1 * time.Second, 2 * time.Second}

// # Device Registration

const (
	// LateAuthCheckDelay is how long after mount the registrar re-reads
	// authentication state to catch logins that completed after its first attempt.
	LateAuthCheckDelay = 1500 * time.Millisecond

	// NotifRefreshInterval is the minimum interval between push-token refreshes.
	NotifRefreshInterval = 24 * time.Hour
)

// # Redis Prefixes (hosted key-value store)

const (
	RedisPrefixClientState = "client:state:"
)
