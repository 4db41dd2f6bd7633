// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package device implements push-notification device registration and its
reconciliation against late-arriving authentication.

The registrar is triggered from at least two independent points — the initial
screen mount and a delayed late-auth check — so token acquisition is
single-flight: concurrent triggers share one platform registration and one
backend sync. The acquired token is never persisted; it is re-derived each
app run, and only its server-sync status matters.

# Architecture

  - Notifier: The platform notification boundary (channels, permission, token).
  - Registrar: Orchestrates acquire + sync, deduplicated and teardown-safe.
  - RefreshLimiter: Caps how often the token is refreshed across restarts.
*/
package device

import (
	"errors"

	stdctx "context"
)

// ErrPermissionDenied is returned when the user declines the notification
// permission. Terminal for the current attempt: surfaced as an advisory
// message, never retried automatically, and never treated as a session error.
var ErrPermissionDenied = errors.New("device: notification permission denied")

// Platform identifies the client platform reported to the backend.
const Platform = "mobile"

// # Platform Boundary

// Notifier is the platform notification service boundary.
type Notifier interface {

	/*
		EnsureConfigured performs one-time channel and handler setup.
		Idempotent: safe to call before every registration attempt.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Platform configuration failures
	*/
	EnsureConfigured(context stdctx.Context) error

	/*
		RequestPermission prompts for (or re-reads) the notification permission.

		Parameters:
		  - context: context.Context

		Returns:
		  - bool: Whether permission is granted
		  - error: Platform failures (distinct from a clean denial)
	*/
	RequestPermission(context stdctx.Context) (bool, error)

	/*
		AcquireToken obtains the push-registration token from the platform.

		Parameters:
		  - context: context.Context

		Returns:
		  - string: Opaque device token
		  - error: Platform failures
	*/
	AcquireToken(context stdctx.Context) (string, error)
}

// # Collaborator Contracts

// AuthState is the read-only view of session state the registrar consults.
// Implemented by the session manager.
type AuthState interface {
	// IsAuthenticated reports whether a token or an in-memory user exists.
	IsAuthenticated() bool

	// Token returns the current credential, or "" when unauthenticated.
	Token() string
}

// PushSyncer hands the acquired device token to the backend.
// Implemented by the backend client.
type PushSyncer interface {
	/*
		SavePushToken upserts the device token against the current account.

		Parameters:
		  - context: context.Context
		  - authToken: string
		  - deviceToken: string
		  - installationID: string
		  - platform: string

		Returns:
		  - error: Transport or revocation failures
	*/
	SavePushToken(context stdctx.Context, authToken, deviceToken, installationID, platform string) error
}
