// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the client-side session consistency layer.

It decides, at any moment, whether the user is considered authenticated, what
profile data to show while that is being confirmed, and when locally cached
identity must be destroyed — all without blocking the UI on the network.

# Architecture

This layer is the "Truth" of the client. It reconciles three independently
changing facts under one owner:

  - Token presence in the persistent store (optimistic authentication).
  - A durable per-account profile cache with no natural expiry.
  - The authoritative profile held by the backend, confirmed in the background.

The strong bias is "stay logged in": only an explicit credential revocation
from the backend may destroy session state. Bad network moments never do.
*/
package session

import "time"

// # Domain Entities

// User is the display-only projection of the account.
//
// The JSON tags follow the backend's camelCase wire convention; cache
// payloads round-trip through the same struct.
type User struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

// CachedProfile is the durable `{user, timestamp}` record stored per account.
//
// It has no expiry policy: a cached profile is valid until explicit
// invalidation (a confirmed invalid token, or a token-less startup purging
// the last-known account's entry). The embedded AccountID
// lets readers verify the payload belongs to the account being asked about.
type CachedProfile struct {
	AccountID string    `json:"accountId"`
	User      User      `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// # Session State

// State names the externally visible authentication state.
type State string

const (
	// StateUnauthenticated means no token and no user are present.
	StateUnauthenticated State = "unauthenticated"

	// StateOptimistic means a token exists and the UI may proceed while the
	// profile is confirmed in the background.
	StateOptimistic State = "optimistic"

	// StateConfirmed means the backend has confirmed the profile this run.
	StateConfirmed State = "confirmed"
)

// Status is the synchronous snapshot returned to UI callers. It never waits
// on the network.
type Status struct {
	State         State `json:"state"`
	Authenticated bool  `json:"authenticated"`
	// User is the best currently known identity: cached, confirmed, or nil.
	User *User `json:"user,omitempty"`
}
