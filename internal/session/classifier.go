// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "github.com/taibuivan/aktiv/internal/platform/apperr"

// # Failure Classification

// Outcome is the terminal classification of a failed profile fetch.
type Outcome int

const (
	// OutcomeSoftKeep preserves token, cache, and in-memory user. Applied to
	// every failure without an explicit revocation signal: network unreachable,
	// timeout, 5xx, malformed response, unexpected exception.
	OutcomeSoftKeep Outcome = iota

	// OutcomeHardInvalidate destroys token, cache, and in-memory user. Applied
	// only to a definitive unauthorized/expired-token signal from the backend.
	OutcomeHardInvalidate
)

// String returns the outcome name for logging.
func (outcome Outcome) String() string {
	if outcome == OutcomeHardInvalidate {
		return "hard_invalidate"
	}
	return "soft_keep"
}

/*
Classify maps a profile-fetch failure to exactly one outcome.

Description: HardInvalidate iff the error carries an explicit unauthorized or
expired-token signal (status 401 or the endpoint's tokenExpired flag).
Everything else is SoftKeep. The asymmetry is deliberate: a user is never
logged out because the network had a bad moment, but a definitive server-side
revocation is honored.

Parameters:
  - err: error

Returns:
  - Outcome: OutcomeHardInvalidate or OutcomeSoftKeep
*/
func Classify(err error) Outcome {
	if apperr.IsUnauthorized(err) {
		return OutcomeHardInvalidate
	}
	return OutcomeSoftKeep
}
