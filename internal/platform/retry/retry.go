// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package retry encodes bounded retry-with-backoff as a policy value.

Instead of inlining retry loops at every call site, callers describe the
schedule as data and hand a fetch function to [Do]. The session layer's
background revalidation becomes policy + pure fetch rather than control flow.

Architecture:

  - Policy: {MaxAttempts, Backoff schedule, ShouldRetry predicate}.
  - Do: The single generic retrying caller. Respects context cancellation
    between attempts; never retries past the bounded attempt count.
*/
package retry

import (
	"context"
	"time"
)

// # Policy

// Policy describes a bounded retry schedule.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// Backoff is the pause schedule between attempts. Attempt N waits
	// Backoff[N-1]; schedules shorter than the attempt count repeat the
	// final entry. An empty schedule retries immediately.
	Backoff []time.Duration

	// ShouldRetry decides whether a failure is worth another attempt.
	// A nil predicate retries every failure. Definitive failures (explicit
	// credential revocation, permission denial) must return false here.
	ShouldRetry func(error) bool
}

// delay returns the pause to take after the given 1-based attempt.
func (policy Policy) delay(attempt int) time.Duration {
	if len(policy.Backoff) == 0 {
		return 0
	}
	if attempt > len(policy.Backoff) {
		return policy.Backoff[len(policy.Backoff)-1]
	}
	return policy.Backoff[attempt-1]
}

// # Execution

/*
Do invokes fn until it succeeds, the policy is exhausted, or the context ends.

Description: The last attempt's error is returned unwrapped so callers can
classify the terminal outcome exactly as fn reported it.

Parameters:
  - context: context.Context
  - policy: Policy
  - fn: func(context.Context) error

Returns:
  - error: nil on success, the final attempt's error, or the context's error
    when cancelled between attempts
*/
func Do(context context.Context, policy Policy, fn func(context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(context)
		if err == nil {
			return nil
		}

		// Definitive failures are surfaced immediately.
		if policy.ShouldRetry != nil && !policy.ShouldRetry(err) {
			return err
		}

		if attempt == attempts {
			break
		}

		if werr := wait(context, policy.delay(attempt)); werr != nil {
			return werr
		}
	}

	return err
}

// wait sleeps for the given duration or until the context ends.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// Still honor an already-cancelled context.
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
