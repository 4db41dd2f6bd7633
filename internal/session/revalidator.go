// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"errors"
	"log/slog"

	"github.com/taibuivan/aktiv/internal/platform/retry"

	stdctx "context"
)

// # Contracts

// ProfileFetcher is the authoritative profile source the revalidator confirms
// against.
type ProfileFetcher interface {
	/*
		FetchProfile returns the profile the backend holds for the credential.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *User: Authoritative profile
		  - error: apperr-tagged revocation signals, or transient failures
	*/
	FetchProfile(context stdctx.Context, token string) (*User, error)
}

// # Background Revalidation

// Revalidator confirms the optimistic session against the backend with
// bounded retries. It performs the fetch only; state transitions stay with
// [Manager].
type Revalidator struct {
	fetcher ProfileFetcher
	policy  retry.Policy
	logger  *slog.Logger
}

// NewRevalidator builds a revalidator around the given fetch policy.
// The policy's ShouldRetry is overridden so definitive revocations and caller
// cancellation are never retried.
func NewRevalidator(fetcher ProfileFetcher, policy retry.Policy, logger *slog.Logger) *Revalidator {
	policy.ShouldRetry = retryable
	return &Revalidator{
		fetcher: fetcher,
		policy:  policy,
		logger:  logger,
	}
}

// retryable reports whether a fetch failure is worth another attempt.
func retryable(err error) bool {
	if errors.Is(err, stdctx.Canceled) {
		return false
	}
	return Classify(err) == OutcomeSoftKeep
}

/*
Run fetches the authoritative profile, retrying transient failures per policy.

Description: Transport and server errors are retried with the configured
backoff schedule; an explicit revocation signal is surfaced immediately.
The final attempt's error is returned as reported so the caller can classify
the terminal outcome.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: Fresh profile on success
  - error: The terminal failure after all attempts
*/
func (revalidator *Revalidator) Run(context stdctx.Context, token string) (*User, error) {
	var fetched *User

	err := retry.Do(context, revalidator.policy, func(attemptCtx stdctx.Context) error {
		user, err := revalidator.fetcher.FetchProfile(attemptCtx, token)
		if err != nil {
			revalidator.logger.Debug("profile_fetch_attempt_failed", slog.Any("error", err))
			return err
		}
		fetched = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fetched, nil
}
