// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the Aktiv client core.

It provides a rich error type that bridges the gap between low-level transport/storage
errors and the session-state decisions built on top of them.

Architecture:

  - AppError: A struct containing a machine-readable ErrorCode and user-friendly messages.
  - Signals: Explicit carriers for backend facts (HTTP status, token-expiry flag) that
    downstream classification depends on.
  - Mapping: Explicit mapping from backend responses to AppError values.

Every error that leaves the backend client or a storage adapter should be wrapped as an
[AppError] (or a plain wrapped error for purely transient failures) so that the session
layer can classify it without string matching.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the canonical error type for the Aktiv client core.
//
// It carries an HTTP status code (when the error originated from the backend),
// a machine-readable code, and a user-safe message suitable for advisory UI.
//
// # Security
//
// The Cause field is for logging only and is never surfaced to the user to
// avoid leaking transport or storage internals.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "UNAUTHORIZED", "UNAVAILABLE").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the backend response status this error was derived from,
	// or zero when the error never reached the backend.
	HTTPStatus int `json:"-"`
	// TokenExpired marks the backend's explicit expired-credential signal,
	// which some endpoints report in the body rather than the status line.
	TokenExpired bool `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the user-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Session Errors

// Unauthorized creates a 401 [AppError]. This is the only error family that is
// allowed to destroy local session state.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenExpired creates a 401 [AppError] carrying the backend's explicit
// expired-token flag. Some endpoints report expiry in the response body with
// a 200 status line, so the flag is tracked independently of HTTPStatus.
func TokenExpired(msg string) *AppError {
	return &AppError{
		Code:         "TOKEN_EXPIRED",
		Message:      msg,
		HTTPStatus:   http.StatusUnauthorized,
		TokenExpired: true,
	}
}

// # Local Errors

// NotFound creates an [AppError] for a missing stored value.
//
// Example:
//
//	apperr.NotFound("Cached profile") // Returns "Cached profile not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// PermissionDenied creates an [AppError] for a platform permission the user
// declined. Terminal for the current attempt; never retried automatically.
func PermissionDenied(msg string) *AppError {
	return &AppError{
		Code:    "PERMISSION_DENIED",
		Message: msg,
	}
}

// # Transport Errors

// Unavailable creates an [AppError] for a backend failure response (5xx).
// Always classified as transient by the session layer.
func Unavailable(status int, cause error) *AppError {
	return &AppError{
		Code:       "UNAVAILABLE",
		Message:    fmt.Sprintf("Service responded with status %d", status),
		HTTPStatus: status,
		Cause:      cause,
	}
}

// Internal creates an [AppError] wrapping an unexpected local error.
// The cause is stored for logging but is never shown to the user.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsUnauthorized reports whether err carries a definitive credential-revocation
// signal: a 401 status or the backend's explicit token-expiry flag.
func IsUnauthorized(err error) bool {
	ae := As(err)
	if ae == nil {
		return false
	}
	return ae.TokenExpired || ae.HTTPStatus == http.StatusUnauthorized
}
