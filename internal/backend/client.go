// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package backend implements the HTTP client for the Aktiv API.

It covers the four endpoints the client core consumes — login, profile fetch,
logout, and push-token upsert — and maps their responses into the error
taxonomy the session layer classifies on.

Architecture:

  - Client: One http.Client with a bounded per-request timeout.
  - Signals: 401 statuses and body-level tokenExpired flags become tagged
    [apperr.AppError] values; transport failures stay plain wrapped errors.
  - Boundary: This package performs no retries and holds no state; retry
    policy and session transitions belong to the session layer.
*/
package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/aktiv/internal/platform/apperr"
	"github.com/taibuivan/aktiv/internal/platform/config"
	"github.com/taibuivan/aktiv/internal/platform/ctxutil"
	"github.com/taibuivan/aktiv/internal/session"

	stdctx "context"
)

// # Definitions & Constructors

// Client talks to the Aktiv backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a [Client] from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// # Wire Types

// envelope is the common response shape of the Aktiv API. Endpoints report
// credential expiry either through the status line or through body flags.
type envelope struct {
	Success      bool            `json:"success"`
	StatusCode   int             `json:"statusCode,omitempty"`
	TokenExpired bool            `json:"tokenExpired,omitempty"`
	Message      string          `json:"message,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type profileData struct {
	User session.User `json:"user"`
}

// # Authentication Endpoints

/*
Login exchanges credentials for a token and profile.

POST /login

Description: On success the caller is expected to persist the token and invoke
the session manager's Login with the returned user.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - string: Opaque credential
  - *session.User: Authenticated profile
  - error: apperr.Unauthorized on rejected credentials, or transport failures
*/
func (client *Client) Login(context stdctx.Context, email, password string) (string, *session.User, error) {
	env, err := client.do(context, http.MethodPost, "/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return "", nil, err
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", nil, fmt.Errorf("backend_login_decode_failed: %w", err)
	}

	return data.Token, &data.User, nil
}

/*
FetchProfile returns the authoritative profile for the credential.

GET /profile

Description: The endpoint reports credential expiry either as a 401 status or
as a tokenExpired/statusCode flag in a 200 body; both are mapped to a tagged
unauthorized error so classification needs no transport knowledge.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *session.User: Authoritative profile
  - error: Tagged revocation signal, or transient transport/server failures
*/
func (client *Client) FetchProfile(context stdctx.Context, token string) (*session.User, error) {
	env, err := client.do(context, http.MethodGet, "/profile", token, nil)
	if err != nil {
		return nil, err
	}

	var data profileData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("backend_profile_decode_failed: %w", err)
	}

	return &data.User, nil
}

/*
Logout invalidates the credential server-side.

POST /logout

Description: Best-effort by contract — the session layer swallows failures
and always completes logout locally.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Transport failures
*/
func (client *Client) Logout(context stdctx.Context, token string) error {
	_, err := client.do(context, http.MethodPost, "/logout", token, nil)
	return err
}

// # Transport

// do issues one JSON request and maps the response into the error taxonomy.
func (client *Client) do(ctx stdctx.Context, method, path, token string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend_encode_failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("backend_request_build_failed: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		// Timeouts and unreachable hosts land here. Transient by definition.
		client.logger.Debug("backend_request_failed",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("backend_request_failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	switch {
	case response.StatusCode == http.StatusUnauthorized:
		return nil, apperr.Unauthorized("Session is no longer valid")
	case response.StatusCode >= http.StatusInternalServerError:
		return nil, apperr.Unavailable(response.StatusCode, nil)
	case response.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("backend_unexpected_status: %d", response.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(response.Body).Decode(&env); err != nil {
		// A malformed body is a server hiccup, never a revocation.
		return nil, fmt.Errorf("backend_decode_failed: %w", err)
	}

	// Body-level expiry signals take precedence over the 200 status line.
	if env.TokenExpired || env.StatusCode == http.StatusUnauthorized {
		// The context logger carries the resolved account when the session
		// layer initiated the call.
		ctxutil.GetLogger(ctx).Debug("backend_token_expired_signal",
			slog.String("path", path),
			slog.String("account", ctxutil.GetAccountID(ctx)),
		)
		return nil, apperr.TokenExpired("Session has expired")
	}

	if !env.Success {
		return nil, fmt.Errorf("backend_rejected_request: %s", env.Message)
	}

	return &env, nil
}
