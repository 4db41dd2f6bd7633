// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"log/slog"

	"github.com/taibuivan/aktiv/internal/platform/constants"
	"github.com/taibuivan/aktiv/internal/platform/kvstore"

	stdctx "context"
)

// # First-Run Routing

// Route names the screen the app should open with.
type Route string

const (
	// RouteLanguageSelect is shown until the user picks a device language.
	RouteLanguageSelect Route = "language_select"

	// RouteSignup is shown to devices that never completed a signup.
	RouteSignup Route = "signup"

	// RouteLogin is shown to returning devices without a credential.
	RouteLogin Route = "login"

	// RouteDashboard is the authenticated (or guest-fallback) home screen.
	RouteDashboard Route = "dashboard"
)

/*
DetermineStartRoute classifies first-launch state into a start route.

Description: Consults the one-way flags and token presence, in order:
no language selected -> language select; language selected but never signed
up -> signup; signed up but no token -> login; token present -> dashboard.

Policy note: any unexpected storage error during classification falls back to
the guest dashboard rather than surfacing a failure. This mirrors long-standing
product behavior and is a deliberate policy decision, not a defensive default
to be "fixed" silently.

Parameters:
  - context: context.Context
  - store: kvstore.Store
  - logger: *slog.Logger

Returns:
  - Route: The screen to open with
*/
func DetermineStartRoute(context stdctx.Context, store kvstore.Store, logger *slog.Logger) Route {
	languageSelected, err := readFlag(context, store, constants.KeyDeviceLanguageSelected)
	if err != nil {
		logger.Warn("start_route_fallback", slog.Any("error", err))
		return RouteDashboard
	}
	if !languageSelected {
		return RouteLanguageSelect
	}

	hasSignedUp, err := readFlag(context, store, constants.KeyHasEverSignedUp)
	if err != nil {
		logger.Warn("start_route_fallback", slog.Any("error", err))
		return RouteDashboard
	}
	if !hasSignedUp {
		return RouteSignup
	}

	_, err = store.Get(context, constants.KeyAuthToken)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return RouteLogin
		}
		logger.Warn("start_route_fallback", slog.Any("error", err))
		return RouteDashboard
	}

	return RouteDashboard
}

// readFlag reads a one-way boolean flag. An absent key is false, not an error.
func readFlag(context stdctx.Context, store kvstore.Store, key string) (bool, error) {
	value, err := store.Get(context, key)
	if err != nil {
		if kvstore.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return value == "true" || value == "1", nil
}

// MarkFlag sets a one-way flag. Used by adjacent onboarding flows after
// signup completion or language selection.
func MarkFlag(context stdctx.Context, store kvstore.Store, key string) error {
	return store.Set(context, key, "true")
}
