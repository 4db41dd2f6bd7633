// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"net/http"

	stdctx "context"
)

// # Push Registration Endpoint

type pushTokenRequest struct {
	Token          string `json:"token"`
	InstallationID string `json:"installation_id"`
	Platform       string `json:"platform"`
}

/*
SavePushToken upserts the device's push token against the current account.

POST /push-token

Description: Idempotent on the backend — repeating the call with the same
token is a no-op, so opportunistic re-syncs after late authentication are safe.

Parameters:
  - context: context.Context
  - authToken: string
  - deviceToken: string
  - installationID: string
  - platform: string

Returns:
  - error: Tagged revocation signal, or transport failures
*/
func (client *Client) SavePushToken(context stdctx.Context, authToken, deviceToken, installationID, platform string) error {
	_, err := client.do(context, http.MethodPost, "/push-token", authToken, pushTokenRequest{
		Token:          deviceToken,
		InstallationID: installationID,
		Platform:       platform,
	})
	return err
}
