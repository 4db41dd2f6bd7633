// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec resolves account identity from backend credentials.
//
// # Architecture
//
// The client never validates token signatures — that is the backend's job.
// What it does need is a stable per-account identifier to scope cached data,
// so that switching accounts on one device cannot leak a prior account's
// cached profile. This package extracts that identifier without trusting the
// token for anything else.
package sec

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v5"
)

// unverifiedParser decodes JWT payloads without signature verification.
// Claim extraction here is for cache scoping only, never for authorization.
var unverifiedParser = jwt.NewParser()

/*
AccountID resolves a stable account identity from an access token.

Description: For JWT credentials the registered `sub` claim (falling back to a
custom `uid` claim) identifies the account. Opaque non-JWT tokens are reduced
to a short digest, which still separates accounts as long as each account's
tokens differ — adequate for cache scoping on a single device.

Parameters:
  - token: string

Returns:
  - string: Account identifier, or "" for an empty token
*/
func AccountID(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(token, claims); err == nil {
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			return sub
		}
		if uid, ok := claims["uid"].(string); ok && uid != "" {
			return uid
		}
	}

	return digest(token)
}

// digest reduces an opaque token to a short stable identifier.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
