// Copyright (c) 2026 Aktiv. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/aktiv/internal/platform/apperr"
	"github.com/taibuivan/aktiv/internal/session"
)

/*
TestClassify covers the full failure taxonomy: only an explicit revocation
signal is fatal for session state.
*/
func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want session.Outcome
	}{
		{"explicit_401", apperr.Unauthorized("Session is no longer valid"), session.OutcomeHardInvalidate},
		{"token_expired_flag", apperr.TokenExpired("Session has expired"), session.OutcomeHardInvalidate},
		{"wrapped_401", fmt.Errorf("fetch: %w", apperr.Unauthorized("nope")), session.OutcomeHardInvalidate},
		{"server_error", apperr.Unavailable(503, nil), session.OutcomeSoftKeep},
		{"network_unreachable", errors.New("dial tcp: connection refused"), session.OutcomeSoftKeep},
		{"timeout", context.DeadlineExceeded, session.OutcomeSoftKeep},
		{"malformed_response", fmt.Errorf("backend_decode_failed: unexpected EOF"), session.OutcomeSoftKeep},
		{"unexpected_internal", apperr.Internal(errors.New("boom")), session.OutcomeSoftKeep},
		{"missing_resource", apperr.NotFound("Cached profile"), session.OutcomeSoftKeep},
		{"permission_denied", apperr.PermissionDenied("Notifications declined"), session.OutcomeSoftKeep},
		{"nil_error", nil, session.OutcomeSoftKeep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.Classify(tt.err))
		})
	}
}
