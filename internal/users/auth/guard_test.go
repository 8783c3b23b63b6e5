// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/users/auth"
)

type gateRecorder struct{ outcomes []string }

func (r *gateRecorder) ObserveGate(gate, outcome string) {
	r.outcomes = append(r.outcomes, gate+":"+outcome)
}

/*
TestGuard_ValidateSession walks a session through valid, expired and unknown.
*/
func TestGuard_ValidateSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	recorder := &gateRecorder{}
	guard := auth.NewGuard(f.ledger, recorder)

	user := f.register(t, "tai@tasklist.app")
	token, err := f.ledger.CreateSession(ctx, user)
	require.NoError(t, err)

	// 1. Fresh session is accepted
	admitted, err := guard.ValidateSession(ctx, user.ID, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, admitted.ID)

	// 2. One second before expiry still valid
	f.clock.Advance(constants.RefreshTokenTTL - time.Second)
	_, err = guard.ValidateSession(ctx, user.ID, token)
	require.NoError(t, err)

	// 3. At expiry the session is found but rejected
	f.clock.Advance(time.Second)
	_, err = guard.ValidateSession(ctx, user.ID, token)
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))

	// 4. An unknown token is a different failure
	_, err = guard.ValidateSession(ctx, user.ID, "deadbeef")
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionNotFound))

	assert.Equal(t, []string{
		"refresh_session:accepted",
		"refresh_session:accepted",
		"refresh_session:expired",
		"refresh_session:not_found",
	}, recorder.outcomes)
}

/*
TestGuard_NewSessionAfterExpiry checks that an expired session does not shadow a
later valid one.
*/
func TestGuard_NewSessionAfterExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	guard := auth.NewGuard(f.ledger, nil)

	user := f.register(t, "tai@tasklist.app")
	stale, err := f.ledger.CreateSession(ctx, user)
	require.NoError(t, err)

	f.clock.Advance(constants.RefreshTokenTTL + time.Hour)
	fresh, err := f.ledger.CreateSession(ctx, user)
	require.NoError(t, err)

	_, err = guard.ValidateSession(ctx, user.ID, stale)
	assert.True(t, apperr.HasCode(err, apperr.CodeSessionExpired))

	admitted, err := guard.ValidateSession(ctx, user.ID, fresh)
	require.NoError(t, err)
	assert.Len(t, admitted.Sessions, 2)
}

/*
TestGuard_RequireSession verifies the middleware headers and context values.
*/
func TestGuard_RequireSession(t *testing.T) {
	f := newFixture(t)
	guard := auth.NewGuard(f.ledger, nil)

	user := f.register(t, "tai@tasklist.app")
	token, err := f.ledger.CreateSession(context.Background(), user)
	require.NoError(t, err)

	var seenUserID, seenToken string
	var seenUser *auth.User
	handler := guard.RequireSession(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seenUserID = ctxutil.GetUserID(request.Context())
		seenToken = ctxutil.GetRefreshToken(request.Context())
		seenUser = auth.SessionUser(request.Context())
		writer.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		userID     string
		token      string
		wantStatus int
	}{
		{"valid", user.ID, token, http.StatusNoContent},
		{"missing headers", "", "", http.StatusUnauthorized},
		{"wrong token", user.ID, token[:len(token)-1], http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderUserID, tt.userID)
			request.Header.Set(constants.HeaderRefreshToken, tt.token)
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}

	assert.Equal(t, user.ID, seenUserID)
	assert.Equal(t, token, seenToken)
	require.NotNil(t, seenUser)
	assert.Equal(t, user.Email, seenUser.Email)
}
