// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"net/http"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/ctxkey"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/middleware"
	"github.com/taibuivan/tasklist/internal/platform/respond"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

// Guard is the stateful gate: a refresh token plus the claimed user id.
type Guard struct {
	ledger   *SessionLedger
	observer middleware.GateObserver
}

// NewGuard creates a new Guard. observer may be nil.
func NewGuard(ledger *SessionLedger, observer middleware.GateObserver) *Guard {
	return &Guard{ledger: ledger, observer: observer}
}

/*
ValidateSession resolves the user for a refresh token.

A match on the token is necessary but not sufficient: the matching session's
expiry is checked independently.

Returns:
  - *User: Hydrated user holding a live session for token
  - error: apperr.SessionNotFound, apperr.SessionExpired or retrieval failures
*/
func (guard *Guard) ValidateSession(context context.Context, userID, refreshToken string) (*User, error) {
	user, err := guard.ledger.FindByUserAndToken(context, userID, refreshToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		middleware.Observe(guard.observer, middleware.GateSession, middleware.OutcomeNotFound)
		return nil, apperr.SessionNotFound()
	}

	tokenHash := sec.HashToken(refreshToken)
	for _, session := range user.Sessions {
		if sec.TokenHashEqual(session.TokenHash, tokenHash) && !guard.ledger.IsExpired(session.ExpiresAt) {
			middleware.Observe(guard.observer, middleware.GateSession, middleware.OutcomeAccepted)
			return user, nil
		}
	}

	middleware.Observe(guard.observer, middleware.GateSession, middleware.OutcomeExpired)
	return nil, apperr.SessionExpired()
}

// RequireSession gates a route on the `x-refresh-token` and `_id` headers.
//
// On success the user id, the user record and the refresh token are attached
// to the request context.
func (guard *Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		refreshToken := request.Header.Get(constants.HeaderRefreshToken)
		userID := request.Header.Get(constants.HeaderUserID)

		user, err := guard.ValidateSession(request.Context(), userID, refreshToken)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		ctx := ctxutil.WithUserID(request.Context(), user.ID)
		ctx = ctxutil.WithRefreshToken(ctx, refreshToken)
		ctx = context.WithValue(ctx, ctxkey.KeySessionUser, user)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// SessionUser returns the user attached by [Guard.RequireSession], or nil.
func SessionUser(ctx context.Context) *User {
	user, _ := ctx.Value(ctxkey.KeySessionUser).(*User)
	return user
}
