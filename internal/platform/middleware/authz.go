// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"errors"
	"net/http"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/ctxutil"
	"github.com/taibuivan/tasklist/internal/platform/respond"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

// TokenVerifier verifies an access token without touching storage.
//
// Declared here so the gate can be exercised with a stub in tests.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// GateObserver is notified of every gate decision. It may be nil.
type GateObserver interface {
	ObserveGate(gate, outcome string)
}

// Gate names and outcomes reported to a [GateObserver].
const (
	GateAccess  = "access_token"
	GateSession = "refresh_session"

	OutcomeAccepted = "accepted"
	OutcomeMissing  = "missing"
	OutcomeExpired  = "expired"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
)

// RequireAccessToken is the stateless gate.
//
// # Flow
//  1. Read the `x-access-token` header.
//  2. Verify signature and expiry via [TokenVerifier].
//  3. Attach the resolved user id to the request context.
//
// Any failure ends the request with 401 and TOKEN_INVALID or TOKEN_EXPIRED.
func RequireAccessToken(verifier TokenVerifier, observer GateObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := request.Header.Get(constants.HeaderAccessToken)
			if token == "" {
				Observe(observer, GateAccess, OutcomeMissing)
				respond.Error(writer, request, apperr.TokenInvalid("access token is required"))
				return
			}

			userID, err := verifier.VerifyAccessToken(token)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					Observe(observer, GateAccess, OutcomeExpired)
					respond.Error(writer, request, apperr.TokenExpired())
					return
				}
				Observe(observer, GateAccess, OutcomeInvalid)
				respond.Error(writer, request, apperr.TokenInvalid(sec.ErrTokenInvalid.Error()).WithCause(err))
				return
			}

			Observe(observer, GateAccess, OutcomeAccepted)
			ctx := ctxutil.WithUserID(request.Context(), userID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// Observe reports a gate decision to observer, which may be nil.
func Observe(observer GateObserver, gate, outcome string) {
	if observer != nil {
		observer.ObserveGate(gate, outcome)
	}
}
