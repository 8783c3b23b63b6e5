// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// # Safety
//
// Using a private, unexported type for keys prevents collisions with third-party
// packages that might also use context for storage.
package ctxkey

// key is an unexported type used for context keys.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUserID is the context key for the identity resolved by either auth gate.
	KeyUserID key = "user_id"

	// KeySessionUser is the context key for the user record loaded by the stateful gate.
	KeySessionUser key = "session_user"

	// KeyRefreshToken is the context key for the refresh token accepted by the stateful gate.
	KeyRefreshToken key = "refresh_token"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
