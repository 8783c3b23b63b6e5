// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/platform/validate"
)

// SessionLedger records refresh sessions and resolves users by refresh token.
//
// Sessions are only ever appended. Expired entries stay in place and are
// rejected at validation time.
type SessionLedger struct {
	users    UserRepository
	sessions SessionRepository
	now      func() time.Time
	ttl      time.Duration
}

// LedgerOption customises a [SessionLedger].
type LedgerOption func(*SessionLedger)

// WithLedgerClock replaces the wall clock used for expiry decisions.
func WithLedgerClock(now func() time.Time) LedgerOption {
	return func(ledger *SessionLedger) {
		ledger.now = now
	}
}

// NewSessionLedger creates a ledger issuing sessions that live for [constants.RefreshTokenTTL].
func NewSessionLedger(users UserRepository, sessions SessionRepository, opts ...LedgerOption) *SessionLedger {
	ledger := &SessionLedger{
		users:    users,
		sessions: sessions,
		now:      time.Now,
		ttl:      constants.RefreshTokenTTL,
	}
	for _, opt := range opts {
		opt(ledger)
	}
	return ledger
}

/*
CreateSession appends a fresh session to user and returns the raw refresh token.

The raw token is returned exactly once; only its digest is stored.

Returns:
  - string: 128 hex characters
  - error: Persistence failures
*/
func (ledger *SessionLedger) CreateSession(context context.Context, user *User) (string, error) {
	token, err := sec.GenerateSecureToken(constants.RefreshTokenBytes)
	if err != nil {
		return "", apperr.Internal(err)
	}

	session := Session{
		TokenHash: sec.HashToken(token),
		ExpiresAt: ledger.now().Add(ledger.ttl).Unix(),
	}

	if err := ledger.sessions.Append(context, user.ID, session); err != nil {
		return "", fmt.Errorf("session_ledger_append_failed: %w", err)
	}

	user.Sessions = append(user.Sessions, session)

	return token, nil
}

/*
FindByUserAndToken returns the user identified by userID if they hold a session
for token, hydrated with all of their sessions. It returns (nil, nil) when no
such user/session pair exists, including for malformed ids.

Returns:
  - *User: Hydrated user or nil
  - error: Retrieval failures only
*/
func (ledger *SessionLedger) FindByUserAndToken(context context.Context, userID, token string) (*User, error) {
	if token == "" || !validate.IsUUID(userID) {
		return nil, nil
	}

	found, err := ledger.sessions.Exists(context, userID, sec.HashToken(token))
	if err != nil {
		return nil, fmt.Errorf("session_ledger_lookup_failed: %w", err)
	}
	if !found {
		return nil, nil
	}

	user, err := ledger.users.FindByID(context, userID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session_ledger_user_lookup_failed: %w", err)
	}

	sessions, err := ledger.sessions.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("session_ledger_list_failed: %w", err)
	}
	user.Sessions = sessions

	return user, nil
}

// IsExpired reports whether expiresAt (epoch seconds) is at or before the ledger's now.
func (ledger *SessionLedger) IsExpired(expiresAt int64) bool {
	return IsExpired(expiresAt, ledger.now())
}

// IsExpired reports whether expiresAt (epoch seconds) is at or before now.
func IsExpired(expiresAt int64, now time.Time) bool {
	return expiresAt <= now.Unix()
}
