// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/internal/testutil"
	"github.com/taibuivan/tasklist/internal/users/auth"
)

type fakeClock struct{ current time.Time }

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

// fixture wires the auth components over in-memory stores and a fake clock.
type fixture struct {
	clock       *fakeClock
	users       *testutil.Users
	sessions    *testutil.Sessions
	credentials *auth.CredentialStore
	ledger      *auth.SessionLedger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &fakeClock{current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	users := testutil.NewUsers()
	sessions := testutil.NewSessions(users)

	return &fixture{
		clock:       clock,
		users:       users,
		sessions:    sessions,
		credentials: auth.NewCredentialStore(users),
		ledger:      auth.NewSessionLedger(users, sessions, auth.WithLedgerClock(clock.Now)),
	}
}

func (f *fixture) register(t *testing.T, email string) *auth.User {
	t.Helper()

	user, err := f.credentials.Register(context.Background(), email, "correct-horse")
	require.NoError(t, err)
	return user
}

/*
TestSessionLedger_CreateSession checks token shape, expiry and the stored digest.
*/
func TestSessionLedger_CreateSession(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "tai@tasklist.app")

	token, err := f.ledger.CreateSession(context.Background(), user)
	require.NoError(t, err)

	// 1. 64 random bytes, hex encoded
	assert.Len(t, token, 2*constants.RefreshTokenBytes)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	// 2. Appended with a ten day expiry, digest only
	require.Len(t, user.Sessions, 1)
	assert.Equal(t, f.clock.current.Add(10*24*time.Hour).Unix(), user.Sessions[0].ExpiresAt)
	assert.Equal(t, sec.HashToken(token), user.Sessions[0].TokenHash)
	assert.NotEqual(t, token, user.Sessions[0].TokenHash)
	assert.Equal(t, 1, f.sessions.Count(user.ID))
}

/*
TestSessionLedger_FindByUserAndToken verifies lookups by exact token and user id.
*/
func TestSessionLedger_FindByUserAndToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	user := f.register(t, "tai@tasklist.app")
	other := f.register(t, "other@tasklist.app")

	first, err := f.ledger.CreateSession(ctx, user)
	require.NoError(t, err)
	second, err := f.ledger.CreateSession(ctx, user)
	require.NoError(t, err)

	// 1. Either token resolves to the user with every session hydrated
	for _, token := range []string{first, second} {
		found, err := f.ledger.FindByUserAndToken(ctx, user.ID, token)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)
		assert.Len(t, found.Sessions, 2)
	}

	// 2. A one character change matches nothing
	mutated := []byte(first)
	if mutated[len(mutated)-1] == 'a' {
		mutated[len(mutated)-1] = 'b'
	} else {
		mutated[len(mutated)-1] = 'a'
	}

	tests := []struct {
		name   string
		userID string
		token  string
	}{
		{"mutated token", user.ID, string(mutated)},
		{"other user", other.ID, first},
		{"empty token", user.ID, ""},
		{"malformed user id", "not-a-uuid", first},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := f.ledger.FindByUserAndToken(ctx, tt.userID, tt.token)
			assert.NoError(t, err)
			assert.Nil(t, found)
		})
	}
}

/*
TestIsExpired checks the boundary: a session expiring now is already expired.
*/
func TestIsExpired(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)

	assert.True(t, auth.IsExpired(now.Unix(), now))
	assert.True(t, auth.IsExpired(now.Unix()-1, now))
	assert.False(t, auth.IsExpired(now.Unix()+1, now))

	f := newFixture(t)
	assert.True(t, f.ledger.IsExpired(f.clock.current.Unix()))
	assert.False(t, f.ledger.IsExpired(f.clock.current.Add(time.Minute).Unix()))
}
