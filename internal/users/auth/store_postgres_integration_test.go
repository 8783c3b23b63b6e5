// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package auth_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/testutil"
	"github.com/taibuivan/tasklist/internal/users/auth"
)

var database *testutil.PostgresContainer

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	database, err = testutil.StartPostgres(ctx)
	if err != nil {
		panic(err)
	}

	code := m.Run()
	database.Terminate(ctx)
	os.Exit(code)
}

/*
TestPostgresRepositories_Users covers create, lookups, update and the unique email.
*/
func TestPostgresRepositories_Users(t *testing.T) {
	ctx := context.Background()
	users := auth.NewUserRepository(database.Pool)
	store := auth.NewCredentialStore(users)

	user, err := store.Register(ctx, "pg-user@tasklist.app", "correct-horse")
	require.NoError(t, err)

	byEmail, err := users.FindByEmail(ctx, "pg-user@tasklist.app")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, user.PasswordHash, byEmail.PasswordHash)

	byID, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	// 1. Saving without a new password keeps the stored digest
	byID.Email = "pg-renamed@tasklist.app"
	require.NoError(t, store.Save(ctx, byID))
	reloaded, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, reloaded.PasswordHash)

	// 2. Unique index surfaces as DUPLICATE_EMAIL
	_, err = store.Register(ctx, "pg-renamed@tasklist.app", "correct-horse")
	assert.True(t, apperr.HasCode(err, apperr.CodeDuplicateEmail))

	// 3. Misses map to NOT_FOUND
	_, err = users.FindByEmail(ctx, "ghost@tasklist.app")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestPostgresRepositories_ConcurrentSessions appends sessions in parallel and
expects none to be lost.
*/
func TestPostgresRepositories_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	users := auth.NewUserRepository(database.Pool)
	sessions := auth.NewSessionRepository(database.Pool)
	ledger := auth.NewSessionLedger(users, sessions)

	user, err := auth.NewCredentialStore(users).Register(ctx, "pg-sessions@tasklist.app", "correct-horse")
	require.NoError(t, err)

	const logins = 8
	tokens := make([]string, logins)

	var wg sync.WaitGroup
	for i := 0; i < logins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Each goroutine holds its own copy, like separate requests would.
			copyOfUser := *user
			token, err := ledger.CreateSession(ctx, &copyOfUser)
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	stored, err := sessions.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, stored, logins)

	for _, token := range tokens {
		found, err := ledger.FindByUserAndToken(ctx, user.ID, token)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Len(t, found.Sessions, logins)
	}

	// Unknown user id violates the foreign key
	err = sessions.Append(ctx, "0190b5c4-7d3e-7c2a-9f1e-3b4c5d6e7f80", auth.Session{TokenHash: "x", ExpiresAt: 1})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
