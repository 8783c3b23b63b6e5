// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/platform/sec"
	"github.com/taibuivan/tasklist/pkg/textnorm"
	"github.com/taibuivan/tasklist/pkg/uuid"
)

// CredentialStore owns user identity and the hashed secret.
type CredentialStore struct {
	users UserRepository
	now   func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialStore creates a new CredentialStore.
func NewCredentialStore(users UserRepository) *CredentialStore {
	return &CredentialStore{users: users, now: time.Now}
}

/*
Register validates and persists a new account.

Parameters:
  - context: context.Context
  - email: string
  - password: string (plaintext, discarded once hashed)

Returns:
  - *User: The saved user without sessions
  - error: apperr.ValidationError, apperr.DuplicateEmail or persistence failures
*/
func (store *CredentialStore) Register(context context.Context, email, password string) (*User, error) {
	user, err := NewUser(email, password)
	if err != nil {
		return nil, err
	}

	// 1. Fail early on a taken email; the unique index still guards the race
	existing, err := store.users.FindByEmail(context, user.Email)
	if err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, fmt.Errorf("credential_store_register_lookup_failed: %w", err)
	}
	if existing != nil {
		return nil, apperr.DuplicateEmail()
	}

	// 2. Hash and persist
	if err := store.Save(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
Verify resolves the user owning email and checks the supplied password.

Unknown emails and wrong passwords fail identically, and an unknown email still
costs one bcrypt comparison so response time does not reveal which it was.

Returns:
  - *User: The authenticated user without sessions
  - error: apperr.InvalidCredentials or retrieval failures
*/
func (store *CredentialStore) Verify(context context.Context, email, password string) (*User, error) {
	user, err := store.users.FindByEmail(context, textnorm.Email(email))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			sec.CheckPasswordHash(password, store.placeholderHash())
			return nil, apperr.InvalidCredentials()
		}
		return nil, fmt.Errorf("credential_store_verify_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	return user, nil
}

/*
Save persists user, hashing the password first if and only if it was modified.

Saving an unchanged user leaves PasswordHash byte-identical.

Returns:
  - error: apperr.DuplicateEmail, apperr.NotFound or persistence failures
*/
func (store *CredentialStore) Save(context context.Context, user *User) error {
	if user.PasswordModified() {
		hash, err := sec.HashPassword(*user.pendingSecret)
		if err != nil {
			return apperr.Internal(err)
		}
		user.PasswordHash = hash
		user.pendingSecret = nil
	}

	now := store.now()
	user.UpdatedAt = now

	if user.IsNew() {
		user.ID = uuid.New()
		user.CreatedAt = now
		if err := store.users.Create(context, user); err != nil {
			user.ID = ""
			return err
		}
		return nil
	}

	return store.users.Update(context, user)
}

// placeholderHash returns a bcrypt hash at the platform cost that matches no real password.
func (store *CredentialStore) placeholderHash() string {
	store.dummyOnce.Do(func() {
		token, err := sec.GenerateSecureToken(16)
		if err != nil {
			token = "tasklist-placeholder-secret"
		}
		store.dummyHash, _ = sec.HashPassword(token)
	})
	return store.dummyHash
}
