// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements user identity and refresh sessions.

# Components

  - [CredentialStore]: registers users and verifies email/password pairs.
  - [SessionLedger]: appends refresh sessions and resolves them by token.
  - [Guard]: the stateful gate in front of access-token renewal.
  - [Service]: orchestrates the three for the HTTP handlers.

Access tokens are minted and verified by [sec.TokenService]; the stateless gate
lives in the platform middleware package.
*/
package auth

import (
	"strings"
	"time"

	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/validate"
	"github.com/taibuivan/tasklist/pkg/textnorm"
)

// # Domain Entities

// User is a registered account together with its refresh sessions.
//
// The JSON form is what clients see: the password hash and the sessions are
// never serialised.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Sessions     []Session `json:"-"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	// pendingSecret holds a plaintext password until the next save hashes it.
	pendingSecret *string
}

// Session is one outstanding refresh grant.
//
// Only the SHA-256 digest of the token is kept. ExpiresAt is in epoch seconds.
type Session struct {
	TokenHash string `json:"-"`
	ExpiresAt int64  `json:"-"`
}

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUserID   = "_id"
)

// passwordMaxLength is the bcrypt input limit in bytes; longer secrets would be silently truncated.
const passwordMaxLength = 72

// # Construction

// NewUser validates the registration payload and returns an unsaved user whose
// password will be hashed on the first save.
func NewUser(email, password string) (*User, error) {
	email = textnorm.Email(email)

	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, constants.PasswordMinLength).
		Custom(FieldPassword, len(password) > passwordMaxLength, "Maximum 72 bytes")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &User{Email: email}
	user.SetPassword(password)

	return user, nil
}

// SetPassword marks the secret as modified. The hash is recomputed on the next save.
func (user *User) SetPassword(plainText string) {
	user.pendingSecret = &plainText
}

// PasswordModified reports whether a new secret is waiting to be hashed.
func (user *User) PasswordModified() bool {
	return user.pendingSecret != nil
}

// IsNew reports whether the user has never been persisted.
func (user *User) IsNew() bool {
	return strings.TrimSpace(user.ID) == ""
}
