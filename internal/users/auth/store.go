// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User (ID and PasswordHash already set)

		Returns:
		  - error: apperr.DuplicateEmail when the email is taken, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists the email and password hash of an existing account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound, apperr.DuplicateEmail or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		FindByEmail returns the account with the given email, without sessions.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID returns the account with the given ID, without sessions.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)
}

// # Session Data Access

// SessionRepository is the per-user append-only session collection.
//
// Append must be a single atomic write so that concurrent logins for the same
// user never lose a session.
type SessionRepository interface {

	/*
		Append adds one session to the user's collection.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - session: Session

		Returns:
		  - error: Persistence failures
	*/
	Append(context context.Context, userID string, session Session) error

	/*
		ListByUser returns every session of the user in issuance order, expired ones included.

		Returns:
		  - []Session: possibly empty
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]Session, error)

	/*
		Exists reports whether the user holds a session with the given token digest.

		Returns:
		  - bool: true when a matching session is recorded, expired or not
		  - error: Database retrieval failures
	*/
	Exists(context context.Context, userID, tokenHash string) (bool, error)
}
