// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
)

// # Contracts & Types

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	// IssueAccessToken creates a signed access token for userID with the fixed lifetime.
	IssueAccessToken(userID string) (string, error)
}

// EventObserver is notified of credential and session events. It may be nil.
type EventObserver interface {
	ObserveAuthEvent(event string)
}

// Events reported to an [EventObserver].
const (
	EventUserRegistered    = "user_registered"
	EventLoginSucceeded    = "login_succeeded"
	EventLoginFailed       = "login_failed"
	EventSessionCreated    = "session_created"
	EventAccessTokenIssued = "access_token_issued"
)

// TokenPair is the result of a successful registration or login.
type TokenPair struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Service implements the authentication use cases on top of the credential
// store, the session ledger and the token issuer.
type Service struct {
	credentials *CredentialStore
	ledger      *SessionLedger
	issuer      TokenIssuer
	observer    EventObserver
	logger      *slog.Logger
}

// NewService constructs a new [Service]. observer may be nil.
func NewService(credentials *CredentialStore, ledger *SessionLedger, issuer TokenIssuer, observer EventObserver, logger *slog.Logger) *Service {
	return &Service{
		credentials: credentials,
		ledger:      ledger,
		issuer:      issuer,
		observer:    observer,
		logger:      logger,
	}
}

/*
Register creates the account and opens its first session.

Order: save user, create session, issue access token.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *TokenPair: The user plus both tokens
  - error: ValidationError, DuplicateEmail, a 400 on signing failure, or storage errors
*/
func (service *Service) Register(context context.Context, email, password string) (*TokenPair, error) {
	user, err := service.credentials.Register(context, email, password)
	if err != nil {
		return nil, err
	}

	service.observe(EventUserRegistered)
	service.logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID))

	return service.openSession(context, user)
}

/*
Login verifies credentials and opens a new session.

Returns:
  - *TokenPair: The user plus a fresh token pair
  - error: InvalidCredentials, a 400 on signing failure, or storage errors
*/
func (service *Service) Login(context context.Context, email, password string) (*TokenPair, error) {
	user, err := service.credentials.Verify(context, email, password)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeInvalidCredentials) {
			service.observe(EventLoginFailed)
			service.logger.InfoContext(context, "login_failed")
		}
		return nil, err
	}

	service.observe(EventLoginSucceeded)

	return service.openSession(context, user)
}

/*
IssueAccessToken mints a new access token for a user already admitted by the stateful gate.

Returns:
  - string: Signed access token
  - error: apperr.BadRequest when signing fails
*/
func (service *Service) IssueAccessToken(context context.Context, userID string) (string, error) {
	accessToken, err := service.issuer.IssueAccessToken(userID)
	if err != nil {
		return "", apperr.BadRequest("Unable to issue access token").WithCause(err)
	}

	service.observe(EventAccessTokenIssued)
	service.logger.DebugContext(context, "access_token_issued", slog.String("user_id", userID))

	return accessToken, nil
}

// openSession appends a session for user and signs an access token.
func (service *Service) openSession(context context.Context, user *User) (*TokenPair, error) {
	refreshToken, err := service.ledger.CreateSession(context, user)
	if err != nil {
		return nil, err
	}

	service.observe(EventSessionCreated)
	service.logger.InfoContext(context, "session_created",
		slog.String("user_id", user.ID),
		slog.Int("session_count", len(user.Sessions)),
	)

	accessToken, err := service.IssueAccessToken(context, user.ID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (service *Service) observe(event string) {
	if service.observer != nil {
		service.observer.ObserveAuthEvent(event)
	}
}
