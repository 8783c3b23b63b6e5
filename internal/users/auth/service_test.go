// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/testutil"
	"github.com/taibuivan/tasklist/internal/users/auth"
)

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) IssueAccessToken(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type mockObserver struct{ mock.Mock }

func (m *mockObserver) ObserveAuthEvent(event string) {
	m.Called(event)
}

func newService(f *fixture, issuer auth.TokenIssuer, observer auth.EventObserver) *auth.Service {
	return auth.NewService(f.credentials, f.ledger, issuer, observer, testutil.Logger())
}

/*
TestService_Register checks the full register flow and the reported events.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t)
	issuer := &mockIssuer{}
	observer := &mockObserver{}
	service := newService(f, issuer, observer)

	issuer.On("IssueAccessToken", mock.AnythingOfType("string")).Return("signed-access", nil).Once()
	observer.On("ObserveAuthEvent", auth.EventUserRegistered).Once()
	observer.On("ObserveAuthEvent", auth.EventSessionCreated).Once()
	observer.On("ObserveAuthEvent", auth.EventAccessTokenIssued).Once()

	pair, err := service.Register(context.Background(), "tai@tasklist.app", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, "signed-access", pair.AccessToken)
	assert.Len(t, pair.RefreshToken, 128)
	assert.Len(t, pair.User.Sessions, 1)
	assert.Equal(t, 1, f.sessions.Count(pair.User.ID))

	issuer.AssertCalled(t, "IssueAccessToken", pair.User.ID)
	observer.AssertExpectations(t)
}

/*
TestService_Login verifies that each login appends a new session and that a bad
password is reported as a failed login.
*/
func TestService_Login(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	issuer := &mockIssuer{}
	issuer.On("IssueAccessToken", mock.Anything).Return("signed-access", nil)
	observer := &mockObserver{}
	observer.On("ObserveAuthEvent", mock.Anything)
	service := newService(f, issuer, observer)

	user := f.register(t, "tai@tasklist.app")

	// 1. Two logins, two sessions
	first, err := service.Login(ctx, "tai@tasklist.app", "correct-horse")
	require.NoError(t, err)
	second, err := service.Login(ctx, "tai@tasklist.app", "correct-horse")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.Equal(t, 2, f.sessions.Count(user.ID))

	// 2. Wrong password
	_, err = service.Login(ctx, "tai@tasklist.app", "wrong-horse")
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidCredentials))

	observer.AssertCalled(t, "ObserveAuthEvent", auth.EventLoginSucceeded)
	observer.AssertCalled(t, "ObserveAuthEvent", auth.EventLoginFailed)
	observer.AssertNumberOfCalls(t, "ObserveAuthEvent", 2*3+1)
}

/*
TestService_SigningFailure ensures a signing error surfaces as 400 after the
session was already recorded.
*/
func TestService_SigningFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	issuer := &mockIssuer{}
	issuer.On("IssueAccessToken", mock.Anything).Return("", errors.New("hsm offline"))
	service := newService(f, issuer, nil)

	user := f.register(t, "tai@tasklist.app")

	_, err := service.Login(ctx, "tai@tasklist.app", "correct-horse")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	assert.Equal(t, 1, f.sessions.Count(user.ID))

	_, err = service.IssueAccessToken(ctx, user.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeBadRequest))
}
