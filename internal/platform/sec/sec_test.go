// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/constants"
	"github.com/taibuivan/tasklist/internal/platform/sec"
)

type fakeClock struct{ current time.Time }

func (c *fakeClock) Now() time.Time { return c.current }

/*
TestTokenService_RoundTrip verifies issue/verify and the 30 minute window with a simulated clock.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service, err := sec.NewTokenService("secret", constants.AuthIssuer, constants.AccessTokenTTL, sec.WithClock(clock.Now))
	require.NoError(t, err)

	token, err := service.IssueAccessToken("user-1")
	require.NoError(t, err)

	// 1. Fresh token verifies to the same user
	userID, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	// 2. Still valid just before expiry
	clock.current = clock.current.Add(29 * time.Minute)
	_, err = service.VerifyAccessToken(token)
	assert.NoError(t, err)

	// 3. Rejected once the window has elapsed
	clock.current = clock.current.Add(2 * time.Minute)
	_, err = service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_Rejects verifies tampered, foreign and unsigned tokens fail as invalid.
*/
func TestTokenService_Rejects(t *testing.T) {
	service, err := sec.NewTokenService("secret", constants.AuthIssuer, time.Minute)
	require.NoError(t, err)
	other, err := sec.NewTokenService("other-secret", constants.AuthIssuer, time.Minute)
	require.NoError(t, err)

	foreign, err := other.IssueAccessToken("user-1")
	require.NoError(t, err)

	valid, err := service.IssueAccessToken("user-1")
	require.NoError(t, err)
	tampered := valid[:len(valid)-2] + flip(valid[len(valid)-2:])

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    constants.AuthIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		UserID: "user-1",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":  "not-a-token",
		"foreign":  foreign,
		"tampered": tampered,
		"unsigned": unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := service.VerifyAccessToken(token)
			assert.ErrorIs(t, err, sec.ErrTokenInvalid)
		})
	}
}

/*
TestNewTokenService_EmptySecret verifies an empty secret is refused.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", constants.AuthIssuer, time.Minute)
	assert.Error(t, err)
}

/*
TestHashPassword verifies salting and comparison.
*/
func TestHashPassword(t *testing.T) {
	first, err := sec.HashPassword("longenough")
	require.NoError(t, err)
	second, err := sec.HashPassword("longenough")
	require.NoError(t, err)

	assert.NotEqual(t, "longenough", first)
	assert.NotEqual(t, first, second, "each hash carries its own salt")
	assert.True(t, sec.CheckPasswordHash("longenough", first))
	assert.False(t, sec.CheckPasswordHash("wrong", first))
}

/*
TestGenerateSecureToken verifies length and alphabet of refresh tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	token, err := sec.GenerateSecureToken(constants.RefreshTokenBytes)
	require.NoError(t, err)

	assert.Len(t, token, 128)
	assert.Empty(t, strings.Trim(token, "0123456789abcdef"))

	again, err := sec.GenerateSecureToken(constants.RefreshTokenBytes)
	require.NoError(t, err)
	assert.NotEqual(t, token, again)
}

/*
TestHashToken verifies the digest is stable and compared exactly.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("abc")

	assert.Len(t, digest, 64)
	assert.True(t, sec.TokenHashEqual(digest, sec.HashToken("abc")))
	assert.False(t, sec.TokenHashEqual(digest, sec.HashToken("abd")))
}

func flip(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c == 'A' {
			out[i] = 'B'
		} else {
			out[i] = 'A'
		}
	}
	return string(out)
}
