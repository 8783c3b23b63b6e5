// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Authentication: token lifetimes, header names and the JWT issuer.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tasklist-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in access tokens.
	AuthIssuer = "tasklist.app"

	// AccessTokenTTL is the fixed lifetime of a signed access token.
	AccessTokenTTL = 30 * time.Minute

	// RefreshTokenTTL is the fixed lifetime of a refresh session.
	RefreshTokenTTL = 10 * 24 * time.Hour

	// RefreshTokenBytes is the amount of entropy in a refresh token before hex encoding.
	RefreshTokenBytes = 64

	// PasswordHashCost is the bcrypt work factor.
	PasswordHashCost = 10

	// PasswordMinLength is the shortest accepted plaintext password.
	PasswordMinLength = 8
)

// # HTTP Headers

const (
	HeaderAccessToken   = "x-access-token"
	HeaderRefreshToken  = "x-refresh-token"
	HeaderUserID        = "_id"
	HeaderXRequestID    = "X-Request-ID"
	HeaderOrigin        = "Origin"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderContentType   = "Content-Type"
	HeaderRetryAfter    = "Retry-After"
)

// ExposedHeaders lists the response headers browser clients must be able to read cross-origin.
const ExposedHeaders = HeaderAccessToken + ", " + HeaderRefreshToken + ", " + HeaderUserID

// # JSON Field Identifiers

const (
	FieldError  = "error"
	FieldCode   = "code"
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Prefixes

const (
	RedisPrefixSession = "auth:session:"
)
