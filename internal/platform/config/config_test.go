// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tasklist/internal/platform/config"
)

/*
TestLoad_Defaults verifies the defaults applied when only required values are set.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/tasklist")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, config.SessionBackendPostgres, cfg.SessionBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_Failures verifies that missing or inconsistent inputs are fatal.
*/
func TestLoad_Failures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing db url", map[string]string{"JWT_SECRET": "secret"}},
		{"missing jwt secret", map[string]string{"DB_URL": "postgres://x"}},
		{"empty jwt secret", map[string]string{"DB_URL": "postgres://x", "JWT_SECRET": ""}},
		{"redis backend without url", map[string]string{"DB_URL": "postgres://x", "JWT_SECRET": "s", "SESSION_BACKEND": "redis"}},
		{"unknown backend", map[string]string{"DB_URL": "postgres://x", "JWT_SECRET": "s", "SESSION_BACKEND": "mongo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestLoad_RedisBackend verifies the redis ledger selection and origin parsing.
*/
func TestLoad_RedisBackend(t *testing.T) {
	t.Setenv("DB_URL", "postgres://x")
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.SessionBackendRedis, cfg.SessionBackend)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}
