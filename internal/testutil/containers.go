// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taibuivan/tasklist/internal/platform/migration"
	"github.com/taibuivan/tasklist/internal/platform/postgres"
	redisstore "github.com/taibuivan/tasklist/internal/platform/redis"
)

// PostgresContainer is a disposable, migrated PostgreSQL instance.
type PostgresContainer struct {
	DSN       string
	Pool      *pgxpool.Pool
	container tc.Container
}

// StartPostgres launches postgres:15-alpine, applies every migration and
// opens a pool against it.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "tasklist_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	dsn := fmt.Sprintf("postgres://postgres:password@%s:%s/tasklist_test?sslmode=disable", host, port.Port())

	if _, err := migration.RunUp(dsn, MigrationsPath(), Logger()); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{MaxConns: 4}, Logger())
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &PostgresContainer{DSN: dsn, Pool: pool, container: container}, nil
}

// Terminate closes the pool and removes the container.
func (p *PostgresContainer) Terminate(ctx context.Context) {
	p.Pool.Close()
	_ = p.container.Terminate(ctx)
}

// MigrationsPath returns the absolute path of data/migrations.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "data", "migrations")
}

// RedisContainer is a disposable Redis instance.
type RedisContainer struct {
	Client    *goredis.Client
	container tc.Container
}

// StartRedis launches redis:7-alpine and connects a client to it.
func StartRedis(ctx context.Context) (*RedisContainer, error) {
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	endpoint, err := container.Endpoint(ctx, "redis")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	client, err := redisstore.NewClient(ctx, endpoint, 4, Logger())
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &RedisContainer{Client: client, container: container}, nil
}

// Terminate closes the client and removes the container.
func (r *RedisContainer) Terminate(ctx context.Context) {
	_ = r.Client.Close()
	_ = r.container.Terminate(ctx)
}
