// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tasklist/internal/platform/migration"
)

/*
TestToPgx5URL verifies the scheme rewrite for every accepted input form.
*/
func TestToPgx5URL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/tasklist?sslmode=disable", "pgx5://u:p@db:5432/tasklist?sslmode=disable"},
		{"postgresql://db/tasklist", "pgx5://db/tasklist"},
		{"pgx5://db/tasklist", "pgx5://db/tasklist"},
		{"host=db dbname=tasklist", "host=db dbname=tasklist"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.ToPgx5URL(tt.in))
		})
	}
}
