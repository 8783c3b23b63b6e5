// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tasklist/pkg/textnorm"
)

/*
TestTitle verifies whitespace handling and Unicode composition.
*/
func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Groceries", "Groceries"},
		{"trimmed", "  Groceries \n", "Groceries"},
		{"collapsed", "Buy \t  milk", "Buy milk"},
		{"decomposed accent", "Cafe\u0301", "Caf\u00e9"},
		{"control character", "Buy\x00 milk", "Buy milk"},
		{"blank", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Title(tt.in))
		})
	}
}

/*
TestEmail verifies trimming without case folding.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "A@b.com", textnorm.Email("  A@b.com "))
}
