// Copyright (c) 2026 Tasklist. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalises user-supplied display text such as list and
// task titles.
//
// # Usage
//
// Two titles that render identically must compare equal once stored, so input
// is normalised to NFC and stray whitespace is removed.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Title returns s in NFC with control characters removed, inner whitespace
// runs collapsed to one space, and no leading or trailing whitespace.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC (composes e + combining acute into é).
// 2. Drops control characters other than whitespace.
// 3. Collapses whitespace runs and trims the ends.
func Title(s string) string {
	// 1. Normalize and strip control characters
	t := transform.Chain(norm.NFC, transform.RemoveFunc(isControl))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = norm.NFC.String(s)
	}

	// 2. Collapse whitespace
	return strings.Join(strings.Fields(result), " ")
}

// Email returns s trimmed and NFC normalised. Case is kept because the local
// part of an address is case-sensitive.
func Email(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// isControl reports whether r is a control character that is not whitespace.
func isControl(r rune) bool {
	return unicode.IsControl(r) && !unicode.IsSpace(r)
}
