// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

// Package textnorm normalizes user-supplied search text before it reaches
// the document store.
//
// # Usage
//
// Catalog titles are Italian and frequently carry accents (città, perché).
// Normalizing to NFC makes visually identical queries byte-identical, so the
// store's text index sees one canonical form regardless of how the client
// composed the characters.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean canonicalizes a free-text query string.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFC (composes combining sequences: e + ́ → é).
// 2. Collapses runs of whitespace into single spaces.
// 3. Trims leading and trailing whitespace.
func Clean(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
