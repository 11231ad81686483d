// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marcodallan/biblio/pkg/textnorm"
)

/*
TestClean verifies whitespace collapsing and Unicode composition.
*/
func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "promessi sposi", "promessi sposi"},
		{"extra_whitespace", "  le   città \t invisibili ", "le città invisibili"},
		{"empty", "", ""},
		{"whitespace_only", "   \t\n", ""},
		// "e" followed by U+0301 (combining acute) composes into "é".
		{"nfd_input", "perché", "perché"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textnorm.Clean(tt.input))
		})
	}
}
