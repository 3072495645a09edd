// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Line tokenizer and comment stripping
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import "strings"

// Tokenize splits a line into whitespace separated columns. Runs of
// whitespace count as one separator and an empty line yields no tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// stripComment removes everything from the first '#' to the end of line
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
