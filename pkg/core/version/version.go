// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     version
// Description: Central version management for the magres tools
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package version

import (
	"fmt"

	"github.com/msto63/magres/pkg/magres"
)

// Version constants for the toolkit
const (
	// Toolkit release
	Toolkit = "0.1.0"

	// Component versions
	Parser = "0.1.0"
	Store  = "0.1.0"
	Report = "0.1.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "parser":
		return Parser
	case "store":
		return Store
	case "report":
		return Report
	default:
		return Toolkit
	}
}

// Format returns the magres format version written by the toolkit
func Format() string {
	return magres.CurrentVersion.String()
}

// MaxSupportedFormat returns the highest format major version read by default
func MaxSupportedFormat() int {
	return magres.DefaultOptions().MaxMajorVersion
}

// String returns a one-line description of the toolkit and format versions
func String() string {
	return fmt.Sprintf("magres %s (format v%s, reads up to v%d.x)", Toolkit, Format(), MaxSupportedFormat())
}
