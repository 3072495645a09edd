// Package error provides structured error handling for the magres toolkit.
//
// Package: error
// Title: Structured Error Framework
// Description: Implements an error type carrying a classification code, a
//
//	severity, free-form details and an optional cause. Parse
//	failures, configuration problems and storage failures are all
//	surfaced through this type when they cross a component boundary
//	so that logging and exit-code mapping can work on one shape.
//
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Codes re-cut for magres parsing, storage and config
//
// Usage:
//
//	import mdwerror "github.com/msto63/magres/foundation/core/error"
//
//	err := mdwerror.New("atom H 3 not defined").
//		WithCode(mdwerror.CodeUnresolvedAtom).
//		WithDetail("species", "H").
//		WithDetail("index", 3)
//
//	if mdwerror.HasCode(err, mdwerror.CodeUnresolvedAtom) {
//		// handle
//	}
package error
