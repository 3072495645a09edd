// Package log provides structured logging for the magres toolkit.
//
// Package: log
// Title: Structured Logging Framework
// Description: Implements leveled, structured logging with JSON, text, console
//
//	and logfmt output, persistent context fields, operation timers
//	and direct logging of structured errors.
//
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation, writes to stderr by default
//
// Usage:
//
//	import mdwlog "github.com/msto63/magres/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatText).
//		WithField("component", "magres-parser")
//
//	logger.Debug("block dispatched", mdwlog.Fields{"block": "atoms", "lines": 12})
//
//	timer := logger.StartTimer("parse")
//	// ... parse
//	timer.Stop()
package log
