// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the magres toolkit. Codes
//              classify failures for logging, exit-code mapping and storage.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial code set for parsing, config, storage and io

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Magres parsing
	CodeMalformedTag       Code = "MAGRES_MALFORMED_TAG"
	CodeUnterminatedBlock  Code = "MAGRES_UNTERMINATED_BLOCK"
	CodeFormat             Code = "MAGRES_FORMAT"
	CodeNumericParse       Code = "MAGRES_NUMERIC"
	CodeUnresolvedAtom     Code = "MAGRES_UNRESOLVED_ATOM"
	CodeNotMagres          Code = "MAGRES_NOT_MAGRES"
	CodeUnsupportedVersion Code = "MAGRES_UNSUPPORTED_VERSION"
	CodeUnits              Code = "MAGRES_UNITS"
	CodeMergeConflict      Code = "MAGRES_MERGE_CONFLICT"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage and io
	CodeDatabaseError Code = "DATABASE_ERROR"
	CodeIOError       Code = "IO_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeMalformedTag, CodeUnterminatedBlock, CodeFormat, CodeNumericParse,
		CodeUnresolvedAtom, CodeNotMagres, CodeUnsupportedVersion, CodeUnits,
		CodeMergeConflict:
		return "parse"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError:
		return "storage"
	case CodeIOError, CodeNotFound:
		return "io"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status used by the command line tool for
// errors of this code.
func (c Code) ExitCode() int {
	switch c.Category() {
	case "parse":
		return 2
	case "configuration":
		return 3
	case "io", "storage":
		return 4
	default:
		return 1
	}
}
