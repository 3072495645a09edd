// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger uses severity to
//              pick the level an error is written at.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates bad input the caller can fix, such as a malformed file
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects one operation
	SeverityMedium

	// SeverityHigh indicates a failure of a backing resource such as the database
	SeverityHigh

	// SeverityCritical indicates the tool cannot continue at all
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeDatabaseError, CodeIOError:
		return SeverityHigh
	case CodeConfigError, CodeInvalidConfig, CodeMergeConflict:
		return SeverityMedium
	case CodeMalformedTag, CodeUnterminatedBlock, CodeFormat, CodeNumericParse,
		CodeUnresolvedAtom, CodeNotMagres, CodeUnsupportedVersion, CodeUnits,
		CodeInvalidInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
