// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Typed parse errors and their mapping to foundation errors
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"errors"
	"fmt"

	mdwerror "github.com/msto63/magres/foundation/core/error"
)

// MalformedTagError reports a bracket or nesting violation
type MalformedTagError struct {
	Tag    string
	Line   int
	Reason string
}

func (e *MalformedTagError) Error() string {
	return fmt.Sprintf("line %d: malformed tag %q: %s", e.Line, e.Tag, e.Reason)
}

// Code returns the error classification
func (e *MalformedTagError) Code() mdwerror.Code { return mdwerror.CodeMalformedTag }

// UnterminatedBlockError reports end of input inside a block
type UnterminatedBlockError struct {
	Block string
	Line  int // line of the opening tag
}

func (e *UnterminatedBlockError) Error() string {
	return fmt.Sprintf("unterminated block %s (opened on line %d)", e.Block, e.Line)
}

// Code returns the error classification
func (e *UnterminatedBlockError) Code() mdwerror.Code { return mdwerror.CodeUnterminatedBlock }

// FormatError reports a wrong column count for a record kind
type FormatError struct {
	Kind string
	Got  int
	Want int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: wrong number of columns, %d (want %d)", e.Kind, e.Got, e.Want)
}

// Code returns the error classification
func (e *FormatError) Code() mdwerror.Code { return mdwerror.CodeFormat }

// NumericParseError reports a token that is not a valid number
type NumericParseError struct {
	Kind  string
	Token string
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("%s: invalid number %q", e.Kind, e.Token)
}

// Code returns the error classification
func (e *NumericParseError) Code() mdwerror.Code { return mdwerror.CodeNumericParse }

// UnresolvedAtomError reports a reference to an atom that was not declared
// before it was used
type UnresolvedAtomError struct {
	Species string
	Index   int
}

func (e *UnresolvedAtomError) Error() string {
	return fmt.Sprintf("could not find atom %s %d", e.Species, e.Index)
}

// Code returns the error classification
func (e *UnresolvedAtomError) Code() mdwerror.Code { return mdwerror.CodeUnresolvedAtom }

// NotMagresFormatError reports a missing or invalid signature line. Callers
// may use it to fall back to legacy readers.
type NotMagresFormatError struct {
	FirstLine string
}

func (e *NotMagresFormatError) Error() string {
	return fmt.Sprintf("not a magres-abinitio file: first line %q", e.FirstLine)
}

// Code returns the error classification
func (e *NotMagresFormatError) Code() mdwerror.Code { return mdwerror.CodeNotMagres }

// UnsupportedVersionError reports a format major version above the ceiling
type UnsupportedVersionError struct {
	Version  Version
	MaxMajor int
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("format version %s not supported (max major version %d)", e.Version, e.MaxMajor)
}

// Code returns the error classification
func (e *UnsupportedVersionError) Code() mdwerror.Code { return mdwerror.CodeUnsupportedVersion }

// UnitsError reports a malformed or unrecognised units declaration
type UnitsError struct {
	Tag  string
	Unit string
}

func (e *UnitsError) Error() string {
	return fmt.Sprintf("unrecognised units: %s %s", e.Tag, e.Unit)
}

// Code returns the error classification
func (e *UnitsError) Code() mdwerror.Code { return mdwerror.CodeUnits }

// InputTooLargeError reports input beyond Options.MaxInputBytes
type InputTooLargeError struct {
	Size  int
	Limit int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("input exceeds maximum length: %d > %d", e.Size, e.Limit)
}

// Code returns the error classification
func (e *InputTooLargeError) Code() mdwerror.Code { return mdwerror.CodeInvalidInput }

// LineError attaches the position of a failing record to its cause
type LineError struct {
	Block   string
	Line    int
	Content string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d [%s]: %v", e.Line, e.Block, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Code returns the classification of the wrapped error
func (e *LineError) Code() mdwerror.Code {
	return codeOf(e.Err)
}

type coder interface {
	Code() mdwerror.Code
}

func codeOf(err error) mdwerror.Code {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return mdwerror.GetCode(err)
}

// AsError converts a parse failure into a structured error carrying its
// code and position details. Structured errors are returned unchanged.
func AsError(err error) *mdwerror.Error {
	if err == nil {
		return nil
	}

	var structured *mdwerror.Error
	if errors.As(err, &structured) {
		return structured
	}

	result := mdwerror.Wrap(err, "magres parse failed").
		WithCode(codeOf(err)).
		WithOperation("magres.Parse")

	var lineErr *LineError
	if errors.As(err, &lineErr) {
		result.WithDetail("block", lineErr.Block).
			WithDetail("line", lineErr.Line).
			WithDetail("content", lineErr.Content)
	}

	var unresolved *UnresolvedAtomError
	if errors.As(err, &unresolved) {
		result.WithDetail("species", unresolved.Species).
			WithDetail("index", unresolved.Index)
	}
	return result
}
