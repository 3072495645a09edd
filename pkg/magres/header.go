// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Version signature detection and header policy
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Signature starts the first line of a versioned magres file
const Signature = "#$magres-abinitio-v"

// CurrentVersion is written by the writer when a document carries none
var CurrentVersion = Version{Major: 1, Minor: 0}

var signatureRe = regexp.MustCompile(`^#\$magres-abinitio-v([0-9]+)\.([0-9]+)`)

// HeaderMode controls how the signature line is checked
type HeaderMode int

const (
	// HeaderIgnore records the version when present and never fails
	HeaderIgnore HeaderMode = iota
	// HeaderOptional enforces the version ceiling when a signature is present
	HeaderOptional
	// HeaderRequired fails unless a valid signature is present
	HeaderRequired
)

func (m HeaderMode) String() string {
	switch m {
	case HeaderIgnore:
		return "ignore"
	case HeaderOptional:
		return "optional"
	case HeaderRequired:
		return "required"
	default:
		return "unknown"
	}
}

// ParseHeaderMode parses "ignore", "optional" or "required"
func ParseHeaderMode(s string) (HeaderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "":
		return HeaderIgnore, nil
	case "optional":
		return HeaderOptional, nil
	case "required":
		return HeaderRequired, nil
	default:
		return HeaderIgnore, fmt.Errorf("invalid header mode %q", s)
	}
}

// ReadVersion parses the signature on the first line of text
func ReadVersion(text string) (Version, bool) {
	m := signatureRe.FindStringSubmatch(firstLine(text))
	if m == nil {
		return Version{}, false
	}
	major, err1 := strconv.Atoi(m[1])
	minor, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return Version{}, false
	}
	return Version{Major: major, Minor: minor}, true
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimRight(text, "\r")
}

// checkHeader applies mode to the signature line of text
func checkHeader(text string, mode HeaderMode, maxMajor int) (Version, bool, error) {
	version, ok := ReadVersion(text)

	switch mode {
	case HeaderRequired:
		if !ok {
			return Version{}, false, &NotMagresFormatError{FirstLine: firstLine(text)}
		}
	case HeaderOptional:
		if !ok && strings.HasPrefix(firstLine(text), "#$magres-abinitio") {
			return Version{}, false, &NotMagresFormatError{FirstLine: firstLine(text)}
		}
	default:
		return version, ok, nil
	}

	if ok && version.Major > maxMajor {
		return Version{}, false, &UnsupportedVersionError{Version: version, MaxMajor: maxMajor}
	}
	return version, ok, nil
}
