// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Block scanner splitting the text into tagged regions
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"strings"
)

type scanState int

const (
	outsideBlock scanState = iota
	insideBlock
)

// block is the content between an opening and a closing tag
type block struct {
	name string
	body string
	line int // line on which body starts
}

// scanner walks the text once. Comments are skipped before any bracket is
// interpreted, so tags inside comments have no effect.
type scanner struct {
	src         string
	pos         int
	line        int
	state       scanState
	strictClose bool

	name      string // open block
	openLine  int
	bodyStart int
	bodyLine  int
}

func newScanner(src string, strictClose bool) *scanner {
	return &scanner{src: src, line: 1, strictClose: strictClose}
}

// next returns the next complete block. ok is false at the end of input.
func (s *scanner) next() (b block, ok bool, err error) {
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; c {
		case '#':
			s.skipComment()
		case '\n':
			s.line++
			s.pos++
		case '[':
			b, ok, err = s.tag()
			if err != nil || ok {
				return b, ok, err
			}
		case ']':
			return block{}, false, &MalformedTagError{Tag: "]", Line: s.line, Reason: "closing bracket without tag"}
		default:
			s.pos++
		}
	}

	if s.state == insideBlock {
		return block{}, false, &UnterminatedBlockError{Block: s.name, Line: s.openLine}
	}
	return block{}, false, nil
}

func (s *scanner) skipComment() {
	if i := strings.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i
	} else {
		s.pos = len(s.src)
	}
}

// tag consumes one [name] or [/name] tag starting at s.pos
func (s *scanner) tag() (block, bool, error) {
	start := s.pos
	end := strings.IndexAny(s.src[start+1:], "]\n[#")
	if end < 0 || s.src[start+1+end] != ']' {
		return block{}, false, &MalformedTagError{Tag: s.rest(start), Line: s.line, Reason: "unterminated tag"}
	}
	end += start + 1
	text := s.src[start+1 : end]
	s.pos = end + 1

	// the raw text between the brackets is the name; unknown names are
	// skipped by dispatch
	closing := strings.HasPrefix(text, "/")
	name := strings.TrimPrefix(text, "/")

	if !closing {
		if s.state == insideBlock {
			return block{}, false, &MalformedTagError{Tag: "[" + text + "]", Line: s.line, Reason: "opening tag inside block " + s.name}
		}
		s.state = insideBlock
		s.name = name
		s.openLine = s.line
		s.bodyStart = s.pos
		s.bodyLine = s.line
		return block{}, false, nil
	}

	if s.state == outsideBlock {
		return block{}, false, &MalformedTagError{Tag: "[" + text + "]", Line: s.line, Reason: "closing tag without open block"}
	}
	if s.strictClose && name != s.name {
		return block{}, false, &MalformedTagError{Tag: "[" + text + "]", Line: s.line, Reason: "closes block " + s.name}
	}

	s.state = outsideBlock
	return block{name: s.name, body: s.src[s.bodyStart:start], line: s.bodyLine}, true, nil
}

func (s *scanner) rest(start int) string {
	end := strings.IndexByte(s.src[start:], '\n')
	if end < 0 {
		return s.src[start:]
	}
	return s.src[start : start+end]
}
