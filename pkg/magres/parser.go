// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Parser entry point and per-block record dispatch
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"fmt"
	"io"
	"strings"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	mdwlog "github.com/msto63/magres/foundation/core/log"
)

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// Header selects the signature policy
	Header HeaderMode
	// MaxMajorVersion is the highest accepted format major version
	MaxMajorVersion int
	// StrictCloseTags requires [/name] to match the open block's name
	StrictCloseTags bool
	// LenientSymmetry accepts symmetry descriptors containing whitespace,
	// kept verbatim
	LenientSymmetry bool
	// Contributions parses efg_local, isc_fc and the other term records
	Contributions bool
	// CheckUnits records and validates units lines instead of skipping them
	CheckUnits bool
	// MaxInputBytes rejects larger input; zero means unlimited
	MaxInputBytes int
}

// DefaultOptions returns the options used by the package level Parse
func DefaultOptions() Options {
	return Options{
		Header:          HeaderIgnore,
		MaxMajorVersion: 1,
	}
}

// Parser holds immutable options and may be shared between goroutines
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// New creates a parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxMajorVersion < 0 {
		return nil, mdwerror.New(fmt.Sprintf("invalid max major version %d", opts.MaxMajorVersion)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("magres.New")
	}
	if opts.Header < HeaderIgnore || opts.Header > HeaderRequired {
		return nil, mdwerror.New(fmt.Sprintf("invalid header mode %d", opts.Header)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("magres.New")
	}
	if opts.MaxInputBytes < 0 {
		opts.MaxInputBytes = 0
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "magres-parser"),
		options: opts,
	}, nil
}

// Options returns the parser configuration
func (p *Parser) Options() Options {
	return p.options
}

// Parse parses a complete magres text with default options
func Parse(text string) (*Document, error) {
	p, err := New(DefaultOptions())
	if err != nil {
		return nil, err
	}
	return p.Parse(text)
}

// ParseReader reads r to the end and parses the content
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	var src io.Reader = r
	if p.options.MaxInputBytes > 0 {
		src = io.LimitReader(r, int64(p.options.MaxInputBytes)+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read magres input").
			WithCode(mdwerror.CodeIOError).
			WithOperation("magres.ParseReader")
	}
	return p.Parse(string(data))
}

// Parse parses a complete magres text. It returns a fully built Document
// or a single error; partial documents are never returned.
func (p *Parser) Parse(text string) (*Document, error) {
	if p.options.MaxInputBytes > 0 && len(text) > p.options.MaxInputBytes {
		return nil, &InputTooLargeError{Size: len(text), Limit: p.options.MaxInputBytes}
	}

	timer := p.logger.StartTimer("magres parse").WithField("bytes", len(text))

	doc, err := p.parse(text)
	if err != nil {
		timer.WithField("error_code", codeOf(err)).StopWithError(err)
		return nil, err
	}

	c := doc.Counts()
	timer.WithField("atoms", c.Atoms).
		WithField("ms", c.Ms).
		WithField("efg", c.Efg).
		WithField("isc", c.Isc).
		Stop()
	return doc, nil
}

// parseState is the per-call state; the Parser itself is never mutated
type parseState struct {
	opts     Options
	logger   *mdwlog.Logger
	registry *AtomRegistry
	doc      *Document
}

func (p *Parser) parse(text string) (*Document, error) {
	version, hasVersion, err := checkHeader(text, p.options.Header, p.options.MaxMajorVersion)
	if err != nil {
		return nil, err
	}

	st := &parseState{
		opts:     p.options,
		logger:   p.logger,
		registry: NewAtomRegistry(),
		doc:      &Document{version: version, hasVersion: hasVersion},
	}

	sc := newScanner(text, p.options.StrictCloseTags)
	for {
		b, ok, err := sc.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if err := st.dispatch(b); err != nil {
			return nil, err
		}
	}

	st.doc.atoms = st.registry.Atoms()
	return st.doc, nil
}

// dispatch parses every line of a block with the record set of its name
func (st *parseState) dispatch(b block) error {
	switch b.name {
	case BlockAtoms, BlockMagres, BlockCalculation:
	default:
		st.logger.Debug("skipping unknown block", mdwlog.Fields{"block": b.name, "line": b.line})
		return nil
	}

	if st.logger.Enabled(mdwlog.LevelTrace) {
		st.logger.Trace("parsing block", mdwlog.Fields{"block": b.name, "line": b.line})
	}

	for i, raw := range strings.Split(b.body, "\n") {
		line := stripComment(raw)
		tokens := Tokenize(line)
		if len(tokens) == 0 {
			continue
		}
		if err := st.record(b.name, line, tokens); err != nil {
			return &LineError{
				Block:   b.name,
				Line:    b.line + i,
				Content: strings.TrimSpace(raw),
				Err:     err,
			}
		}
	}
	return nil
}

// record parses one tokenized line. Unknown keywords are skipped.
func (st *parseState) record(blockName, line string, tokens []string) error {
	kind, term := LookupKind(tokens[0], blockName)
	if term != TermTotal && !st.opts.Contributions {
		return nil
	}

	doc := st.doc
	switch kind {
	case KindAtom:
		atom, err := parseAtom(tokens)
		if err != nil {
			return err
		}
		st.registry.Register(atom)

	case KindLattice:
		lattice, err := parseLattice(tokens)
		if err != nil {
			return err
		}
		doc.lattice, doc.hasLattice = lattice, true

	case KindSymmetry:
		sym, err := parseSymmetry(line, tokens, st.opts.LenientSymmetry)
		if err != nil {
			return err
		}
		doc.symmetries = append(doc.symmetries, sym)

	case KindUnits:
		if !st.opts.CheckUnits {
			return nil
		}
		units, err := parseUnits(blockName, tokens)
		if err != nil {
			return err
		}
		doc.units = append(doc.units, units)

	case KindMs:
		rec, err := parseMs(tokens, st.registry)
		if err != nil {
			return err
		}
		doc.ms = append(doc.ms, rec)

	case KindEfg:
		rec, err := parseEfg(tokens, term, st.registry)
		if err != nil {
			return err
		}
		doc.efg = append(doc.efg, rec)

	case KindIsc:
		rec, err := parseIsc(tokens, term, st.registry)
		if err != nil {
			return err
		}
		doc.isc = append(doc.isc, rec)

	case KindCalculation:
		doc.calculation = append(doc.calculation, parseCalculation(tokens))

	case KindUnknown:
	}
	return nil
}
