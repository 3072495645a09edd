// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Parser, model, writer and analysis for magres files
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

/*
Package magres parses files in the magres-abinitio format.

A magres file is a sequence of bracket-delimited blocks. The atoms block
declares atoms, the lattice and symmetry operations; the magres block holds
tensor properties (magnetic shielding, electric field gradient and indirect
spin-spin coupling) that refer back to atoms by their (species, index) key:

	#$magres-abinitio-v1.0
	[atoms]
	  lattice 5.0 0.0 0.0 0.0 5.0 0.0 0.0 0.0 5.0
	  atom H H1 1 0.0 0.0 0.0
	  atom C C1 1 1.1 0.0 0.0
	[/atoms]
	[magres]
	  ms H 1 30.1 0.2 0.0 0.2 29.8 0.0 0.0 0.0 31.0
	  isc C 1 H 1 140.0 0 0 0 140.0 0 0 0 140.0
	[/magres]

Parsing is all-or-nothing: Parse returns either a complete *Document or a
single typed error (*FormatError, *NumericParseError, *UnresolvedAtomError,
*MalformedTagError, *UnterminatedBlockError, *NotMagresFormatError,
*UnsupportedVersionError or *UnitsError). Record level errors are wrapped in
a *LineError that carries the block, line number and raw line; use errors.As
to reach the cause:

	doc, err := magres.Parse(text)
	var unresolved *magres.UnresolvedAtomError
	if errors.As(err, &unresolved) {
		...
	}

AsError converts any parse failure into a structured foundation error with a
code, for logging and exit status mapping.

Tensor records reference atoms through AtomRef, an index into the document's
atom list. Documents are immutable; every accessor returns a copy.

Options controls the optional behaviour: the version header check
(HeaderIgnore, HeaderOptional, HeaderRequired), strict close tag names,
lenient symmetry tokenization, contribution terms (efg_local, isc_fc, ...)
and unit validation.

Beyond parsing, the package writes documents back to canonical magres text
(Document.Format, Document.WriteTo), merges property tables of several
calculations on the same structure (Merge), exports to JSON and YAML, and
computes the usual tensor quantities (isotropic value, anisotropy,
asymmetry, Vzz).
*/
package magres
