// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Record kinds, keyword lookup and per-kind record parsers
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"strconv"
	"strings"
)

// Block names with a record grammar
const (
	BlockAtoms       = "atoms"
	BlockMagres      = "magres"
	BlockCalculation = "calculation"
)

// RecordKind is the closed set of record types
type RecordKind int

const (
	KindUnknown RecordKind = iota
	KindAtom
	KindLattice
	KindSymmetry
	KindUnits
	KindMs
	KindEfg
	KindIsc
	KindCalculation
)

// String returns the record keyword of the kind
func (k RecordKind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindLattice:
		return "lattice"
	case KindSymmetry:
		return "symmetry"
	case KindUnits:
		return "units"
	case KindMs:
		return "ms"
	case KindEfg:
		return "efg"
	case KindIsc:
		return "isc"
	case KindCalculation:
		return "calculation"
	default:
		return "unknown"
	}
}

// Columns returns the token count of a record including its keyword, or
// -1 when the kind has no fixed width
func (k RecordKind) Columns() int {
	switch k {
	case KindAtom:
		return 7
	case KindLattice:
		return 10
	case KindSymmetry:
		return 2
	case KindMs, KindEfg:
		return 12
	case KindIsc:
		return 14
	default:
		return -1
	}
}

type keywordEntry struct {
	kind RecordKind
	term Term
}

var blockKeywords = map[string]map[string]keywordEntry{
	BlockAtoms: {
		"atom":     {KindAtom, TermTotal},
		"lattice":  {KindLattice, TermTotal},
		"symmetry": {KindSymmetry, TermTotal},
		"units":    {KindUnits, TermTotal},
	},
	BlockMagres: {
		"ms":            {KindMs, TermTotal},
		"efg":           {KindEfg, TermTotal},
		"efg_local":     {KindEfg, TermLocal},
		"efg_nonlocal":  {KindEfg, TermNonlocal},
		"isc":           {KindIsc, TermTotal},
		"isc_fc":        {KindIsc, TermFermiContact},
		"isc_spin":      {KindIsc, TermSpinDipolar},
		"isc_orbital_p": {KindIsc, TermOrbitalP},
		"isc_orbital_d": {KindIsc, TermOrbitalD},
		"units":         {KindUnits, TermTotal},
	},
}

// LookupKind resolves the first token of a line inside block to a record
// kind and contribution term. Unknown keywords and blocks give KindUnknown;
// every line of the calculation block is KindCalculation.
func LookupKind(keyword, block string) (RecordKind, Term) {
	if block == BlockCalculation {
		return KindCalculation, TermTotal
	}
	if entry, ok := blockKeywords[block][keyword]; ok {
		return entry.kind, entry.term
	}
	return KindUnknown, TermTotal
}

// allowedUnits lists the only unit accepted for each tag
var allowedUnits = map[string]string{
	"lattice":           "Angstrom",
	"atom":              "Angstrom",
	"ms":                "ppm",
	"efg":               "au",
	"efg_local":         "au",
	"efg_nonlocal":      "au",
	"isc":               "10^19.T^2.J^-1",
	"isc_fc":            "10^19.T^2.J^-1",
	"isc_orbital_p":     "10^19.T^2.J^-1",
	"isc_orbital_d":     "10^19.T^2.J^-1",
	"isc_spin":          "10^19.T^2.J^-1",
	"sus":               "10^-6.cm^3.mol^-1",
	"calc_cutoffenergy": "Hartree",
}

// AllowedUnit returns the unit required for tag
func AllowedUnit(tag string) (string, bool) {
	unit, ok := allowedUnits[tag]
	return unit, ok
}

func checkColumns(kind RecordKind, name string, tokens []string) error {
	if len(tokens) != kind.Columns() {
		return &FormatError{Kind: name, Got: len(tokens), Want: kind.Columns()}
	}
	return nil
}

func parseInt(kind, token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &NumericParseError{Kind: kind, Token: token}
	}
	return v, nil
}

func parseFloat(kind, token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, &NumericParseError{Kind: kind, Token: token}
	}
	return v, nil
}

func parseTensor(kind string, tokens []string) (Tensor, error) {
	var t Tensor
	for i := 0; i < 9; i++ {
		v, err := parseFloat(kind, tokens[i])
		if err != nil {
			return Tensor{}, err
		}
		t[i/3][i%3] = v
	}
	return t, nil
}

// parseAtom: atom <species> <label> <index> <x> <y> <z>
func parseAtom(tokens []string) (Atom, error) {
	if err := checkColumns(KindAtom, "atom", tokens); err != nil {
		return Atom{}, err
	}
	index, err := parseInt("atom", tokens[3])
	if err != nil {
		return Atom{}, err
	}
	atom := Atom{Species: tokens[1], Label: tokens[2], Index: index}
	for i := 0; i < 3; i++ {
		if atom.Position[i], err = parseFloat("atom", tokens[4+i]); err != nil {
			return Atom{}, err
		}
	}
	return atom, nil
}

// parseLattice: lattice <9 components>
func parseLattice(tokens []string) (Lattice, error) {
	if err := checkColumns(KindLattice, "lattice", tokens); err != nil {
		return Lattice{}, err
	}
	m, err := parseTensor("lattice", tokens[1:])
	if err != nil {
		return Lattice{}, err
	}
	return Lattice{Matrix: m}, nil
}

// parseSymmetry: symmetry <descriptor>. Lenient mode accepts descriptors
// that contain whitespace and keeps the rest of the line after the keyword
// as written.
func parseSymmetry(line string, tokens []string, lenient bool) (Symmetry, error) {
	if !lenient {
		if err := checkColumns(KindSymmetry, "symmetry", tokens); err != nil {
			return Symmetry{}, err
		}
		return Symmetry{Descriptor: tokens[1]}, nil
	}

	if len(tokens) < KindSymmetry.Columns() {
		return Symmetry{}, &FormatError{Kind: "symmetry", Got: len(tokens), Want: KindSymmetry.Columns()}
	}
	rest := strings.TrimSpace(line)[len(tokens[0]):]
	return Symmetry{Descriptor: strings.TrimSpace(rest)}, nil
}

func resolveAtom(kind string, species, indexToken string, registry *AtomRegistry) (AtomRef, error) {
	index, err := parseInt(kind, indexToken)
	if err != nil {
		return 0, err
	}
	return registry.Resolve(species, index)
}

// parseMs: ms <species> <index> <9 components>
func parseMs(tokens []string, registry *AtomRegistry) (MsRecord, error) {
	if err := checkColumns(KindMs, "ms", tokens); err != nil {
		return MsRecord{}, err
	}
	ref, err := resolveAtom("ms", tokens[1], tokens[2], registry)
	if err != nil {
		return MsRecord{}, err
	}
	sigma, err := parseTensor("ms", tokens[3:])
	if err != nil {
		return MsRecord{}, err
	}
	return MsRecord{Atom: ref, Sigma: sigma}, nil
}

// parseEfg: efg[_term] <species> <index> <9 components>
func parseEfg(tokens []string, term Term, registry *AtomRegistry) (EfgRecord, error) {
	name := term.keyword("efg")
	if err := checkColumns(KindEfg, name, tokens); err != nil {
		return EfgRecord{}, err
	}
	ref, err := resolveAtom(name, tokens[1], tokens[2], registry)
	if err != nil {
		return EfgRecord{}, err
	}
	v, err := parseTensor(name, tokens[3:])
	if err != nil {
		return EfgRecord{}, err
	}
	return EfgRecord{Atom: ref, Term: term, V: v}, nil
}

// parseIsc: isc[_term] <species1> <index1> <species2> <index2> <9 components>
func parseIsc(tokens []string, term Term, registry *AtomRegistry) (IscRecord, error) {
	name := term.keyword("isc")
	if err := checkColumns(KindIsc, name, tokens); err != nil {
		return IscRecord{}, err
	}
	ref1, err := resolveAtom(name, tokens[1], tokens[2], registry)
	if err != nil {
		return IscRecord{}, err
	}
	ref2, err := resolveAtom(name, tokens[3], tokens[4], registry)
	if err != nil {
		return IscRecord{}, err
	}
	k, err := parseTensor(name, tokens[5:])
	if err != nil {
		return IscRecord{}, err
	}
	return IscRecord{Atom1: ref1, Atom2: ref2, Term: term, K: k}, nil
}

// parseUnits: units <tag> <unit>, checked against the allowed units table
func parseUnits(block string, tokens []string) (Units, error) {
	if len(tokens) != 3 {
		return Units{}, &UnitsError{Tag: strings.Join(tokens[1:], " ")}
	}
	units := Units{Block: block, Tag: tokens[1], Unit: tokens[2]}
	if allowed, ok := allowedUnits[units.Tag]; !ok || allowed != units.Unit {
		return Units{}, &UnitsError{Tag: units.Tag, Unit: units.Unit}
	}
	return units, nil
}

// parseCalculation keeps a calculation line as tag and raw values
func parseCalculation(tokens []string) CalcRecord {
	return CalcRecord{Tag: tokens[0], Values: append([]string(nil), tokens[1:]...)}
}
