// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Value types of the document model
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"fmt"
	"strconv"
)

// Vector3 is a cartesian position in Angstrom
type Vector3 [3]float64

// Tensor is a 3x3 matrix stored row-major
type Tensor [3][3]float64

// AtomKey identifies an atom for cross-references
type AtomKey struct {
	Species string `json:"species" yaml:"species"`
	Index   int    `json:"index" yaml:"index"`
}

func (k AtomKey) String() string {
	return k.Species + " " + strconv.Itoa(k.Index)
}

// Atom is one atom line of the atoms block
type Atom struct {
	Index    int     `json:"index" yaml:"index"`
	Species  string  `json:"species" yaml:"species"`
	Label    string  `json:"label" yaml:"label"`
	Position Vector3 `json:"position" yaml:"position,flow"`
}

// Key returns the (species, index) pair of the atom
func (a Atom) Key() AtomKey {
	return AtomKey{Species: a.Species, Index: a.Index}
}

// AtomRef indexes the atom list of the Document that owns the record
type AtomRef int

// Lattice holds the three lattice vectors as matrix rows
type Lattice struct {
	Matrix Tensor
}

// Symmetry is a symmetry operation kept verbatim
type Symmetry struct {
	Descriptor string
}

// Term distinguishes the total tensor from its contributions
type Term int

const (
	TermTotal Term = iota
	TermLocal
	TermNonlocal
	TermFermiContact
	TermSpinDipolar
	TermOrbitalP
	TermOrbitalD
)

var termSuffix = map[Term]string{
	TermTotal:        "",
	TermLocal:        "local",
	TermNonlocal:     "nonlocal",
	TermFermiContact: "fc",
	TermSpinDipolar:  "spin",
	TermOrbitalP:     "orbital_p",
	TermOrbitalD:     "orbital_d",
}

// String returns the keyword suffix of the term ("" for TermTotal)
func (t Term) String() string {
	if s, ok := termSuffix[t]; ok {
		return s
	}
	return fmt.Sprintf("term(%d)", int(t))
}

// keyword builds the record keyword for base ("efg", "isc") and t
func (t Term) keyword(base string) string {
	if t == TermTotal {
		return base
	}
	return base + "_" + t.String()
}

// MsRecord is a magnetic shielding tensor in ppm
type MsRecord struct {
	Atom  AtomRef
	Sigma Tensor
}

// EfgRecord is an electric field gradient tensor in atomic units
type EfgRecord struct {
	Atom AtomRef
	Term Term
	V    Tensor
}

// IscRecord is an indirect spin-spin coupling tensor between two atoms
type IscRecord struct {
	Atom1 AtomRef
	Atom2 AtomRef
	Term  Term
	K     Tensor
}

// Units is one "units <tag> <unit>" declaration
type Units struct {
	Block string `json:"block" yaml:"block"`
	Tag   string `json:"tag" yaml:"tag"`
	Unit  string `json:"unit" yaml:"unit"`
}

// CalcRecord is one generic line of the calculation block
type CalcRecord struct {
	Tag    string   `json:"tag" yaml:"tag"`
	Values []string `json:"values" yaml:"values,flow"`
}

// Version is the format version from the file signature
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
