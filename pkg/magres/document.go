// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Immutable document aggregate with read-only accessors
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

// Document is the result of one successful parse. It owns all records;
// tensor records refer to atoms by AtomRef into Atoms().
type Document struct {
	version    Version
	hasVersion bool

	atoms      []Atom
	lattice    Lattice
	hasLattice bool
	symmetries []Symmetry

	ms  []MsRecord
	efg []EfgRecord
	isc []IscRecord

	units       []Units
	calculation []CalcRecord
}

// Counts summarises the size of a document
type Counts struct {
	Atoms       int
	Symmetries  int
	Ms          int
	Efg         int
	Isc         int
	HasLattice  bool
	Calculation int
}

// Version returns the signature version, if the file had one
func (d *Document) Version() (Version, bool) {
	return d.version, d.hasVersion
}

// Atoms returns the atoms in declaration order
func (d *Document) Atoms() []Atom {
	return append([]Atom(nil), d.atoms...)
}

// Atom returns the atom a reference points to
func (d *Document) Atom(ref AtomRef) (Atom, bool) {
	if ref < 0 || int(ref) >= len(d.atoms) {
		return Atom{}, false
	}
	return d.atoms[ref], true
}

// Key returns the (species, index) key of a referenced atom
func (d *Document) Key(ref AtomRef) AtomKey {
	atom, _ := d.Atom(ref)
	return atom.Key()
}

// Lattice returns the lattice; ok is false when the file declared none
func (d *Document) Lattice() (Lattice, bool) {
	return d.lattice, d.hasLattice
}

// Symmetries returns the symmetry operations in file order
func (d *Document) Symmetries() []Symmetry {
	return append([]Symmetry(nil), d.symmetries...)
}

// Ms returns the magnetic shielding records in file order
func (d *Document) Ms() []MsRecord {
	return append([]MsRecord(nil), d.ms...)
}

// Efg returns the electric field gradient records in file order
func (d *Document) Efg() []EfgRecord {
	return append([]EfgRecord(nil), d.efg...)
}

// Isc returns the spin-spin coupling records in file order
func (d *Document) Isc() []IscRecord {
	return append([]IscRecord(nil), d.isc...)
}

// Units returns the units declarations recorded with Options.CheckUnits
func (d *Document) Units() []Units {
	return append([]Units(nil), d.units...)
}

// Calculation returns the calculation block records
func (d *Document) Calculation() []CalcRecord {
	out := make([]CalcRecord, len(d.calculation))
	for i, rec := range d.calculation {
		out[i] = CalcRecord{Tag: rec.Tag, Values: append([]string(nil), rec.Values...)}
	}
	return out
}

// Counts returns the number of records of each kind
func (d *Document) Counts() Counts {
	return Counts{
		Atoms:       len(d.atoms),
		Symmetries:  len(d.symmetries),
		Ms:          len(d.ms),
		Efg:         len(d.efg),
		Isc:         len(d.isc),
		HasLattice:  d.hasLattice,
		Calculation: len(d.calculation),
	}
}
