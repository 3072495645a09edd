// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: JSON and YAML representation of documents
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// exportDocument is the serialised shape of a Document. Atom references
// are written as {species, index} keys.
type exportDocument struct {
	Version     *Version       `json:"version,omitempty" yaml:"version,omitempty"`
	Calculation []CalcRecord   `json:"calculation,omitempty" yaml:"calculation,omitempty"`
	Units       []Units        `json:"units,omitempty" yaml:"units,omitempty"`
	Lattice     *Tensor        `json:"lattice,omitempty" yaml:"lattice,omitempty,flow"`
	Symmetry    []string       `json:"symmetry,omitempty" yaml:"symmetry,omitempty"`
	Atoms       []Atom         `json:"atoms" yaml:"atoms"`
	Ms          []exportMs     `json:"ms,omitempty" yaml:"ms,omitempty"`
	Efg         []exportEfg    `json:"efg,omitempty" yaml:"efg,omitempty"`
	Isc         []exportIsc    `json:"isc,omitempty" yaml:"isc,omitempty"`
	Summary     *exportSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type exportMs struct {
	Atom  AtomKey `json:"atom" yaml:"atom,flow"`
	Sigma Tensor  `json:"sigma" yaml:"sigma,flow"`
	Iso   float64 `json:"iso" yaml:"iso"`
}

type exportEfg struct {
	Atom AtomKey `json:"atom" yaml:"atom,flow"`
	Term string  `json:"term,omitempty" yaml:"term,omitempty"`
	V    Tensor  `json:"V" yaml:"V,flow"`
}

type exportIsc struct {
	Atom1 AtomKey `json:"atom1" yaml:"atom1,flow"`
	Atom2 AtomKey `json:"atom2" yaml:"atom2,flow"`
	Term  string  `json:"term,omitempty" yaml:"term,omitempty"`
	K     Tensor  `json:"K" yaml:"K,flow"`
	Iso   float64 `json:"iso" yaml:"iso"`
}

type exportSummary struct {
	Atoms      int  `json:"atoms" yaml:"atoms"`
	Symmetries int  `json:"symmetries" yaml:"symmetries"`
	HasLattice bool `json:"has_lattice" yaml:"has_lattice"`
	Ms         int  `json:"ms" yaml:"ms"`
	Efg        int  `json:"efg" yaml:"efg"`
	Isc        int  `json:"isc" yaml:"isc"`
}

func (d *Document) export() exportDocument {
	out := exportDocument{
		Calculation: d.Calculation(),
		Units:       d.Units(),
		Atoms:       d.Atoms(),
	}
	if out.Atoms == nil {
		out.Atoms = []Atom{}
	}
	if d.hasVersion {
		v := d.version
		out.Version = &v
	}
	if d.hasLattice {
		m := d.lattice.Matrix
		out.Lattice = &m
	}
	for _, s := range d.symmetries {
		out.Symmetry = append(out.Symmetry, s.Descriptor)
	}
	for _, rec := range d.ms {
		out.Ms = append(out.Ms, exportMs{Atom: d.Key(rec.Atom), Sigma: rec.Sigma, Iso: rec.Iso()})
	}
	for _, rec := range d.efg {
		out.Efg = append(out.Efg, exportEfg{Atom: d.Key(rec.Atom), Term: rec.Term.String(), V: rec.V})
	}
	for _, rec := range d.isc {
		out.Isc = append(out.Isc, exportIsc{
			Atom1: d.Key(rec.Atom1),
			Atom2: d.Key(rec.Atom2),
			Term:  rec.Term.String(),
			K:     rec.K,
			Iso:   rec.Iso(),
		})
	}
	c := d.Counts()
	out.Summary = &exportSummary{
		Atoms:      c.Atoms,
		Symmetries: c.Symmetries,
		HasLattice: c.HasLattice,
		Ms:         c.Ms,
		Efg:        c.Efg,
		Isc:        c.Isc,
	}
	return out
}

// MarshalJSON implements json.Marshaler
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.export())
}

// MarshalYAML implements yaml.Marshaler
func (d *Document) MarshalYAML() (interface{}, error) {
	return d.export(), nil
}

// ToJSON renders the document as indented JSON
func (d *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d.export(), "", "  ")
}

// ToYAML renders the document as YAML
func (d *Document) ToYAML() ([]byte, error) {
	return yaml.Marshal(d.export())
}
