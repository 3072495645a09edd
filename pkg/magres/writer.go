// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Canonical magres text output
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Format renders the document as magres text. Parsing the result with the
// options that produced the document yields an equal document, except that
// a document without signature gains CurrentVersion.
func (d *Document) Format() string {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the document as magres text: signature, calculation,
// atoms and magres blocks. Records keep their original order.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder

	version := CurrentVersion
	if d.hasVersion {
		version = d.version
	}
	fmt.Fprintf(&b, "%s%d.%d\n", Signature, version.Major, version.Minor)

	if len(d.calculation) > 0 {
		b.WriteString("[calculation]\n")
		for _, rec := range d.calculation {
			writeLine(&b, rec.Tag, rec.Values...)
		}
		b.WriteString("[/calculation]\n")
	}

	if d.hasAtomsBlock() {
		b.WriteString("[atoms]\n")
		d.writeUnits(&b, BlockAtoms)
		if d.hasLattice {
			writeLine(&b, "lattice", tensorFields(d.lattice.Matrix)...)
		}
		for _, sym := range d.symmetries {
			writeLine(&b, "symmetry", sym.Descriptor)
		}
		for _, a := range d.atoms {
			writeLine(&b, "atom", a.Species, a.Label, strconv.Itoa(a.Index),
				formatFloat(a.Position[0]), formatFloat(a.Position[1]), formatFloat(a.Position[2]))
		}
		b.WriteString("[/atoms]\n")
	}

	if d.hasMagresBlock() {
		b.WriteString("[magres]\n")
		d.writeUnits(&b, BlockMagres)
		for _, rec := range d.ms {
			k := d.Key(rec.Atom)
			writeLine(&b, "ms", append([]string{k.Species, strconv.Itoa(k.Index)}, tensorFields(rec.Sigma)...)...)
		}
		for _, rec := range d.efg {
			k := d.Key(rec.Atom)
			writeLine(&b, rec.Term.keyword("efg"), append([]string{k.Species, strconv.Itoa(k.Index)}, tensorFields(rec.V)...)...)
		}
		for _, rec := range d.isc {
			k1, k2 := d.Key(rec.Atom1), d.Key(rec.Atom2)
			fields := []string{k1.Species, strconv.Itoa(k1.Index), k2.Species, strconv.Itoa(k2.Index)}
			writeLine(&b, rec.Term.keyword("isc"), append(fields, tensorFields(rec.K)...)...)
		}
		b.WriteString("[/magres]\n")
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (d *Document) hasAtomsBlock() bool {
	return len(d.atoms) > 0 || d.hasLattice || len(d.symmetries) > 0 || d.hasUnits(BlockAtoms)
}

func (d *Document) hasMagresBlock() bool {
	return len(d.ms) > 0 || len(d.efg) > 0 || len(d.isc) > 0 || d.hasUnits(BlockMagres)
}

func (d *Document) hasUnits(blockName string) bool {
	for _, u := range d.units {
		if u.Block == blockName {
			return true
		}
	}
	return false
}

func (d *Document) writeUnits(b *strings.Builder, blockName string) {
	for _, u := range d.units {
		if u.Block == blockName {
			writeLine(b, "units", u.Tag, u.Unit)
		}
	}
}

func writeLine(b *strings.Builder, keyword string, fields ...string) {
	b.WriteString("  ")
	b.WriteString(keyword)
	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	b.WriteByte('\n')
}

func tensorFields(t Tensor) []string {
	out := make([]string, 0, 9)
	for _, row := range t {
		for _, v := range row {
			out = append(out, formatFloat(v))
		}
	}
	return out
}

// formatFloat uses the shortest representation that parses back exactly
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
