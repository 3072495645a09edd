// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Merging property tables of several documents
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

import (
	mdwerror "github.com/msto63/magres/foundation/core/error"
)

// Merge combines documents computed for the same structure. Atoms, lattice,
// symmetry, version and calculation come from the first document; tensor
// records of all documents are appended in order and re-resolved against
// the first document's atoms. Units are merged without duplicates.
func Merge(docs ...*Document) (*Document, error) {
	if len(docs) == 0 || docs[0] == nil {
		return nil, mdwerror.New("merge needs at least one document").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("magres.Merge")
	}

	base := docs[0]
	registry := NewAtomRegistry()
	for _, a := range base.atoms {
		registry.Register(a)
	}

	out := &Document{
		version:     base.version,
		hasVersion:  base.hasVersion,
		atoms:       registry.Atoms(),
		lattice:     base.lattice,
		hasLattice:  base.hasLattice,
		symmetries:  base.Symmetries(),
		ms:          base.Ms(),
		efg:         base.Efg(),
		isc:         base.Isc(),
		units:       base.Units(),
		calculation: base.Calculation(),
	}

	for i, doc := range docs[1:] {
		if doc == nil {
			continue
		}
		if err := out.mergeFrom(doc, registry); err != nil {
			return nil, mdwerror.Wrap(err, "atom missing from base document").
				WithCode(mdwerror.CodeMergeConflict).
				WithOperation("magres.Merge").
				WithDetail("document", i+1)
		}
	}
	return out, nil
}

func (d *Document) mergeFrom(src *Document, registry *AtomRegistry) error {
	resolve := func(ref AtomRef) (AtomRef, error) {
		k := src.Key(ref)
		return registry.Resolve(k.Species, k.Index)
	}

	for _, rec := range src.ms {
		ref, err := resolve(rec.Atom)
		if err != nil {
			return err
		}
		rec.Atom = ref
		d.ms = append(d.ms, rec)
	}
	for _, rec := range src.efg {
		ref, err := resolve(rec.Atom)
		if err != nil {
			return err
		}
		rec.Atom = ref
		d.efg = append(d.efg, rec)
	}
	for _, rec := range src.isc {
		ref1, err := resolve(rec.Atom1)
		if err != nil {
			return err
		}
		ref2, err := resolve(rec.Atom2)
		if err != nil {
			return err
		}
		rec.Atom1, rec.Atom2 = ref1, ref2
		d.isc = append(d.isc, rec)
	}

	for _, u := range src.units {
		if !containsUnits(d.units, u) {
			d.units = append(d.units, u)
		}
	}
	return nil
}

func containsUnits(list []Units, u Units) bool {
	for _, existing := range list {
		if existing == u {
			return true
		}
	}
	return false
}
