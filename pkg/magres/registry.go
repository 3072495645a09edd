// ============================================================================
// magres - Magnetic resonance data toolkit
// ============================================================================
//
// Package:     magres
// Description: Atom registry resolving (species, index) references
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package magres

// AtomRegistry holds the atoms declared so far, in declaration order, and
// resolves references to them. When a key is declared twice the first
// declaration stays canonical.
type AtomRegistry struct {
	atoms []Atom
	index map[AtomKey]AtomRef
}

// NewAtomRegistry creates an empty registry
func NewAtomRegistry() *AtomRegistry {
	return &AtomRegistry{index: make(map[AtomKey]AtomRef)}
}

// Register appends an atom and returns its reference
func (r *AtomRegistry) Register(atom Atom) AtomRef {
	ref := AtomRef(len(r.atoms))
	r.atoms = append(r.atoms, atom)
	if _, exists := r.index[atom.Key()]; !exists {
		r.index[atom.Key()] = ref
	}
	return ref
}

// Resolve returns the first atom registered under (species, index)
func (r *AtomRegistry) Resolve(species string, index int) (AtomRef, error) {
	ref, ok := r.index[AtomKey{Species: species, Index: index}]
	if !ok {
		return 0, &UnresolvedAtomError{Species: species, Index: index}
	}
	return ref, nil
}

// Len returns the number of registered atoms
func (r *AtomRegistry) Len() int {
	return len(r.atoms)
}

// Atoms returns a copy of the registered atoms in registration order
func (r *AtomRegistry) Atoms() []Atom {
	return append([]Atom(nil), r.atoms...)
}
