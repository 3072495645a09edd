package report

import (
	"bytes"
	"strings"
	"testing"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	"github.com/msto63/magres/pkg/magres"
)

const sample = `#$magres-abinitio-v1.0
[atoms]
lattice 6.0 0.0 0.0 0.0 6.0 0.0 0.0 0.0 6.0
symmetry x,y,z
atom H H1 1 0.1 0.2 0.3
atom C C1 1 2.0 2.0 2.0
[/atoms]
[magres]
ms H 1 30.0 0 0 0 29.0 0 0 0 31.0
efg C 1 -1 0 0 0 -2 0 0 0 3
isc C 1 H 1 12 0 0 0 15 0 0 0 18
[/magres]
`

func sampleSummary(t *testing.T) Summary {
	t.Helper()
	doc, err := magres.Parse(sample)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return NewSummary("sample.magres", doc)
}

func TestNewSummary(t *testing.T) {
	s := sampleSummary(t)

	if s.Version != "1.0" || s.Source != "sample.magres" {
		t.Errorf("Version/Source = %q/%q", s.Version, s.Source)
	}
	if s.Lattice == nil || s.Lattice[1][1] != 6.0 {
		t.Errorf("Lattice = %v", s.Lattice)
	}
	if len(s.Ms) != 1 || s.Ms[0].Iso != 30.0 || s.Ms[0].Atom != (magres.AtomKey{Species: "H", Index: 1}) {
		t.Errorf("Ms = %+v", s.Ms)
	}
	if len(s.Isc) != 1 || s.Isc[0].Iso != 15.0 || s.Isc[0].Atom2.Species != "H" {
		t.Errorf("Isc = %+v", s.Isc)
	}
	if len(s.Efg) != 1 || s.Efg[0].Vzz != 3.0 {
		t.Errorf("Efg = %+v", s.Efg)
	}
}

func TestPlainRenderer(t *testing.T) {
	want := `2 atoms
1 symmetries
Has lattice
1 J-couplings
1 EFG tensors
1 MS tensors
Atoms:
  1 H H1 0.100000 0.200000 0.300000
  1 C C1 2.000000 2.000000 2.000000
Lattice:
  6.000000 0.000000 0.000000
  0.000000 6.000000 0.000000
  0.000000 0.000000 6.000000
Symmetries:
x,y,z
ISC: C 1 --> H 1 = 15.000000
MS: H 1 = 30.000000
EFG: C 1 = 3.000000 eta 0.333333
`

	var buf bytes.Buffer
	r := &PlainRenderer{Precision: DefaultPrecision}
	if err := r.Render(&buf, sampleSummary(t)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestPlainRenderer_NoLattice(t *testing.T) {
	doc, err := magres.Parse("[atoms]\natom Si Si1 1 0 0 0\n[/atoms]\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var buf bytes.Buffer
	r := &PlainRenderer{Precision: 2}
	if err := r.Render(&buf, NewSummary("", doc)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No lattice\n") {
		t.Errorf("missing No lattice in %q", out)
	}
	if strings.Contains(out, "Lattice:") {
		t.Errorf("lattice rows printed without a lattice: %q", out)
	}
	if !strings.Contains(out, "  1 Si Si1 0.00 0.00 0.00\n") {
		t.Errorf("precision not applied: %q", out)
	}
}

func TestStyledRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &StyledRenderer{Precision: 3}
	if err := r.Render(&buf, sampleSummary(t)); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"sample.magres", "format v1.0", "Atoms", "Magnetic shielding", "30.000", "15.000", "x,y,z"} {
		if !strings.Contains(out, want) {
			t.Errorf("styled output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "╭") {
		t.Errorf("styled output should be boxed:\n%s", out)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		style string
		check func(t *testing.T, r Renderer, err error)
	}{
		{"plain", func(t *testing.T, r Renderer, err error) {
			if _, ok := r.(*PlainRenderer); !ok || err != nil {
				t.Errorf("New(plain) = %T, %v", r, err)
			}
		}},
		{"", func(t *testing.T, r Renderer, err error) {
			if _, ok := r.(*PlainRenderer); !ok || err != nil {
				t.Errorf("New(\"\") = %T, %v", r, err)
			}
		}},
		{"Styled", func(t *testing.T, r Renderer, err error) {
			if _, ok := r.(*StyledRenderer); !ok || err != nil {
				t.Errorf("New(Styled) = %T, %v", r, err)
			}
		}},
		{"html", func(t *testing.T, r Renderer, err error) {
			if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
				t.Errorf("New(html) error = %v, want code %v", err, mdwerror.CodeInvalidInput)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			r, err := New(tt.style, -1)
			tt.check(t, r, err)
		})
	}

	r, _ := New("plain", -1)
	if r.(*PlainRenderer).Precision != DefaultPrecision {
		t.Errorf("negative precision should fall back to %d", DefaultPrecision)
	}
}
