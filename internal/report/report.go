// Package report renders human readable summaries of magres documents.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	"github.com/msto63/magres/pkg/magres"
)

// Style names accepted by New
const (
	StylePlain  = "plain"
	StyleStyled = "styled"
)

// DefaultPrecision matches the six decimals of C's %f
const DefaultPrecision = 6

// MsLine is the per-atom shielding summary
type MsLine struct {
	Atom      magres.AtomKey
	Iso       float64
	Aniso     float64
	Asymmetry float64
}

// EfgLine is the per-atom field gradient summary
type EfgLine struct {
	Atom      magres.AtomKey
	Term      string
	Vzz       float64
	Asymmetry float64
}

// IscLine is the per-pair coupling summary
type IscLine struct {
	Atom1 magres.AtomKey
	Atom2 magres.AtomKey
	Term  string
	Iso   float64
}

// Summary holds everything a report shows, computed once from a document
type Summary struct {
	Source     string
	Version    string
	Counts     magres.Counts
	Lattice    *magres.Tensor
	Atoms      []magres.Atom
	Symmetries []string
	Isc        []IscLine
	Ms         []MsLine
	Efg        []EfgLine
}

// NewSummary computes the summary of doc
func NewSummary(source string, doc *magres.Document) Summary {
	s := Summary{
		Source: source,
		Counts: doc.Counts(),
		Atoms:  doc.Atoms(),
	}
	if v, ok := doc.Version(); ok {
		s.Version = v.String()
	}
	if l, ok := doc.Lattice(); ok {
		m := l.Matrix
		s.Lattice = &m
	}
	for _, sym := range doc.Symmetries() {
		s.Symmetries = append(s.Symmetries, sym.Descriptor)
	}
	for _, r := range doc.Isc() {
		s.Isc = append(s.Isc, IscLine{
			Atom1: doc.Key(r.Atom1),
			Atom2: doc.Key(r.Atom2),
			Term:  r.Term.String(),
			Iso:   r.Iso(),
		})
	}
	for _, r := range doc.Ms() {
		s.Ms = append(s.Ms, MsLine{
			Atom:      doc.Key(r.Atom),
			Iso:       r.Iso(),
			Aniso:     r.Aniso(),
			Asymmetry: r.Asymmetry(),
		})
	}
	for _, r := range doc.Efg() {
		s.Efg = append(s.Efg, EfgLine{
			Atom:      doc.Key(r.Atom),
			Term:      r.Term.String(),
			Vzz:       r.Vzz(),
			Asymmetry: r.Asymmetry(),
		})
	}
	return s
}

// Renderer writes a summary to w
type Renderer interface {
	Render(w io.Writer, s Summary) error
}

// New returns the renderer for style
func New(style string, precision int) (Renderer, error) {
	if precision < 0 {
		precision = DefaultPrecision
	}
	switch strings.ToLower(style) {
	case StylePlain, "":
		return &PlainRenderer{Precision: precision}, nil
	case StyleStyled:
		return &StyledRenderer{Precision: precision}, nil
	default:
		return nil, mdwerror.New(fmt.Sprintf("unknown report style %q", style)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("report.New")
	}
}

func termSuffix(term string) string {
	if term == "" {
		return ""
	}
	return " (" + term + ")"
}

// PlainRenderer writes the classic line oriented summary
type PlainRenderer struct {
	Precision int
}

// Render implements Renderer
func (r *PlainRenderer) Render(w io.Writer, s Summary) error {
	var b strings.Builder
	p := r.Precision

	fmt.Fprintf(&b, "%d atoms\n", s.Counts.Atoms)
	fmt.Fprintf(&b, "%d symmetries\n", s.Counts.Symmetries)
	if s.Lattice != nil {
		b.WriteString("Has lattice\n")
	} else {
		b.WriteString("No lattice\n")
	}
	fmt.Fprintf(&b, "%d J-couplings\n", s.Counts.Isc)
	fmt.Fprintf(&b, "%d EFG tensors\n", s.Counts.Efg)
	fmt.Fprintf(&b, "%d MS tensors\n", s.Counts.Ms)

	b.WriteString("Atoms:\n")
	for _, a := range s.Atoms {
		fmt.Fprintf(&b, "  %d %s %s %.*f %.*f %.*f\n", a.Index, a.Species, a.Label,
			p, a.Position[0], p, a.Position[1], p, a.Position[2])
	}

	if s.Lattice != nil {
		b.WriteString("Lattice:\n")
		for _, row := range s.Lattice {
			fmt.Fprintf(&b, "  %.*f %.*f %.*f\n", p, row[0], p, row[1], p, row[2])
		}
	}

	b.WriteString("Symmetries:\n")
	for _, sym := range s.Symmetries {
		b.WriteString(sym + "\n")
	}

	for _, l := range s.Isc {
		fmt.Fprintf(&b, "ISC: %s %d --> %s %d = %.*f%s\n", l.Atom1.Species, l.Atom1.Index,
			l.Atom2.Species, l.Atom2.Index, p, l.Iso, termSuffix(l.Term))
	}
	for _, l := range s.Ms {
		fmt.Fprintf(&b, "MS: %s %d = %.*f\n", l.Atom.Species, l.Atom.Index, p, l.Iso)
	}
	for _, l := range s.Efg {
		fmt.Fprintf(&b, "EFG: %s %d = %.*f eta %.*f%s\n", l.Atom.Species, l.Atom.Index,
			p, l.Vzz, p, l.Asymmetry, termSuffix(l.Term))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// StyledRenderer writes a boxed, colored summary for terminals
type StyledRenderer struct {
	Precision int
}

// Render implements Renderer
func (r *StyledRenderer) Render(w io.Writer, s Summary) error {
	p := r.Precision
	num := func(v float64) string { return ValueStyle.Render(fmt.Sprintf("%.*f", p, v)) }
	atom := func(k magres.AtomKey) string { return SpeciesStyle.Render(k.Species) + fmt.Sprintf(" %d", k.Index) }

	var lines []string

	title := "magres document"
	if s.Source != "" {
		title = s.Source
	}
	lines = append(lines, RenderTitle(title))
	if s.Version != "" {
		lines = append(lines, SubtitleStyle.Render("format v"+s.Version))
	}

	lattice := MissingStyle.Render("no lattice")
	if s.Lattice != nil {
		lattice = "lattice"
	}
	lines = append(lines, fmt.Sprintf("%s %d  %s %d  %s",
		LabelStyle.Render("atoms"), s.Counts.Atoms,
		LabelStyle.Render("symmetries"), s.Counts.Symmetries,
		lattice))
	lines = append(lines, fmt.Sprintf("%s %d  %s %d  %s %d",
		LabelStyle.Render("ms"), s.Counts.Ms,
		LabelStyle.Render("efg"), s.Counts.Efg,
		LabelStyle.Render("isc"), s.Counts.Isc))

	if len(s.Atoms) > 0 {
		lines = append(lines, RenderSection("Atoms"))
		for _, a := range s.Atoms {
			lines = append(lines, fmt.Sprintf("%s %s  %s %s %s",
				atom(a.Key()), LabelStyle.Render(a.Label),
				num(a.Position[0]), num(a.Position[1]), num(a.Position[2])))
		}
	}

	if s.Lattice != nil {
		lines = append(lines, RenderSection("Lattice"))
		for _, row := range s.Lattice {
			lines = append(lines, fmt.Sprintf("%s %s %s", num(row[0]), num(row[1]), num(row[2])))
		}
	}

	if len(s.Symmetries) > 0 {
		lines = append(lines, RenderSection("Symmetries"))
		lines = append(lines, s.Symmetries...)
	}

	if len(s.Ms) > 0 {
		lines = append(lines, RenderSection("Magnetic shielding"))
		for _, l := range s.Ms {
			lines = append(lines, fmt.Sprintf("%s  %s %s  %s %s  %s %s",
				atom(l.Atom),
				LabelStyle.Render("iso"), num(l.Iso),
				LabelStyle.Render("aniso"), num(l.Aniso),
				LabelStyle.Render("eta"), num(l.Asymmetry)))
		}
	}

	if len(s.Efg) > 0 {
		lines = append(lines, RenderSection("Electric field gradient"))
		for _, l := range s.Efg {
			lines = append(lines, fmt.Sprintf("%s  %s %s  %s %s%s",
				atom(l.Atom),
				LabelStyle.Render("Vzz"), num(l.Vzz),
				LabelStyle.Render("eta"), num(l.Asymmetry),
				termSuffix(l.Term)))
		}
	}

	if len(s.Isc) > 0 {
		lines = append(lines, RenderSection("J-couplings"))
		for _, l := range s.Isc {
			lines = append(lines, fmt.Sprintf("%s --> %s  %s %s%s",
				atom(l.Atom1), atom(l.Atom2),
				LabelStyle.Render("K_iso"), num(l.Iso),
				termSuffix(l.Term)))
		}
	}

	out := BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	_, err := io.WriteString(w, out+"\n")
	return err
}
