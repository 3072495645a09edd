package magres

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	mdwlog "github.com/msto63/magres/foundation/core/log"
)

func newTestParser(t *testing.T, opts Options) *Parser {
	t.Helper()
	opts.Logger = mdwlog.New().WithOutput(io.Discard)
	if opts.MaxMajorVersion == 0 {
		opts.MaxMajorVersion = 1
	}
	p, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func readTestdata(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

const identity = "1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0 1.0"

func TestParser_Parse(t *testing.T) {
	p := newTestParser(t, Options{})

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, doc *Document)
	}{
		{
			name:  "single atom without lattice",
			input: "[atoms]\natom H 1 1 0.0 0.0 0.0\n[/atoms]",
			check: func(t *testing.T, doc *Document) {
				atoms := doc.Atoms()
				want := []Atom{{Species: "H", Label: "1", Index: 1, Position: Vector3{0, 0, 0}}}
				if !reflect.DeepEqual(atoms, want) {
					t.Errorf("Atoms() = %+v, want %+v", atoms, want)
				}
				if _, ok := doc.Lattice(); ok {
					t.Error("document should have no lattice")
				}
				if _, ok := doc.Version(); ok {
					t.Error("document should have no version")
				}
			},
		},
		{
			name:  "commented atom line",
			input: "[atoms]\n# atom H 1 1 0 0 0\natom C C1 1 0 0 0 # atom H 2 2 0 0 0\n[/atoms]",
			check: func(t *testing.T, doc *Document) {
				if n := len(doc.Atoms()); n != 1 {
					t.Errorf("got %d atoms, want 1", n)
				}
			},
		},
		{
			name:  "tags inside comments are ignored",
			input: "# [atoms]\n[atoms]\natom H H1 1 0 0 0 # [/atoms] ]\n[/atoms]\n# [/magres]",
			check: func(t *testing.T, doc *Document) {
				if n := len(doc.Atoms()); n != 1 {
					t.Errorf("got %d atoms, want 1", n)
				}
			},
		},
		{
			name: "last lattice wins",
			input: "[atoms]\nlattice 1 0 0 0 1 0 0 0 1\n" +
				"lattice 2 0 0 0 2 0 0 0 2\n[/atoms]",
			check: func(t *testing.T, doc *Document) {
				lattice, ok := doc.Lattice()
				if !ok {
					t.Fatal("lattice missing")
				}
				if lattice.Matrix[0][0] != 2 || lattice.Matrix[2][2] != 2 {
					t.Errorf("Lattice() = %v, want the second lattice", lattice.Matrix)
				}
			},
		},
		{
			name:  "unknown keywords units and blocks are skipped",
			input: "[atoms]\nunits atom Angstrom\nfoo 1 2\natom H H1 1 0 0 0\n[/atoms]\n[other]\nms X 9 bad\n[/other]\n[magres]\nunits ms ppm\nsus 1 2 3\n[/magres]",
			check: func(t *testing.T, doc *Document) {
				c := doc.Counts()
				if c.Atoms != 1 || c.Ms != 0 {
					t.Errorf("Counts() = %+v", c)
				}
				if len(doc.Units()) != 0 {
					t.Error("units should be discarded without CheckUnits")
				}
			},
		},
		{
			name:  "contribution terms are unknown by default",
			input: "[atoms]\natom C C1 1 0 0 0\natom H H1 1 1 0 0\n[/atoms]\n[magres]\nisc_fc C 1 H 1 " + identity + "\nefg_local C 1 x\n[/magres]",
			check: func(t *testing.T, doc *Document) {
				if len(doc.Isc()) != 0 || len(doc.Efg()) != 0 {
					t.Errorf("contributions should be skipped, got %+v", doc.Counts())
				}
			},
		},
		{
			name: "tensor records resolve to their atoms",
			input: "[atoms]\natom H H1 1 0 0 0\natom C C1 1 1 0 0\natom H H2 2 2 0 0\n[/atoms]\n[magres]\n" +
				"ms H 2 " + identity + "\nefg C 1 " + identity + "\nisc H 2 C 1 " + identity + "\n[/magres]",
			check: func(t *testing.T, doc *Document) {
				ms := doc.Ms()
				if len(ms) != 1 || doc.Key(ms[0].Atom) != (AtomKey{"H", 2}) {
					t.Errorf("ms atom = %v", doc.Key(ms[0].Atom))
				}
				efg := doc.Efg()
				if len(efg) != 1 || doc.Key(efg[0].Atom) != (AtomKey{"C", 1}) || efg[0].Term != TermTotal {
					t.Errorf("efg = %+v", efg)
				}
				isc := doc.Isc()
				if len(isc) != 1 {
					t.Fatalf("got %d isc records", len(isc))
				}
				a1, ok1 := doc.Atom(isc[0].Atom1)
				a2, ok2 := doc.Atom(isc[0].Atom2)
				if !ok1 || !ok2 || a1.Label != "H2" || a2.Label != "C1" {
					t.Errorf("isc atoms = %+v, %+v", a1, a2)
				}
			},
		},
		{
			name:  "duplicate atom key resolves to the first atom",
			input: "[atoms]\natom H first 1 0 0 0\natom H second 1 1 1 1\n[/atoms]\n[magres]\nms H 1 " + identity + "\n[/magres]",
			check: func(t *testing.T, doc *Document) {
				if n := len(doc.Atoms()); n != 2 {
					t.Errorf("both atoms should be kept, got %d", n)
				}
				atom, _ := doc.Atom(doc.Ms()[0].Atom)
				if atom.Label != "first" {
					t.Errorf("resolved %q, want first", atom.Label)
				}
			},
		},
		{
			name:  "symmetry and calculation records",
			input: "[calculation]\ncalc_code CASTEP\ncalc_name\n[/calculation]\n[atoms]\nsymmetry x,y,z\nsymmetry -x+1/2,y,-z\n[/atoms]",
			check: func(t *testing.T, doc *Document) {
				want := []Symmetry{{"x,y,z"}, {"-x+1/2,y,-z"}}
				if !reflect.DeepEqual(doc.Symmetries(), want) {
					t.Errorf("Symmetries() = %v", doc.Symmetries())
				}
				calc := doc.Calculation()
				if len(calc) != 2 || calc[0].Tag != "calc_code" || calc[0].Values[0] != "CASTEP" || len(calc[1].Values) != 0 {
					t.Errorf("Calculation() = %+v", calc)
				}
			},
		},
		{
			name:  "empty input",
			input: "",
			check: func(t *testing.T, doc *Document) {
				if doc.Counts() != (Counts{}) {
					t.Errorf("Counts() = %+v", doc.Counts())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := p.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			tt.check(t, doc)
		})
	}
}

func TestParser_Errors(t *testing.T) {
	p := newTestParser(t, Options{})

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "unresolved atom",
			input: "[magres]\nms H 1 1.0 0.0 0.0 0.0 1.0 0.0 0.0 0.0 1.0\n[/magres]",
			check: func(t *testing.T, err error) {
				var target *UnresolvedAtomError
				if !errors.As(err, &target) {
					t.Fatalf("want UnresolvedAtomError, got %T: %v", err, err)
				}
				if target.Species != "H" || target.Index != 1 {
					t.Errorf("got %s %d, want H 1", target.Species, target.Index)
				}
			},
		},
		{
			name:  "atom declared after use",
			input: "[magres]\nms H 1 " + identity + "\n[/magres]\n[atoms]\natom H H1 1 0 0 0\n[/atoms]",
			check: func(t *testing.T, err error) {
				var target *UnresolvedAtomError
				if !errors.As(err, &target) {
					t.Fatalf("want UnresolvedAtomError, got %v", err)
				}
			},
		},
		{
			name:  "second isc atom unresolved",
			input: "[atoms]\natom C C1 1 0 0 0\n[/atoms]\n[magres]\nisc C 1 H 7 " + identity + "\n[/magres]",
			check: func(t *testing.T, err error) {
				var target *UnresolvedAtomError
				if !errors.As(err, &target) || target.Species != "H" || target.Index != 7 {
					t.Fatalf("want UnresolvedAtomError(H, 7), got %v", err)
				}
			},
		},
		{
			name:  "lattice with nine columns",
			input: "[atoms]\nlattice 1 0 0 0 1 0 0 0\n[/atoms]",
			check: wantFormatError("lattice", 9),
		},
		{
			name:  "atom with six columns",
			input: "[atoms]\natom H H1 1 0 0\n[/atoms]",
			check: wantFormatError("atom", 6),
		},
		{
			name:  "atom with eight columns",
			input: "[atoms]\natom H H1 1 0 0 0 0\n[/atoms]",
			check: wantFormatError("atom", 8),
		},
		{
			name:  "symmetry with embedded space in strict mode",
			input: "[atoms]\nsymmetry x, y, z\n[/atoms]",
			check: wantFormatError("symmetry", 4),
		},
		{
			name:  "ms with eleven columns",
			input: "[atoms]\natom H H1 1 0 0 0\n[/atoms]\n[magres]\nms H 1 1 0 0 0 1 0 0 0\n[/magres]",
			check: wantFormatError("ms", 11),
		},
		{
			name:  "isc with thirteen columns",
			input: "[atoms]\natom H H1 1 0 0 0\n[/atoms]\n[magres]\nisc H 1 H 1 1 0 0 0 1 0 0 0\n[/magres]",
			check: wantFormatError("isc", 13),
		},
		{
			name:  "non numeric index",
			input: "[atoms]\natom H H1 one 0 0 0\n[/atoms]",
			check: wantNumericError("one"),
		},
		{
			name:  "non numeric position",
			input: "[atoms]\natom H H1 1 0.0 1.2.3 0\n[/atoms]",
			check: wantNumericError("1.2.3"),
		},
		{
			name:  "partially numeric tensor component",
			input: "[atoms]\natom H H1 1 0 0 0\n[/atoms]\n[magres]\nms H 1 1 0 0 0 1 0 0 0 1x\n[/magres]",
			check: wantNumericError("1x"),
		},
		{
			name:  "unterminated block",
			input: "[atoms]\natom H H1 1 0 0 0\n",
			check: func(t *testing.T, err error) {
				var target *UnterminatedBlockError
				if !errors.As(err, &target) || target.Block != "atoms" || target.Line != 1 {
					t.Fatalf("want UnterminatedBlockError(atoms), got %v", err)
				}
			},
		},
		{
			name:  "opening tag inside block",
			input: "[atoms]\n[magres]\n[/magres]\n[/atoms]",
			check: wantMalformedTag(2),
		},
		{
			name:  "closing tag outside block",
			input: "\n[/atoms]",
			check: wantMalformedTag(2),
		},
		{
			name:  "stray closing bracket",
			input: "atoms]\n",
			check: wantMalformedTag(1),
		},
		{
			name:  "unterminated tag",
			input: "[atoms\natom H H1 1 0 0 0\n[/atoms]",
			check: wantMalformedTag(1),
		},
		{
			name:  "tag cut by comment",
			input: "[atoms # note]\n[/atoms]",
			check: wantMalformedTag(1),
		},
		{
			name:  "tag cut by bracket",
			input: "[atoms[/atoms]",
			check: wantMalformedTag(1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := p.Parse(tt.input)
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if doc != nil {
				t.Error("Parse() must not return a partial document")
			}
			tt.check(t, err)
		})
	}
}

func wantFormatError(kind string, got int) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var target *FormatError
		if !errors.As(err, &target) {
			t.Fatalf("want FormatError, got %T: %v", err, err)
		}
		if target.Kind != kind || target.Got != got {
			t.Errorf("FormatError(%q, %d), want (%q, %d)", target.Kind, target.Got, kind, got)
		}
	}
}

func wantNumericError(token string) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var target *NumericParseError
		if !errors.As(err, &target) {
			t.Fatalf("want NumericParseError, got %T: %v", err, err)
		}
		if target.Token != token {
			t.Errorf("Token = %q, want %q", target.Token, token)
		}
	}
}

func wantMalformedTag(line int) func(t *testing.T, err error) {
	return func(t *testing.T, err error) {
		t.Helper()
		var target *MalformedTagError
		if !errors.As(err, &target) {
			t.Fatalf("want MalformedTagError, got %T: %v", err, err)
		}
		if target.Line != line {
			t.Errorf("Line = %d, want %d", target.Line, line)
		}
	}
}

func TestParser_LineError(t *testing.T) {
	p := newTestParser(t, Options{})

	input := "#$magres-abinitio-v1.0\n[atoms]\natom H H1 1 0 0 0\n  atom H H2 2 0 0\n[/atoms]"
	_, err := p.Parse(input)

	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("want LineError, got %T: %v", err, err)
	}
	if lineErr.Line != 4 || lineErr.Block != "atoms" || lineErr.Content != "atom H H2 2 0 0" {
		t.Errorf("LineError = %+v", lineErr)
	}
	if lineErr.Code() != mdwerror.CodeFormat {
		t.Errorf("Code() = %v", lineErr.Code())
	}

	structured := AsError(err)
	if structured.Code() != mdwerror.CodeFormat {
		t.Errorf("AsError().Code() = %v", structured.Code())
	}
	if structured.Details()["line"] != 4 || structured.Details()["block"] != "atoms" {
		t.Errorf("AsError().Details() = %v", structured.Details())
	}
	if !errors.Is(structured, err) {
		t.Error("AsError() should wrap the parse error")
	}
	if AsError(nil) != nil {
		t.Error("AsError(nil) should be nil")
	}
}

func TestParser_Header(t *testing.T) {
	const body = "\n[atoms]\natom H H1 1 0 0 0\n[/atoms]\n"

	tests := []struct {
		name     string
		mode     HeaderMode
		maxMajor int
		input    string
		wantErr  interface{}
		wantVer  *Version
	}{
		{"ignore without header", HeaderIgnore, 1, body, nil, nil},
		{"ignore records version", HeaderIgnore, 1, "#$magres-abinitio-v1.2" + body, nil, &Version{1, 2}},
		{"ignore future version", HeaderIgnore, 1, "#$magres-abinitio-v3.0" + body, nil, &Version{3, 0}},
		{"optional without header", HeaderOptional, 1, "# plain comment" + body, nil, nil},
		{"optional future version", HeaderOptional, 1, "#$magres-abinitio-v2.0" + body, &UnsupportedVersionError{}, nil},
		{"optional broken signature", HeaderOptional, 1, "#$magres-abinitio-vX" + body, &NotMagresFormatError{}, nil},
		{"required without header", HeaderRequired, 1, body, &NotMagresFormatError{}, nil},
		{"required with header", HeaderRequired, 1, "#$magres-abinitio-v1.0" + body, nil, &Version{1, 0}},
		{"required raised ceiling", HeaderRequired, 2, "#$magres-abinitio-v2.1\r" + body, nil, &Version{2, 1}},
		{"required future version", HeaderRequired, 1, "#$magres-abinitio-v2.0" + body, &UnsupportedVersionError{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser(t, Options{Header: tt.mode, MaxMajorVersion: tt.maxMajor})
			doc, err := p.Parse(tt.input)

			switch tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("Parse() error = %v", err)
				}
			case *UnsupportedVersionError:
				var target *UnsupportedVersionError
				if !errors.As(err, &target) {
					t.Fatalf("want UnsupportedVersionError, got %v", err)
				}
				return
			case *NotMagresFormatError:
				var target *NotMagresFormatError
				if !errors.As(err, &target) {
					t.Fatalf("want NotMagresFormatError, got %v", err)
				}
				return
			}

			version, ok := doc.Version()
			if tt.wantVer == nil {
				if ok {
					t.Errorf("Version() = %v, want none", version)
				}
				return
			}
			if !ok || version != *tt.wantVer {
				t.Errorf("Version() = %v, %v; want %v", version, ok, *tt.wantVer)
			}
		})
	}
}

func TestParser_StrictCloseTags(t *testing.T) {
	input := "[atoms]\natom H H1 1 0 0 0\n[/magres]"

	if _, err := newTestParser(t, Options{}).Parse(input); err != nil {
		t.Fatalf("close tag names are not compared by default: %v", err)
	}

	_, err := newTestParser(t, Options{StrictCloseTags: true}).Parse(input)
	var target *MalformedTagError
	if !errors.As(err, &target) || target.Tag != "[/magres]" {
		t.Fatalf("want MalformedTagError for [/magres], got %v", err)
	}
}

func TestParser_BlockNames(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		strict bool
		atoms  int
	}{
		{"name with space", "[my block]\nfoo\n[/my block]\n[atoms]\natom H H1 1 0 0 0\n[/atoms]\n", false, 1},
		{"name with tab", "[my\tblock]\nfoo\n[/my\tblock]\n", false, 0},
		{"empty close name", "[atoms]\natom H H1 1 0 0 0\n[/]\n", false, 1},
		{"empty names", "[]\n[/]\n", false, 0},
		{"empty names strict", "[]\nbar\n[/]\n", true, 0},
		{"name with space strict", "[my block]\n[/my block]\n", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := newTestParser(t, Options{StrictCloseTags: tt.strict}).Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(doc.Atoms()) != tt.atoms {
				t.Errorf("len(Atoms()) = %d, want %d", len(doc.Atoms()), tt.atoms)
			}
		})
	}

	_, err := newTestParser(t, Options{StrictCloseTags: true}).Parse("[atoms]\n[/]\n")
	var target *MalformedTagError
	if !errors.As(err, &target) || target.Tag != "[/]" {
		t.Errorf("strict mode: want MalformedTagError for [/], got %v", err)
	}
}

func TestParser_LenientSymmetry(t *testing.T) {
	p := newTestParser(t, Options{LenientSymmetry: true})

	doc, err := p.Parse("[atoms]\n  symmetry   x,  y,\t z  # comment\nsymmetry x,y,z\n[/atoms]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Symmetry{{"x,  y,\t z"}, {"x,y,z"}}
	if !reflect.DeepEqual(doc.Symmetries(), want) {
		t.Errorf("Symmetries() = %v, want %v", doc.Symmetries(), want)
	}

	_, err = p.Parse("[atoms]\nsymmetry\n[/atoms]")
	var target *FormatError
	if !errors.As(err, &target) || target.Got != 1 {
		t.Errorf("bare symmetry keyword: got %v", err)
	}
}

func TestParser_ContributionsAndUnits(t *testing.T) {
	input := readTestdata(t, "ethanol.magres")

	doc, err := newTestParser(t, Options{Contributions: true, CheckUnits: true}).Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	efg := doc.Efg()
	if len(efg) != 2 || efg[0].Term != TermTotal || efg[1].Term != TermLocal {
		t.Errorf("Efg() = %+v", efg)
	}
	isc := doc.Isc()
	if len(isc) != 2 || isc[1].Term != TermFermiContact {
		t.Errorf("Isc() = %+v", isc)
	}

	units := doc.Units()
	if len(units) != 5 {
		t.Fatalf("got %d units, want 5: %+v", len(units), units)
	}
	if units[0] != (Units{Block: "atoms", Tag: "lattice", Unit: "Angstrom"}) {
		t.Errorf("units[0] = %+v", units[0])
	}

	tests := []struct {
		name string
		line string
	}{
		{"wrong unit", "units ms ppb"},
		{"unknown tag", "units shielding ppm"},
		{"missing unit", "units ms"},
	}
	p := newTestParser(t, Options{CheckUnits: true})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse("[magres]\n" + tt.line + "\n[/magres]")
			var target *UnitsError
			if !errors.As(err, &target) {
				t.Fatalf("want UnitsError, got %v", err)
			}
			if AsError(err).Code() != mdwerror.CodeUnits {
				t.Errorf("code = %v", AsError(err).Code())
			}
		})
	}
}

func TestParser_Testdata(t *testing.T) {
	p := newTestParser(t, Options{Header: HeaderOptional})

	tests := []struct {
		file string
		want Counts
	}{
		{"ethanol.magres", Counts{Atoms: 4, Symmetries: 2, Ms: 2, Efg: 1, Isc: 1, HasLattice: true, Calculation: 3}},
		{"legacy.magres", Counts{Atoms: 2, Ms: 2}},
		{"efg_only.magres", Counts{Atoms: 3, Efg: 1, Isc: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := p.Parse(readTestdata(t, tt.file))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := doc.Counts(); got != tt.want {
				t.Errorf("Counts() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParser_Idempotent(t *testing.T) {
	p := newTestParser(t, Options{Contributions: true, CheckUnits: true})
	input := readTestdata(t, "ethanol.magres")

	first, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := p.Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same text twice should give equal documents")
	}

	for _, rec := range first.Isc() {
		for _, ref := range []AtomRef{rec.Atom1, rec.Atom2} {
			if _, ok := first.Atom(ref); !ok {
				t.Errorf("dangling reference %d", ref)
			}
		}
	}
}

func TestParser_AccessorsReturnCopies(t *testing.T) {
	doc, err := newTestParser(t, Options{}).Parse(readTestdata(t, "ethanol.magres"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	atoms := doc.Atoms()
	atoms[0].Species = "Xx"
	ms := doc.Ms()
	ms[0].Sigma[0][0] = -1
	calc := doc.Calculation()
	calc[0].Values[0] = "changed"

	if doc.Atoms()[0].Species != "H" || doc.Ms()[0].Sigma[0][0] != 30 || doc.Calculation()[0].Values[0] != "CASTEP" {
		t.Error("mutating accessor results must not change the document")
	}
}

func TestParser_MaxInputBytes(t *testing.T) {
	p := newTestParser(t, Options{MaxInputBytes: 16})

	_, err := p.Parse(strings.Repeat("#", 17))
	var target *InputTooLargeError
	if !errors.As(err, &target) || target.Size != 17 || target.Limit != 16 {
		t.Fatalf("want InputTooLargeError, got %v", err)
	}

	_, err = p.ParseReader(strings.NewReader(strings.Repeat("#", 100)))
	if !errors.As(err, &target) || target.Size != 17 {
		t.Fatalf("ParseReader() should stop after the limit, got %v", err)
	}

	if _, err := p.ParseReader(strings.NewReader("# tiny")); err != nil {
		t.Errorf("ParseReader() error = %v", err)
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	if _, err := New(Options{MaxMajorVersion: -1}); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("negative version ceiling: got %v", err)
	}
	if _, err := New(Options{Header: HeaderMode(7)}); err == nil {
		t.Error("unknown header mode should be rejected")
	}
}

func TestParser_Concurrent(t *testing.T) {
	p := newTestParser(t, Options{})
	input := readTestdata(t, "ethanol.magres")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.Parse(input); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Parse() error = %v", err)
	}
}

func TestParse_DefaultOptions(t *testing.T) {
	doc, err := Parse("[atoms]\natom H H1 1 0 0 0\n[/atoms]")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(doc.Atoms()) != 1 {
		t.Errorf("got %d atoms", len(doc.Atoms()))
	}
}

func TestParser_FailureLogging(t *testing.T) {
	tests := []struct {
		name    string
		level   mdwlog.Level
		wantLog bool
	}{
		{"silent at info", mdwlog.LevelInfo, false},
		{"silent at warn", mdwlog.LevelWarn, false},
		{"reported at debug", mdwlog.LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := New(Options{
				Logger:          mdwlog.New().WithOutput(&buf).WithLevel(tt.level),
				MaxMajorVersion: 1,
			})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if _, err := p.Parse("[atoms]\natom H H1 1 0 0\n[/atoms]"); err == nil {
				t.Fatal("Parse() expected error")
			}
			if got := strings.Contains(buf.String(), "magres parse failed"); got != tt.wantLog {
				t.Errorf("failure logged = %v, want %v:\n%s", got, tt.wantLog, buf.String())
			}
		})
	}
}
