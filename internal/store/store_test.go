package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	"github.com/msto63/magres/pkg/magres"
)

const waterDoc = `#$magres-abinitio-v1.0
[atoms]
lattice 5.0 0.0 0.0 0.0 5.0 0.0 0.0 0.0 5.0
symmetry x,y,z
atom O O1 1 0.0 0.0 0.0
atom H H1 1 0.9 0.0 0.0
atom H H2 2 -0.2 0.9 0.0
[/atoms]
[magres]
ms O 1 320.0 0.0 0.0 0.0 330.0 0.0 0.0 0.0 340.0
ms H 1 30.0 0.0 0.0 0.0 30.0 0.0 0.0 0.0 30.0
ms H 2 31.0 0.0 0.0 0.0 31.0 0.0 0.0 0.0 31.0
efg O 1 -1.0 0.0 0.0 0.0 -2.0 0.0 0.0 0.0 3.0
isc H 1 O 1 -60.0 0.0 0.0 0.0 -60.0 0.0 0.0 0.0 -60.0
isc H 2 H 1 3.0 0.0 0.0 0.0 3.0 0.0 0.0 0.0 3.0
[/magres]
`

const methaneDoc = `[atoms]
atom C C1 1 0.0 0.0 0.0
atom H H1 1 1.0 0.0 0.0
[/atoms]
[magres]
ms C 1 190.0 0.0 0.0 0.0 190.0 0.0 0.0 0.0 190.0
isc C 1 H 1 40.0 0.0 0.0 0.0 40.0 0.0 0.0 0.0 40.0
[/magres]
`

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "db", "magres.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustParse(t *testing.T, text string) *magres.Document {
	t.Helper()
	doc, err := magres.Parse(text)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func saveAll(t *testing.T, s *SQLiteStore) (string, string) {
	t.Helper()
	ctx := context.Background()
	water, err := s.SaveDocument(ctx, "water.magres", mustParse(t, waterDoc))
	if err != nil {
		t.Fatalf("SaveDocument(water) error = %v", err)
	}
	methane, err := s.SaveDocument(ctx, "methane.magres", mustParse(t, methaneDoc))
	if err != nil {
		t.Fatalf("SaveDocument(methane) error = %v", err)
	}
	return water, methane
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	s := newTestStore(t)
	water, _ := saveAll(t, s)

	info, err := s.GetDocument(context.Background(), water)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}

	if info.Source != "water.magres" || info.Version != "1.0" {
		t.Errorf("info = %+v, want source water.magres version 1.0", info)
	}
	if info.Atoms != 3 || info.Ms != 3 || info.Efg != 1 || info.Isc != 2 || info.Symmetries != 1 {
		t.Errorf("counts = %+v", info)
	}
	if !info.HasLattice {
		t.Error("HasLattice should be true")
	}
	if info.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetDocument(context.Background(), "does-not-exist")
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("GetDocument() error = %v, want code %v", err, mdwerror.CodeNotFound)
	}
}

func TestSQLiteStore_SaveNil(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveDocument(context.Background(), "nil", nil)
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("SaveDocument(nil) error = %v, want code %v", err, mdwerror.CodeInvalidInput)
	}
}

func TestSQLiteStore_ListDocuments(t *testing.T) {
	s := newTestStore(t)
	water, methane := saveAll(t, s)
	ctx := context.Background()

	docs, err := s.ListDocuments(ctx, 0, 0)
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("ListDocuments() returned %d documents, want 2", len(docs))
	}
	if docs[0].ID != methane || docs[1].ID != water {
		t.Errorf("ListDocuments() order = [%s %s], want newest first", docs[0].Source, docs[1].Source)
	}
	if docs[0].Version != "" {
		t.Errorf("methane version = %q, want empty", docs[0].Version)
	}

	page, err := s.ListDocuments(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ListDocuments(1, 1) error = %v", err)
	}
	if len(page) != 1 || page[0].ID != water {
		t.Errorf("ListDocuments(1, 1) = %+v, want water only", page)
	}
}

func TestSQLiteStore_Queries(t *testing.T) {
	s := newTestStore(t)
	water, _ := saveAll(t, s)
	ctx := context.Background()

	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "ms by species",
			check: func(t *testing.T) {
				entries, err := s.QueryMs(ctx, "H")
				if err != nil {
					t.Fatalf("QueryMs() error = %v", err)
				}
				if len(entries) != 2 {
					t.Fatalf("QueryMs(H) returned %d entries, want 2", len(entries))
				}
				if entries[0].Index != 1 || entries[1].Index != 2 {
					t.Errorf("entries out of record order: %+v %+v", entries[0], entries[1])
				}
				if entries[1].Iso != 31.0 || entries[0].DocumentID != water {
					t.Errorf("entry = %+v", entries[1])
				}
			},
		},
		{
			name: "ms across documents",
			check: func(t *testing.T) {
				entries, err := s.QueryMs(ctx, "")
				if err != nil {
					t.Fatalf("QueryMs() error = %v", err)
				}
				if len(entries) != 4 {
					t.Fatalf("QueryMs(\"\") returned %d entries, want 4", len(entries))
				}
				if entries[3].Source != "methane.magres" || entries[3].Iso != 190.0 {
					t.Errorf("last entry = %+v", entries[3])
				}
			},
		},
		{
			name: "ms derived quantities",
			check: func(t *testing.T) {
				entries, err := s.QueryMs(ctx, "O")
				if err != nil || len(entries) != 1 {
					t.Fatalf("QueryMs(O) = %v, %v", entries, err)
				}
				if math.Abs(entries[0].Iso-330.0) > 1e-9 || math.Abs(entries[0].Aniso-15.0) > 1e-9 {
					t.Errorf("O entry = %+v, want iso 330 aniso 15", entries[0])
				}
			},
		},
		{
			name: "efg",
			check: func(t *testing.T) {
				entries, err := s.QueryEfg(ctx, "O")
				if err != nil || len(entries) != 1 {
					t.Fatalf("QueryEfg(O) = %v, %v", entries, err)
				}
				if entries[0].Vzz != 3.0 || math.Abs(entries[0].Asymmetry-1.0/3.0) > 1e-9 {
					t.Errorf("efg entry = %+v", entries[0])
				}
				if entries[0].Term != "" {
					t.Errorf("Term = %q, want total", entries[0].Term)
				}
			},
		},
		{
			name: "isc in either order",
			check: func(t *testing.T) {
				forward, err := s.QueryIsc(ctx, "O", "H")
				if err != nil {
					t.Fatalf("QueryIsc() error = %v", err)
				}
				reverse, _ := s.QueryIsc(ctx, "H", "O")
				if len(forward) != 1 || len(reverse) != 1 {
					t.Fatalf("QueryIsc(O, H) = %d, QueryIsc(H, O) = %d, want 1 each", len(forward), len(reverse))
				}
				if forward[0].Species1 != "H" || forward[0].Index1 != 1 || forward[0].Iso != -60.0 {
					t.Errorf("isc entry = %+v", forward[0])
				}
			},
		},
		{
			name: "isc single species",
			check: func(t *testing.T) {
				entries, err := s.QueryIsc(ctx, "H", "")
				if err != nil {
					t.Fatalf("QueryIsc() error = %v", err)
				}
				if len(entries) != 3 {
					t.Errorf("QueryIsc(H) returned %d entries, want 3", len(entries))
				}
			},
		},
		{
			name: "unknown species",
			check: func(t *testing.T) {
				entries, err := s.QueryMs(ctx, "Xe")
				if err != nil {
					t.Fatalf("QueryMs() error = %v", err)
				}
				if len(entries) != 0 {
					t.Errorf("QueryMs(Xe) = %v, want none", entries)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.check)
	}
}

func TestSQLiteStore_DeleteDocument(t *testing.T) {
	s := newTestStore(t)
	water, methane := saveAll(t, s)
	ctx := context.Background()

	if err := s.DeleteDocument(ctx, water); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}

	if _, err := s.GetDocument(ctx, water); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("GetDocument() after delete error = %v", err)
	}

	entries, err := s.QueryMs(ctx, "")
	if err != nil {
		t.Fatalf("QueryMs() error = %v", err)
	}
	if len(entries) != 1 || entries[0].DocumentID != methane {
		t.Errorf("QueryMs() after delete = %+v, want methane only", entries)
	}

	if err := s.DeleteDocument(ctx, water); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("second DeleteDocument() error = %v, want not found", err)
	}
}

func TestSQLiteStore_Statistics(t *testing.T) {
	s := newTestStore(t)
	saveAll(t, s)

	stats, err := s.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}

	want := map[string]int64{
		"total_documents": 2,
		"total_atoms":     5,
		"total_ms":        4,
		"total_efg":       1,
		"total_isc":       3,
	}
	for key, n := range want {
		if stats[key] != n {
			t.Errorf("stats[%s] = %v, want %d", key, stats[key], n)
		}
	}

	species, ok := stats["species"].(map[string]int64)
	if !ok {
		t.Fatalf("stats[species] has type %T", stats["species"])
	}
	if species["H"] != 3 || species["O"] != 1 || species["C"] != 1 {
		t.Errorf("species = %v", species)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magres.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(Config{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	id, err := s.SaveDocument(ctx, "methane.magres", mustParse(t, methaneDoc))
	if err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetDocument(ctx, id); err != nil {
		t.Errorf("GetDocument() after reopen error = %v", err)
	}
}

var _ Store = (*SQLiteStore)(nil)
