package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	"github.com/msto63/magres/pkg/magres"
)

// DocumentInfo describes one indexed magres file
type DocumentInfo struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source" yaml:"source"`
	Version    string    `json:"version,omitempty" yaml:"version,omitempty"`
	Atoms      int       `json:"atoms" yaml:"atoms"`
	Symmetries int       `json:"symmetries" yaml:"symmetries"`
	HasLattice bool      `json:"has_lattice" yaml:"has_lattice"`
	Ms         int       `json:"ms" yaml:"ms"`
	Efg        int       `json:"efg" yaml:"efg"`
	Isc        int       `json:"isc" yaml:"isc"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// MsEntry is one stored shielding tensor with its derived quantities
type MsEntry struct {
	DocumentID string  `json:"document_id" yaml:"document_id"`
	Source     string  `json:"source" yaml:"source"`
	Species    string  `json:"species" yaml:"species"`
	Index      int     `json:"index" yaml:"index"`
	Iso        float64 `json:"iso" yaml:"iso"`
	Aniso      float64 `json:"aniso" yaml:"aniso"`
	Asymmetry  float64 `json:"asymmetry" yaml:"asymmetry"`
}

// EfgEntry is one stored electric field gradient tensor
type EfgEntry struct {
	DocumentID string  `json:"document_id" yaml:"document_id"`
	Source     string  `json:"source" yaml:"source"`
	Species    string  `json:"species" yaml:"species"`
	Index      int     `json:"index" yaml:"index"`
	Term       string  `json:"term,omitempty" yaml:"term,omitempty"`
	Vzz        float64 `json:"vzz" yaml:"vzz"`
	Asymmetry  float64 `json:"asymmetry" yaml:"asymmetry"`
}

// IscEntry is one stored indirect spin coupling tensor
type IscEntry struct {
	DocumentID string  `json:"document_id" yaml:"document_id"`
	Source     string  `json:"source" yaml:"source"`
	Species1   string  `json:"species1" yaml:"species1"`
	Index1     int     `json:"index1" yaml:"index1"`
	Species2   string  `json:"species2" yaml:"species2"`
	Index2     int     `json:"index2" yaml:"index2"`
	Term       string  `json:"term,omitempty" yaml:"term,omitempty"`
	Iso        float64 `json:"iso" yaml:"iso"`
}

// Store defines the interface for the magres catalogue
type Store interface {
	// Document operations
	SaveDocument(ctx context.Context, source string, doc *magres.Document) (string, error)
	GetDocument(ctx context.Context, id string) (*DocumentInfo, error)
	ListDocuments(ctx context.Context, limit, offset int) ([]*DocumentInfo, error)
	DeleteDocument(ctx context.Context, id string) error

	// Tensor queries; an empty species matches every atom
	QueryMs(ctx context.Context, species string) ([]*MsEntry, error)
	QueryEfg(ctx context.Context, species string) ([]*EfgEntry, error)
	QueryIsc(ctx context.Context, species1, species2 string) ([]*IscEntry, error)

	// Utility
	Close() error
	Statistics(ctx context.Context) (map[string]interface{}, error)
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/magres.db",
	}
}

// NewSQLiteStore opens or creates the catalogue database
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		version TEXT NOT NULL DEFAULT '',
		atoms INTEGER NOT NULL DEFAULT 0,
		symmetries INTEGER NOT NULL DEFAULT 0,
		has_lattice INTEGER NOT NULL DEFAULT 0,
		ms INTEGER NOT NULL DEFAULT 0,
		efg INTEGER NOT NULL DEFAULT 0,
		isc INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS atoms (
		document_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		species TEXT NOT NULL,
		idx INTEGER NOT NULL,
		label TEXT NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		z REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ms (
		document_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		species TEXT NOT NULL,
		idx INTEGER NOT NULL,
		iso REAL NOT NULL,
		aniso REAL NOT NULL,
		asymmetry REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS efg (
		document_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		species TEXT NOT NULL,
		idx INTEGER NOT NULL,
		term TEXT NOT NULL DEFAULT '',
		vzz REAL NOT NULL,
		asymmetry REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS isc (
		document_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		species1 TEXT NOT NULL,
		idx1 INTEGER NOT NULL,
		species2 TEXT NOT NULL,
		idx2 INTEGER NOT NULL,
		term TEXT NOT NULL DEFAULT '',
		iso REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created ON documents(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_atoms_document ON atoms(document_id);
	CREATE INDEX IF NOT EXISTS idx_ms_species ON ms(species);
	CREATE INDEX IF NOT EXISTS idx_efg_species ON efg(species);
	CREATE INDEX IF NOT EXISTS idx_isc_species ON isc(species1, species2);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveDocument stores the document with its tensors and returns the new ID
func (s *SQLiteStore) SaveDocument(ctx context.Context, source string, doc *magres.Document) (string, error) {
	if doc == nil {
		return "", mdwerror.New("cannot save nil document").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("store.SaveDocument")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New().String()
	counts := doc.Counts()
	version := ""
	if v, ok := doc.Version(); ok {
		version = v.String()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, source, version, atoms, symmetries, has_lattice, ms, efg, isc, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, source, version, counts.Atoms, counts.Symmetries, counts.HasLattice,
		counts.Ms, counts.Efg, counts.Isc, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	for i, atom := range doc.Atoms() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO atoms (document_id, position, species, idx, label, x, y, z)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, atom.Species, atom.Index, atom.Label, atom.Position[0], atom.Position[1], atom.Position[2])
		if err != nil {
			return "", fmt.Errorf("failed to insert atom: %w", err)
		}
	}

	for i, rec := range doc.Ms() {
		key := doc.Key(rec.Atom)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ms (document_id, position, species, idx, iso, aniso, asymmetry)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, i, key.Species, key.Index, rec.Iso(), rec.Aniso(), rec.Asymmetry())
		if err != nil {
			return "", fmt.Errorf("failed to insert ms record: %w", err)
		}
	}

	for i, rec := range doc.Efg() {
		key := doc.Key(rec.Atom)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO efg (document_id, position, species, idx, term, vzz, asymmetry)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, i, key.Species, key.Index, rec.Term.String(), rec.Vzz(), rec.Asymmetry())
		if err != nil {
			return "", fmt.Errorf("failed to insert efg record: %w", err)
		}
	}

	for i, rec := range doc.Isc() {
		k1, k2 := doc.Key(rec.Atom1), doc.Key(rec.Atom2)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO isc (document_id, position, species1, idx1, species2, idx2, term, iso)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, k1.Species, k1.Index, k2.Species, k2.Index, rec.Term.String(), rec.Iso())
		if err != nil {
			return "", fmt.Errorf("failed to insert isc record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

const documentColumns = `id, source, version, atoms, symmetries, has_lattice, ms, efg, isc, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*DocumentInfo, error) {
	var info DocumentInfo
	err := row.Scan(&info.ID, &info.Source, &info.Version, &info.Atoms, &info.Symmetries,
		&info.HasLattice, &info.Ms, &info.Efg, &info.Isc, &info.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// GetDocument retrieves the metadata of one indexed document
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)

	info, err := scanDocument(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, mdwerror.New(fmt.Sprintf("document not found: %s", id)).
				WithCode(mdwerror.CodeNotFound).
				WithOperation("store.GetDocument").
				WithDetail("id", id)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return info, nil
}

// ListDocuments returns documents, newest first
func (s *SQLiteStore) ListDocuments(ctx context.Context, limit, offset int) ([]*DocumentInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*DocumentInfo
	for rows.Next() {
		info, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, info)
	}

	return docs, rows.Err()
}

// DeleteDocument removes a document and all of its records
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return mdwerror.New(fmt.Sprintf("document not found: %s", id)).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("store.DeleteDocument").
			WithDetail("id", id)
	}

	for _, table := range []string{"atoms", "ms", "efg", "isc"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE document_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete %s records: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// QueryMs returns shielding tensors of the given species
func (s *SQLiteStore) QueryMs(ctx context.Context, species string) ([]*MsEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT m.document_id, d.source, m.species, m.idx, m.iso, m.aniso, m.asymmetry
		FROM ms m JOIN documents d ON d.id = m.document_id
		WHERE 1=1`
	var args []interface{}
	if species != "" {
		query += " AND m.species = ?"
		args = append(args, species)
	}
	query += " ORDER BY d.created_at, d.rowid, m.position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ms records: %w", err)
	}
	defer rows.Close()

	var entries []*MsEntry
	for rows.Next() {
		var e MsEntry
		if err := rows.Scan(&e.DocumentID, &e.Source, &e.Species, &e.Index, &e.Iso, &e.Aniso, &e.Asymmetry); err != nil {
			return nil, fmt.Errorf("failed to scan ms record: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// QueryEfg returns electric field gradient tensors of the given species
func (s *SQLiteStore) QueryEfg(ctx context.Context, species string) ([]*EfgEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT e.document_id, d.source, e.species, e.idx, e.term, e.vzz, e.asymmetry
		FROM efg e JOIN documents d ON d.id = e.document_id
		WHERE 1=1`
	var args []interface{}
	if species != "" {
		query += " AND e.species = ?"
		args = append(args, species)
	}
	query += " ORDER BY d.created_at, d.rowid, e.position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query efg records: %w", err)
	}
	defer rows.Close()

	var entries []*EfgEntry
	for rows.Next() {
		var e EfgEntry
		if err := rows.Scan(&e.DocumentID, &e.Source, &e.Species, &e.Index, &e.Term, &e.Vzz, &e.Asymmetry); err != nil {
			return nil, fmt.Errorf("failed to scan efg record: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// QueryIsc returns couplings between the two species in either order.
// An empty species matches any atom.
func (s *SQLiteStore) QueryIsc(ctx context.Context, species1, species2 string) ([]*IscEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT i.document_id, d.source, i.species1, i.idx1, i.species2, i.idx2, i.term, i.iso
		FROM isc i JOIN documents d ON d.id = i.document_id
		WHERE 1=1`
	var args []interface{}
	switch {
	case species1 != "" && species2 != "":
		query += " AND ((i.species1 = ? AND i.species2 = ?) OR (i.species1 = ? AND i.species2 = ?))"
		args = append(args, species1, species2, species2, species1)
	case species1 != "" || species2 != "":
		sp := species1 + species2
		query += " AND (i.species1 = ? OR i.species2 = ?)"
		args = append(args, sp, sp)
	}
	query += " ORDER BY d.created_at, d.rowid, i.position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query isc records: %w", err)
	}
	defer rows.Close()

	var entries []*IscEntry
	for rows.Next() {
		var e IscEntry
		if err := rows.Scan(&e.DocumentID, &e.Source, &e.Species1, &e.Index1,
			&e.Species2, &e.Index2, &e.Term, &e.Iso); err != nil {
			return nil, fmt.Errorf("failed to scan isc record: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Statistics returns store statistics
func (s *SQLiteStore) Statistics(ctx context.Context) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]interface{})

	for _, table := range []string{"documents", "atoms", "ms", "efg", "isc"} {
		var n int64
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats["total_"+table] = n
	}

	// Species histogram over all indexed atoms
	rows, err := s.db.QueryContext(ctx, `SELECT species, COUNT(*) FROM atoms GROUP BY species ORDER BY species`)
	if err != nil {
		return nil, fmt.Errorf("failed to count species: %w", err)
	}
	defer rows.Close()

	species := make(map[string]int64)
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("failed to scan species count: %w", err)
		}
		species[name] = n
	}
	stats["species"] = species

	return stats, rows.Err()
}
