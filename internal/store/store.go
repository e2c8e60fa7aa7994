// Package store provides SQLite-backed caching of synthesized docstrings,
// keyed by a content hash of the code fragment. Unchanged definitions skip
// the backend round trip on repeat runs.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/julianshen/aidocgen/internal/docgen"
)

// Store wraps a SQLite database holding cached summaries. It implements
// docgen.Cache.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) a SQLite database at dbPath and ensures the
// cache table exists. Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	stmt := `CREATE TABLE IF NOT EXISTS docstring_cache (
		hash       TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		name       TEXT NOT NULL,
		summary    TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT (datetime('now'))
	)`
	if _, err := db.Exec(stmt); err != nil {
		return fmt.Errorf("exec create table: %w", err)
	}
	return nil
}

// Get looks up a cached summary for the code fragment.
func (s *Store) Get(kind docgen.Kind, fragment string) (string, bool, error) {
	var summary string
	err := s.db.QueryRow(
		`SELECT summary FROM docstring_cache WHERE hash = ?`,
		fragmentHash(kind, fragment),
	).Scan(&summary)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query cache: %w", err)
	}
	return summary, true, nil
}

// Put stores a summary for the code fragment, replacing any previous entry.
func (s *Store) Put(kind docgen.Kind, name, fragment, summary string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO docstring_cache (hash, kind, name, summary, created_at)
		 VALUES (?, ?, ?, ?, datetime('now'))`,
		fragmentHash(kind, fragment), string(kind), name, summary,
	)
	if err != nil {
		return fmt.Errorf("store summary: %w", err)
	}
	return nil
}

// fragmentHash derives the cache key from the definition kind and its exact
// source text.
func fragmentHash(kind docgen.Kind, fragment string) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(fragment))
	return hex.EncodeToString(h.Sum(nil))
}
