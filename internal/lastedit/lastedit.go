// Package lastedit supplies per-note last-edited timestamps.
//
// The engine only consumes these through Provider; who maintains them is a
// collaborator concern. Two implementations are provided: file mtimes, and
// a SQLite stamp store written at save time (the watcher stamps it).
package lastedit

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"braindex/internal/link"
	"braindex/internal/vault"
)

// Provider answers "when was this note last edited". ok is false for
// unknown notes; consumers treat that as low-information, not an error.
type Provider interface {
	LastEdited(name string) (t time.Time, ok bool)
}

// Mtime reads modification times straight from the vault.
type Mtime struct {
	Vault *vault.Vault
}

// LastEdited implements Provider via os.Stat.
func (m *Mtime) LastEdited(name string) (time.Time, bool) {
	info, err := os.Stat(m.Vault.PathFor(link.FromRawName(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Store persists explicit save-time stamps. It outranks mtimes when both
// are layered, since renames and syncs disturb mtimes.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the stamp store under dir.
func OpenStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "lastedit.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open last-edited store: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS last_edited (
			name TEXT PRIMARY KEY,
			edited_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize last-edited schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Stamp records an edit time for a note. Last write wins.
func (s *Store) Stamp(name string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO last_edited (name, edited_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET edited_at = excluded.edited_at
	`, name, at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to stamp %q: %w", name, err)
	}
	return nil
}

// LastEdited implements Provider.
func (s *Store) LastEdited(name string) (time.Time, bool) {
	var stamp string
	err := s.db.QueryRow(`SELECT edited_at FROM last_edited WHERE name = ?`, name).Scan(&stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false
	}
	if err != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Layered consults providers in order and returns the first answer.
type Layered []Provider

// LastEdited implements Provider.
func (l Layered) LastEdited(name string) (time.Time, bool) {
	for _, p := range l {
		if t, ok := p.LastEdited(name); ok {
			return t, true
		}
	}
	return time.Time{}, false
}
