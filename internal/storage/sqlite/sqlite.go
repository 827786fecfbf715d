// Package sqlite provides a SQLite-backed storage.Backend using Go's
// standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk, just like the JSON
// backend, but writes are transactional: a crash mid-save leaves the
// previous collection intact.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/contacts-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// Backend is the SQLite implementation of storage.Backend.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type Backend struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the contacts table if it
// does not already exist, and returns a ready-to-use *Backend. A fresh
// database starts with an empty collection.
func New(path string) (*Backend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// Schema:
	//   position   — index of the contact in the ordered collection
	//   id         — opaque unique identifier assigned by the store
	//   bookmarked — 0 / 1
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS contacts (
			position   INTEGER PRIMARY KEY,
			id         TEXT    NOT NULL UNIQUE,
			name       TEXT    NOT NULL,
			phone      TEXT    NOT NULL,
			email      TEXT    NOT NULL,
			bookmarked INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &Backend{Db: db}, nil
}

// Close releases the underlying connection pool.
func (b *Backend) Close() error {
	return b.Db.Close()
}

// Load returns every contact row ordered by position.
func (b *Backend) Load() ([]types.Contact, error) {
	rows, err := b.Db.Query(
		"SELECT id, name, phone, email, bookmarked FROM contacts ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("Load: query: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	contacts := make([]types.Contact, 0)

	for rows.Next() {
		var c types.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Bookmarked); err != nil {
			return nil, fmt.Errorf("Load: scan row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Load: rows iteration: %w", err)
	}

	return contacts, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces the stored collection with contacts.
//
// All rows are deleted and re-inserted inside one transaction, so the
// table always holds exactly one complete collection. If anything fails
// the deferred Rollback discards the partial work; after a successful
// Commit the Rollback is a no-op.
// ─────────────────────────────────────────────────────────────────────────────
func (b *Backend) Save(contacts []types.Contact) error {
	tx, err := b.Db.Begin()
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM contacts"); err != nil {
		return fmt.Errorf("Save: clear: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO contacts (position, id, name, phone, email, bookmarked) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	for i, c := range contacts {
		if _, err := stmt.Exec(i, c.ID, c.Name, c.Phone, c.Email, c.Bookmarked); err != nil {
			return fmt.Errorf("Save: insert %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}
	return nil
}
