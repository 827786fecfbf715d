// Package storage defines the Storage interface — the contract every
// HTTP handler talks to — and Store, its one implementation.
//
// Store owns the business rules (validation, id generation, merge on
// update). Where the bytes actually live is delegated to a Backend, which
// only knows how to load and save the whole ordered collection:
//
//   - jsonfile.Backend — a flat JSON file (the default)
//   - sqlite.Backend   — a single SQLite database file
//
// Swapping backends = change one line in main.go. Zero handler changes.
package storage

import (
	"errors"
	"strings"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Storage is the contact store contract used by the handlers.
type Storage interface {
	// List returns every contact in stored order. Never nil.
	List() ([]types.Contact, error)

	// Get returns the contact with the given id, or ErrNotFound.
	Get(id string) (types.Contact, error)

	// Create validates in, assigns a fresh id, appends and persists.
	// Returns a *ValidationError if any field constraint is violated.
	Create(in types.ContactInput) (types.Contact, error)

	// Update validates in exactly like Create, then merges it into the
	// contact with the given id. Returns ErrNotFound for an unknown id.
	Update(id string, in types.ContactInput) (types.Contact, error)

	// Delete removes the contact with the given id, or returns ErrNotFound.
	Delete(id string) error
}

// Backend persists the full contact collection. Every call moves the
// entire ordered slice; there is no partial write.
type Backend interface {
	Load() ([]types.Contact, error)
	Save(contacts []types.Contact) error
}

// ErrNotFound is returned when no contact matches the requested id.
var ErrNotFound = errors.New("contact not found")

// ValidationError lists every field constraint a write violated.
// Nothing is persisted when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}
