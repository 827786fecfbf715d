// Package jsonfile persists the contact collection as a single JSON array
// in a flat file on disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

// Backend reads and writes the whole collection at path.
type Backend struct {
	path string
}

// New returns a Backend for path. If the file does not exist yet it is
// created (along with its directory) holding an empty collection.
func New(path string) (*Backend, error) {
	b := &Backend{path: path}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		return b, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("jsonfile.New: stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile.New: creating directory: %w", err)
	}
	if err := b.Save([]types.Contact{}); err != nil {
		return nil, fmt.Errorf("jsonfile.New: %w", err)
	}
	return b, nil
}

// Load reads the full collection.
func (b *Backend) Load() ([]types.Contact, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: reading %s: %w", b.path, err)
	}

	contacts := make([]types.Contact, 0)
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("jsonfile: parsing %s: %w", b.path, err)
	}
	return contacts, nil
}

// Save replaces the file with contacts. The data goes to a temp file in
// the same directory first and is renamed over the target, so readers see
// either the old collection or the new one, never a torn write.
func (b *Backend) Save(contacts []types.Contact) error {
	if contacts == nil {
		contacts = []types.Contact{}
	}

	data, err := json.MarshalIndent(contacts, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: marshaling: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("jsonfile: replacing %s: %w", b.path, err)
	}
	return nil
}
