package sqlite

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

func newBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contacts.db")
	b, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b, path
}

func TestLoad_EmptyDatabase(t *testing.T) {
	b, _ := newBackend(t)

	contacts, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if contacts == nil || len(contacts) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", contacts)
	}
}

func TestSaveLoad_RoundTripAcrossReopen(t *testing.T) {
	// Given a saved collection
	b, path := newBackend(t)
	want := []types.Contact{
		{ID: "z", Name: "Zed", Phone: "3", Email: "z@x.com", Bookmarked: true},
		{ID: "a", Name: "Ann", Phone: "1", Email: "a@x.com"},
	}
	if err := b.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// When the database is reopened
	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer reopened.Close()

	// Then the same ordered sequence comes back
	got, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSave_ReplacesPreviousCollection(t *testing.T) {
	b, _ := newBackend(t)
	if err := b.Save([]types.Contact{{ID: "a", Name: "Ann", Phone: "1", Email: "a@x.com"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := b.Save([]types.Contact{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() len = %d, want 0", len(got))
	}
}

func TestSave_DuplicateIDRollsBack(t *testing.T) {
	// Given a stored collection
	b, _ := newBackend(t)
	orig := []types.Contact{{ID: "a", Name: "Ann", Phone: "1", Email: "a@x.com"}}
	if err := b.Save(orig); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// When a save violates the unique id constraint
	err := b.Save([]types.Contact{
		{ID: "b", Name: "Bob", Phone: "2", Email: "b@x.com"},
		{ID: "b", Name: "Bob", Phone: "2", Email: "b@x.com"},
	})
	if err == nil {
		t.Fatal("Save() error = nil, want constraint error")
	}

	// Then the previous collection is untouched
	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Errorf("Load() = %+v, want %+v", got, orig)
	}
}
