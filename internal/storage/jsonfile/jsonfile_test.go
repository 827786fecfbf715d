package jsonfile

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aanand-mishra/contacts-api/internal/types"
)

func TestNew_InitialisesMissingFile(t *testing.T) {
	// Given a path inside a directory that does not exist yet
	path := filepath.Join(t.TempDir(), "storage", "contacts.json")

	// When New is called
	b, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Then the file holds an empty collection
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("file contents = %q, want %q", data, "[]")
	}
	contacts, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if contacts == nil || len(contacts) != 0 {
		t.Errorf("Load() = %#v, want empty non-nil slice", contacts)
	}
}

func TestNew_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	body := `[{"id":"a","name":"Ann","phone":"1","email":"a@x.com","bookmarked":true}]`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	b, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	contacts, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []types.Contact{{ID: "a", Name: "Ann", Phone: "1", Email: "a@x.com", Bookmarked: true}}
	if !reflect.DeepEqual(contacts, want) {
		t.Errorf("Load() = %+v, want %+v", contacts, want)
	}
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	// Given a collection in a specific order
	dir := t.TempDir()
	b, err := New(filepath.Join(dir, "contacts.json"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []types.Contact{
		{ID: "z", Name: "Zed", Phone: "3", Email: "z@x.com"},
		{ID: "a", Name: "Ann", Phone: "1", Email: "a@x.com", Bookmarked: true},
		{ID: "m", Name: "Mia", Phone: "2", Email: "m@x.com"},
	}

	// When it is saved and reloaded
	if err := b.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := b.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Then the same ordered sequence comes back and no temp files remain
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	b, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := b.Load(); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}
