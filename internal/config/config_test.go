package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Given a config with only the required keys
	path := writeConfig(t, "env: dev\nhttp_server:\n  address: \"localhost:9000\"\n")

	// When Load is called
	cfg, err := Load(path)

	// Then optional keys take their defaults
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want %q", cfg.Env, "dev")
	}
	if cfg.Addr != "localhost:9000" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, "localhost:9000")
	}
	if cfg.StorageDriver != DriverJSON {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, DriverJSON)
	}
	if cfg.StoragePath != "storage/contacts.json" {
		t.Errorf("StoragePath = %q, want %q", cfg.StoragePath, "storage/contacts.json")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "env: dev\nstorage_driver: json\nhttp_server:\n  address: \"localhost:9000\"\n")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORAGE_PATH", "/tmp/contacts.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.StorageDriver != DriverSQLite {
		t.Errorf("StorageDriver = %q, want %q", cfg.StorageDriver, DriverSQLite)
	}
	if cfg.StoragePath != "/tmp/contacts.db" {
		t.Errorf("StoragePath = %q, want %q", cfg.StoragePath, "/tmp/contacts.db")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	path := writeConfig(t, "env: dev\nstorage_driver: mongo\nhttp_server:\n  address: \"localhost:9000\"\n")

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "mongo") {
		t.Fatalf("Load() error = %v, want unknown driver error", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	// Given a config without http_server.address
	path := writeConfig(t, "env: dev\n")

	// Then Load refuses it
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}
