package main

import (
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/contacts-api/internal/config"
)

func TestOpenBackend_CloseReportsResult(t *testing.T) {
	tests := []struct {
		driver string
		file   string
	}{
		{config.DriverJSON, "contacts.json"},
		{config.DriverSQLite, "contacts.db"},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &config.Config{
				StorageDriver: tt.driver,
				StoragePath:   filepath.Join(t.TempDir(), tt.file),
			}

			backend, closeBackend, err := openBackend(cfg)
			if err != nil {
				t.Fatalf("openBackend() error = %v", err)
			}
			if backend == nil || closeBackend == nil {
				t.Fatal("openBackend() returned a nil backend or close func")
			}
			if _, err := backend.Load(); err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if err := closeBackend(); err != nil {
				t.Errorf("close error = %v, want nil", err)
			}
		})
	}
}
