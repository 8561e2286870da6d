package storage

import (
	"path/filepath"
	"testing"
)

// NewTestDB creates a migrated database under a temporary directory.
// This helper is exported for use in other package tests.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	config := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	config.AutoMigrate = true

	db, err := Open(config)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}
