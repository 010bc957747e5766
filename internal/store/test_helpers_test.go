package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new temp-dir store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedTestStore creates a store seeded with testdata/core.yaml.
func seedTestStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t)
	ds, err := LoadDataset(filepath.Join("testdata", "core.yaml"))
	if err != nil {
		t.Fatalf("LoadDataset() failed: %v", err)
	}
	if _, err := s.Seed(context.Background(), ds); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
