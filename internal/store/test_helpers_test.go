package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestDB opens a fresh SQLite store in a temp directory.
func createTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// backendLocations returns one location per backend, for tests that must
// hold on both.
func backendLocations(t *testing.T) map[string]string {
	t.Helper()
	return map[string]string{
		"sqlite": filepath.Join(t.TempDir(), "test.db"),
		"memory": SchemeMemory + t.Name(),
	}
}

// openContainer opens location and returns its "main" container.
func openContainer(t *testing.T, location string) *Container {
	t.Helper()
	db, err := Open(location)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", location, err)
	}
	t.Cleanup(func() { db.Close() })
	c, err := db.Container(context.Background(), DefaultContainer)
	if err != nil {
		t.Fatalf("Container() failed: %v", err)
	}
	return c
}

// collect drains a record sequence, failing the test on a read error.
func collect(t *testing.T, c *Container) []Record {
	t.Helper()
	recs := []Record{}
	for r, err := range c.All(context.Background()) {
		if err != nil {
			t.Fatalf("All() yielded error: %v", err)
		}
		recs = append(recs, r)
	}
	return recs
}

func keysOf(recs []Record) []string {
	keys := make([]string, len(recs))
	for i, r := range recs {
		keys[i] = r.Key
	}
	return keys
}
