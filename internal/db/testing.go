package db

import (
	"context"
	"testing"
)

// NewTestDB creates a migrated in-memory database for testing.
// The database is automatically closed when the test completes.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    t.Parallel()
//	    store := db.NewTestDB(t)
//	    // use store...
//	}
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	d, err := OpenInMemory()
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}

	t.Cleanup(func() {
		_ = d.Close()
	})

	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return d
}
