package docstore

import "testing"

// NewTestStore creates a fresh in-memory SQLite store.
func NewTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}

	t.Cleanup(func() { s.Close() })

	return s
}
