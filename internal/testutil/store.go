package testutil

import (
	"testing"

	"tidy-go/internal/engine"
	"tidy-go/internal/store"
)

// NewTestStore creates an in-memory SQLite store with schema applied.
// The store is automatically closed when the test completes.
func NewTestStore(t *testing.T) engine.Store {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
