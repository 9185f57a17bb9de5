package badger

import "testing"

// NewTestStore creates a store in a temporary directory removed when t ends.
func NewTestStore(t testing.TB) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("create badger store: %v", err)
	}
	return s
}
