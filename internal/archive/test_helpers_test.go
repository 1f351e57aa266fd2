package archive

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestStore creates a new temporary store for testing.
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

// createTestRun creates a run record with representative fields.
func createTestRun(id string, createdAt time.Time) Run {
	return Run{
		ID:        id,
		CreatedAt: createdAt,
		Command:   "prepare",
		Driver:    "energy",
		Method:    "hf",
		Basis:     "sto-3g",
		NAtoms:    3,
		NShells:   5,
		NBasis:    7,
		Status:    StatusOK,
		Elements:  []string{"O", "H"},
	}
}
