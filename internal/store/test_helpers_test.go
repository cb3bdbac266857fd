package store

import (
	"os"
	"path/filepath"
	"testing"
)

// createTestStore creates a store rooted in a fresh temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "db"))
}

// writeRaw places a file directly in the store tree, bypassing SetQuestions.
func writeRaw(t *testing.T, s *Store, rel string, data string) {
	t.Helper()
	path := filepath.Join(s.Root(), rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}
