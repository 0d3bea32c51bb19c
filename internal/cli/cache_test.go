package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClearCache(t *testing.T) {
	dir := t.TempDir()

	// Sharded layout: entries live in two-character subdirectories.
	sub := filepath.Join(dir, "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	for _, name := range []string{filepath.Join(sub, "one.json"), filepath.Join(dir, "two.json")} {
		if err := os.WriteFile(name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("WriteFile() error: %v", err)
		}
	}

	count, err := clearCache(dir)
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if count != 2 {
		t.Errorf("clearCache() removed %d entries, want 2", count)
	}

	// The directory itself survives, emptied.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestClearCacheEmptyDir(t *testing.T) {
	count, err := clearCache(t.TempDir())
	if err != nil {
		t.Fatalf("clearCache() error: %v", err)
	}
	if count != 0 {
		t.Errorf("clearCache() removed %d entries, want 0", count)
	}
}
