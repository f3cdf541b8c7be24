package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemoryCreatesSchema(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	var n int
	if err := d.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("kv table count = %d, want 1", n)
	}
}

func TestOpenFileTwiceIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "flownote.db")
	d, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	d.Close()

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	d2.Close()
}
