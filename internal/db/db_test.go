package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		t.Errorf("table pages: %v", err)
	}
	if d.Path() != ":memory:" {
		t.Errorf("Path() = %q, want :memory:", d.Path())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pages.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(`INSERT INTO pages (path, title) VALUES ('/a', 'A')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var title string
	if err := d.QueryRow(`SELECT title FROM pages WHERE path = '/a'`).Scan(&title); err != nil {
		t.Fatalf("select: %v", err)
	}
	if title != "A" {
		t.Errorf("title = %q, want A", title)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
	v, err := d.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("SchemaVersion() = %d, want %d", v, len(migrations))
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if _, err := d.Exec(`INSERT INTO pages (path, title) VALUES ('/b', 'B')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow(`SELECT COUNT(*) FROM pages`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
