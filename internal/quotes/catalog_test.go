package quotes

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quotes.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()
	path := writeCatalog(t, "Date,Quote\nJanuary 1st,\"FIRST\nline two\"\nJanuary 2nd,plain\n")

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	q, ok := c.Lookup("January 1st")
	if !ok {
		t.Fatal("January 1st missing")
	}
	if q != "FIRST\nline two" {
		t.Fatalf("embedded newline lost: %q", q)
	}
	if _, ok := c.Lookup("January 3rd"); ok {
		t.Fatal("unexpected hit for absent day-key")
	}
}

func TestLoadCatalogBadHeader(t *testing.T) {
	t.Parallel()
	path := writeCatalog(t, "day,text\nJanuary 1st,hello\n")
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected header error")
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	t.Parallel()
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
