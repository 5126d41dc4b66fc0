package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stoicbot/pkg/logx"
)

func TestCountdownsMissingFileIsEmpty(t *testing.T) {
	t.Parallel()
	c, err := OpenCountdowns(filepath.Join(t.TempDir(), "cd.csv"), logx.Nop())
	if err != nil {
		t.Fatalf("OpenCountdowns: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
}

func TestCountdownsAppendPersistReload(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cd.csv")
	c, _ := OpenCountdowns(path, logx.Nop())

	entries := []CountdownEntry{
		{UserID: 7, Date: "2026-07-04", Name: "CALIFORNIA"},
		{UserID: 7, Date: "2026-07-04", Name: "CALIFORNIA"}, // duplicates are kept
		{UserID: 9, Date: "2026-01-01", Name: "new year"},
	}
	for _, e := range entries {
		if err := c.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read persisted file: %v", err)
	}
	if !strings.HasPrefix(string(b), "user_id,date,name\n") {
		t.Fatalf("missing header: %q", string(b))
	}

	reloaded, err := OpenCountdowns(path, logx.Nop())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.Entries()
	if len(got) != 3 {
		t.Fatalf("reloaded %d entries, want 3", len(got))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestCountdownsRemoveOwners(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cd.csv")
	c, _ := OpenCountdowns(path, logx.Nop())
	_ = c.Append(CountdownEntry{UserID: 1, Date: "2026-01-01", Name: "a"})
	_ = c.Append(CountdownEntry{UserID: 1, Date: "2026-02-01", Name: "b"})
	_ = c.Append(CountdownEntry{UserID: 2, Date: "2026-03-01", Name: "c"})

	if err := c.RemoveOwners([]int64{1}); err != nil {
		t.Fatalf("RemoveOwners: %v", err)
	}
	got := c.Entries()
	if len(got) != 1 || got[0].UserID != 2 {
		t.Fatalf("Entries = %+v, want only owner 2", got)
	}

	// Empty owner list is a no-op.
	if err := c.RemoveOwners(nil); err != nil {
		t.Fatalf("RemoveOwners(nil): %v", err)
	}
}

func TestCountdownsBadDateRowSurvivesRewrite(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cd.csv")
	seed := "user_id,date,name\n5,not-a-date,broken\n"
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c, err := OpenCountdowns(path, logx.Nop())
	if err != nil {
		t.Fatalf("OpenCountdowns: %v", err)
	}
	if err := c.Append(CountdownEntry{UserID: 6, Date: "2026-05-05", Name: "ok"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reloaded, err := OpenCountdowns(path, logx.Nop())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := reloaded.Entries()
	if len(got) != 2 || got[0].Date != "not-a-date" {
		t.Fatalf("bad row dropped on rewrite: %+v", got)
	}
}
