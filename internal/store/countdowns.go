package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"stoicbot/pkg/logx"
)

// CountdownEntry is one row of the countdown table. Date stays a raw ISO-8601
// string; rows that fail to parse are skipped at render time rather than
// dropped from the file, so a bad row survives rewrites untouched.
type CountdownEntry struct {
	UserID int64
	Date   string // YYYY-MM-DD
	Name   string
}

// Countdowns owns the countdown entries. Entries are append-only except for
// whole-owner removal when the owner's account is confirmed gone. Every
// mutation rewrites the backing CSV (columns user_id,date,name).
type Countdowns struct {
	mu      sync.Mutex
	path    string
	log     logx.Logger
	entries []CountdownEntry
}

// OpenCountdowns loads entries from path. A missing file yields an empty
// collection.
func OpenCountdowns(path string, log logx.Logger) (*Countdowns, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	c := &Countdowns{path: path, log: log}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = 3
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return c, nil
	}
	if rows[0][0] != "user_id" || rows[0][1] != "date" || rows[0][2] != "name" {
		return nil, fmt.Errorf("countdowns %s: unexpected header %v", path, rows[0])
	}
	for i, row := range rows[1:] {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("countdowns %s row %d: bad user_id %q", path, i+2, row[0])
		}
		c.entries = append(c.entries, CountdownEntry{UserID: id, Date: row[1], Name: row[2]})
	}
	return c, nil
}

// Append adds a new entry (entries are never merged or deduplicated) and
// persists.
func (c *Countdowns) Append(e CountdownEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
	return c.saveLocked()
}

// Entries returns a copy of all entries in insertion order.
func (c *Countdowns) Entries() []CountdownEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CountdownEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// RemoveOwners drops every entry belonging to any of the given owners and
// persists once. An empty owner list does nothing.
func (c *Countdowns) RemoveOwners(owners []int64) error {
	if len(owners) == 0 {
		return nil
	}
	drop := make(map[int64]struct{}, len(owners))
	for _, id := range owners {
		drop[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if _, gone := drop[e.UserID]; !gone {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return c.saveLocked()
}

func (c *Countdowns) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Countdowns) saveLocked() error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"user_id", "date", "name"})
	for _, e := range c.entries {
		_ = w.Write([]string{strconv.FormatInt(e.UserID, 10), e.Date, e.Name})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := writeFileAtomic(c.path, buf.Bytes()); err != nil {
		c.log.Error("persist countdowns failed", logx.Err(err), logx.String("path", c.path))
		return fmt.Errorf("persist countdowns: %w", err)
	}
	return nil
}
