package quotes

import (
	"encoding/csv"
	"fmt"
	"os"
)

// FallbackText is delivered when the catalog has no entry for a day.
const FallbackText = "Quote not found for today."

// Catalog is the immutable day-key -> quote mapping, loaded once at startup.
type Catalog struct {
	byDay map[string]string
}

// LoadCatalog reads a CSV file with columns Date,Quote. Quote cells may
// contain embedded newlines. Duplicate day-keys keep the last row.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quote catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read quote catalog: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("quote catalog %s is empty", path)
	}
	if rows[0][0] != "Date" || rows[0][1] != "Quote" {
		return nil, fmt.Errorf("quote catalog %s: unexpected header %v", path, rows[0])
	}

	byDay := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		byDay[row[0]] = row[1]
	}
	return &Catalog{byDay: byDay}, nil
}

// Lookup returns the raw quote for a day-key.
func (c *Catalog) Lookup(dayKey string) (string, bool) {
	q, ok := c.byDay[dayKey]
	return q, ok
}

func (c *Catalog) Len() int { return len(c.byDay) }
