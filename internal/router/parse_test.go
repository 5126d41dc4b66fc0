package router

import (
	"testing"
	"time"
)

func TestParseCountdownAddValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		wantDate string
		wantName string
	}{
		{`countdown add 7/4/2026 "CALIFORNIA"`, "2026-07-04", "CALIFORNIA"},
		{`COUNTDOWN ADD 12/31/2026 "new year"`, "2026-12-31", "new year"},
		{`  countdown add 02/09/2027 "trip"  `, "2027-02-09", "trip"},
		{"countdown\tadd\t1/1/2030 \"x\"", "2030-01-01", "x"},
		{"countdown add\n7/4/2026 \"X\"", "2026-07-04", "X"},
		{"countdown\nadd 7/4/2026\r\n\"wrapped\"", "2026-07-04", "wrapped"},
		{`countdown add 7/4/2026 "  spaced  "`, "2026-07-04", "spaced"},
	}
	for _, tt := range tests {
		got, ok := parseCountdownAdd(tt.in)
		if !ok {
			t.Errorf("parseCountdownAdd(%q) rejected, want accept", tt.in)
			continue
		}
		if got.Date.Format("2006-01-02") != tt.wantDate {
			t.Errorf("parseCountdownAdd(%q) date = %s, want %s", tt.in, got.Date.Format(time.DateOnly), tt.wantDate)
		}
		if got.Name != tt.wantName {
			t.Errorf("parseCountdownAdd(%q) name = %q, want %q", tt.in, got.Name, tt.wantName)
		}
	}
}

func TestParseCountdownAddInvalid(t *testing.T) {
	t.Parallel()
	tests := []string{
		`countdown add 13/40/2026 "X"`,    // not a calendar date
		`countdown add 2/29/2027 "X"`,     // not a leap year
		`countdown add 7/4/26 "X"`,        // year must be 4 digits
		`countdown add 7/4/20261 "X"`,     // year too long
		`countdown add 123/4/2026 "X"`,    // month too long
		`countdown add 7/4/2026 X`,        // label not quoted
		`countdown add 7/4/2026 ""`,       // empty label
		`countdown add 7/4/2026"X"`,       // no space before label
		`countdown add 7/4/2026 "X" tail`, // trailing junk
		`countdown add "X" 7/4/2026`,      // wrong order
		`countdown 7/4/2026 "X"`,          // missing add
		`countdownadd 7/4/2026 "X"`,       // fused words
	}
	for _, in := range tests {
		if _, ok := parseCountdownAdd(in); ok {
			t.Errorf("parseCountdownAdd(%q) accepted, want reject", in)
		}
	}
}

func TestParseCountdownAddWhitespaceLabelKept(t *testing.T) {
	t.Parallel()
	// A label of only spaces parses (the quoted run is non-empty); the name
	// trims to "" and the renderer falls back to COUNTDOWN.
	got, ok := parseCountdownAdd(`countdown add 7/4/2026 "   "`)
	if !ok {
		t.Fatal("rejected whitespace label")
	}
	if got.Name != "" {
		t.Fatalf("name = %q, want empty after trim", got.Name)
	}
}
