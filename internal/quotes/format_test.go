package quotes

import "testing"

func TestFormatHeadingsAndAttribution(t *testing.T) {
	t.Parallel()
	in := "ON VIRTUE\nWaste no more time arguing about what a good man should be.\nBe one.\n— Marcus Aurelius"
	want := "## **ON VIRTUE**\nWaste no more time arguing about what a good man should be.\n> Be one.\n> *— Marcus Aurelius*"
	if got := Format(in); got != want {
		t.Fatalf("Format mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatCollapsesBlankRuns(t *testing.T) {
	t.Parallel()
	in := "first\n\n\n\nsecond"
	want := "first\n\nsecond"
	if got := Format(in); got != want {
		t.Fatalf("Format(%q) = %q, want %q", in, got, want)
	}
}

func TestFormatBlankLineEndsQuoteBlock(t *testing.T) {
	t.Parallel()
	in := "opening line\ncontinuation\n\nfresh paragraph"
	want := "opening line\n> continuation\n\nfresh paragraph"
	if got := Format(in); got != want {
		t.Fatalf("Format mismatch:\ngot %q\nwant %q", got, want)
	}
}

func TestFormatDeterministic(t *testing.T) {
	t.Parallel()
	in := "STOIC\n\nline one\nline two\n– attribution\nline three"
	first := Format(in)
	for i := 0; i < 5; i++ {
		if got := Format(in); got != first {
			t.Fatalf("Format not deterministic: %q vs %q", got, first)
		}
	}
}

func TestFormatShortUppercaseIsNotHeading(t *testing.T) {
	t.Parallel()
	// "ON" is all-uppercase but too short to be a heading; it starts a quote block.
	in := "ON\nnext line"
	want := "ON\n> next line"
	if got := Format(in); got != want {
		t.Fatalf("Format(%q) = %q, want %q", in, got, want)
	}
}

func TestIsUpper(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"VIRTUE", true},
		{"VIRTUE 101", true},
		{"Virtue", false},
		{"1234", false},
		{"", false},
		{"— DASHED", true},
	}
	for _, tt := range tests {
		if got := isUpper(tt.in); got != tt.want {
			t.Errorf("isUpper(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
