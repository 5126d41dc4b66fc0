package quotes

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format turns raw quote text into display markup, line by line:
//
//   - runs of blank lines collapse to a single blank line
//   - an all-uppercase line longer than 3 characters becomes a bold heading
//   - a line starting with an em/en dash becomes an italicized attribution
//     inside a block quote
//   - once a plain line has been seen, following lines stay in the block
//     quote until a blank line, heading, or attribution ends it
//
// Pure function; same input always yields the same output.
func Format(text string) string {
	var out []string
	prevBlank := false
	inQuote := false

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			if !prevBlank {
				out = append(out, "")
			}
			prevBlank = true
			inQuote = false
			continue
		}
		prevBlank = false

		switch {
		case isUpper(stripped) && utf8.RuneCountInString(stripped) > 3:
			out = append(out, "## **"+stripped+"**")
			inQuote = false
		case startsWithDash(stripped):
			out = append(out, "> *"+stripped+"*")
			inQuote = false
		case inQuote:
			out = append(out, "> "+stripped)
		default:
			out = append(out, stripped)
			inQuote = true
		}
	}

	return strings.Join(out, "\n")
}

func startsWithDash(s string) bool {
	return strings.HasPrefix(s, "—") || strings.HasPrefix(s, "–")
}

// isUpper reports whether s contains at least one cased rune and no lowercase
// runes (the same contract as Python's str.isupper).
func isUpper(s string) bool {
	hasCased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}
