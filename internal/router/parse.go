package router

import (
	"strings"
	"time"
	"unicode"
)

// CountdownAdd is the parsed form of a valid countdown-add command.
type CountdownAdd struct {
	Date time.Time // midnight UTC of the target calendar date
	Name string
}

// parseCountdownAdd matches, case-insensitively:
//
//	countdown add <M>/<D>/<YYYY> "<label>"
//
// where M and D are 1-2 digits, YYYY exactly 4 digits, and the label is a
// non-empty run of non-quote characters. Leading/trailing whitespace is
// allowed, the numeric date must be a real calendar date. Returns ok=false on
// any deviation.
func parseCountdownAdd(text string) (CountdownAdd, bool) {
	s := strings.TrimSpace(text)

	var ok bool
	if s, ok = eatWord(s, "countdown"); !ok {
		return CountdownAdd{}, false
	}
	if s, ok = eatWord(s, "add"); !ok {
		return CountdownAdd{}, false
	}

	var month, day, year int
	if month, s, ok = eatDigits(s, 1, 2); !ok {
		return CountdownAdd{}, false
	}
	if s, ok = eatByte(s, '/'); !ok {
		return CountdownAdd{}, false
	}
	if day, s, ok = eatDigits(s, 1, 2); !ok {
		return CountdownAdd{}, false
	}
	if s, ok = eatByte(s, '/'); !ok {
		return CountdownAdd{}, false
	}
	if year, s, ok = eatDigits(s, 4, 4); !ok {
		return CountdownAdd{}, false
	}

	rest, ok := eatSpace(s)
	if !ok || !strings.HasPrefix(rest, `"`) {
		return CountdownAdd{}, false
	}
	s = rest[1:]
	end := strings.IndexByte(s, '"')
	if end <= 0 { // empty labels are rejected
		return CountdownAdd{}, false
	}
	name := s[:end]
	if strings.TrimSpace(s[end+1:]) != "" {
		return CountdownAdd{}, false
	}

	date, ok := civilDate(year, month, day)
	if !ok {
		return CountdownAdd{}, false
	}
	return CountdownAdd{Date: date, Name: strings.TrimSpace(name)}, true
}

// eatWord consumes word (case-insensitive) followed by at least one
// whitespace rune.
func eatWord(s, word string) (string, bool) {
	if len(s) < len(word) || !strings.EqualFold(s[:len(word)], word) {
		return s, false
	}
	rest, ok := eatSpace(s[len(word):])
	if !ok {
		return s, false
	}
	return rest, true
}

// eatSpace consumes a run of at least one whitespace rune. Newlines count:
// chat clients wrap long commands.
func eatSpace(s string) (string, bool) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	return rest, rest != s
}

func eatByte(s string, b byte) (string, bool) {
	if len(s) == 0 || s[0] != b {
		return s, false
	}
	return s[1:], true
}

// eatDigits consumes between min and max ASCII digits and returns their value.
func eatDigits(s string, min, max int) (int, string, bool) {
	n := 0
	for n < len(s) && n < max && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n < min {
		return 0, s, false
	}
	v := 0
	for i := 0; i < n; i++ {
		v = v*10 + int(s[i]-'0')
	}
	return v, s[n:], true
}

// civilDate validates the numeric date against the real calendar.
func civilDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
