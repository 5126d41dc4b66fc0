package quotes

import (
	"strconv"
	"time"
)

// DayKey renders the catalog key for a calendar day, e.g. "January 1st" or
// "March 22nd". The key is year-independent.
func DayKey(t time.Time) string {
	day := t.Day()
	return t.Month().String() + " " + strconv.Itoa(day) + daySuffix(day)
}

func daySuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}
