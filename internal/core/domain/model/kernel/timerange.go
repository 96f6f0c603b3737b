package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is the first clock time parsed out of a free-text delivery
// time-range such as "14:00 - 16:00" or "14:00-16:00". Only the opening time
// matters for deadline computation; the rest of the string is ignored.
type TimeOfDay struct {
	hour   int
	minute int
	valid  bool
}

// ParseFirstTimeOfDay scans s for the first HH:MM occurrence and returns it.
// The second return value is false when s contains no parsable clock time.
func ParseFirstTimeOfDay(s string) (TimeOfDay, bool) {
	for offset := 0; offset < len(s); {
		rel := strings.IndexByte(s[offset:], ':')
		if rel < 0 {
			break
		}
		colon := offset + rel
		offset = colon + 1

		start := colon
		for start > 0 && colon-start < 2 && isDigit(s[start-1]) {
			start--
		}
		if start == colon || colon+3 > len(s) {
			continue
		}
		if !isDigit(s[colon+1]) || !isDigit(s[colon+2]) {
			continue
		}

		hour, _ := strconv.Atoi(s[start:colon])
		minute, _ := strconv.Atoi(s[colon+1 : colon+3])
		if hour > 23 || minute > 59 {
			continue
		}
		return TimeOfDay{hour: hour, minute: minute, valid: true}, true
	}
	return TimeOfDay{}, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Hour returns the parsed hour (0-23).
func (t TimeOfDay) Hour() int {
	return t.hour
}

// Minute returns the parsed minute (0-59).
func (t TimeOfDay) Minute() int {
	return t.minute
}

// Valid reports whether the value came from a successful parse.
func (t TimeOfDay) Valid() bool {
	return t.valid
}

// String implements fmt.Stringer in HH:MM form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// On combines the clock time with a calendar date in the date's location,
// producing the deadline instant for that day.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.hour, t.minute, 0, 0, date.Location())
}
