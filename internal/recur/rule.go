// Package recur parses recurrence tags from card text and computes hold periods.
package recur

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit is a recurrence period unit.
type Unit int

const (
	// Day is a 24-hour calendar day.
	Day Unit = iota

	// Week is seven days.
	Week

	// Month is one calendar month, clamped to the last valid day.
	Month
)

// String returns the tag letter for the unit.
func (u Unit) String() string {
	switch u {
	case Day:
		return "D"
	case Week:
		return "W"
	case Month:
		return "M"
	default:
		return "?"
	}
}

// Rule is a parsed recurrence rule. Immutable once parsed.
type Rule struct {
	Count int
	Unit  Unit
}

// String returns the canonical tag form without brackets, e.g. "R-3D".
func (r Rule) String() string {
	return "R-" + strconv.Itoa(r.Count) + r.Unit.String()
}

// tagPattern matches a bracketed recurrence tag [R-<count><unit>].
// The count is optional (default 1) and the unit is one of D, W, M.
var tagPattern = regexp.MustCompile(`(?i)\[R-(\d+)?\s*([DWM])\]`)

// Parse extracts a recurrence rule from free text.
// Only the first matching tag is honored. Malformed tags do not match
// and are treated as absent, so ok is false for text without a valid tag.
func Parse(text string) (rule Rule, ok bool) {
	if text == "" {
		return Rule{}, false
	}
	m := tagPattern.FindStringSubmatch(text)
	if m == nil {
		return Rule{}, false
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			// A zero-period rule would return the card the moment it
			// lands in done, so the count must be at least 1.
			return Rule{}, false
		}
		count = n
	}

	switch strings.ToUpper(m[2]) {
	case "D":
		return Rule{Count: count, Unit: Day}, true
	case "W":
		return Rule{Count: count, Unit: Week}, true
	case "M":
		return Rule{Count: count, Unit: Month}, true
	default:
		return Rule{}, false
	}
}
