// Package natsort implements natural-order comparison of name strings.
//
// A name is split into maximal digit runs and text runs. Digit runs compare
// numerically (so "v2" sorts before "v10") and text runs compare
// case-insensitively, preserving left-to-right segment order. The package
// backs both the final tag-name display ordering and the keep-latest-n
// truncation rule.
package natsort

import (
	"sort"
	"strings"
)

// Segment is one run of a natural-order key: either a digit run or a text run.
//
// Digit runs store their digits with leading zeros stripped, so "007" and "7"
// compare equal. Text runs store the lowercased text.
type Segment struct {
	// value holds the lowercased text, or the digits with leading zeros
	// stripped for numeric segments.
	value string

	// numeric reports whether this segment is a digit run.
	numeric bool
}

// Key is the natural-order sort key for a name string.
type Key []Segment

// NewKey builds the natural-order key for a name.
//
// It performs the following operations:
//   - Step 1: Splits the name into maximal digit and non-digit runs
//   - Step 2: Lowercases text runs for case-insensitive comparison
//   - Step 3: Strips leading zeros from digit runs for numeric comparison
//
// Parameters:
//   - s: The name to build a key for
//
// Returns:
//   - Key: The sortable key; empty for an empty name
func NewKey(s string) Key {
	var key Key
	start := 0
	numeric := false

	for i := 0; i <= len(s); i++ {
		isDigit := i < len(s) && s[i] >= '0' && s[i] <= '9'
		if i < len(s) && isDigit == numeric && i > start {
			continue
		}
		if i > start {
			key = append(key, newSegment(s[start:i], numeric))
			start = i
		}
		if i < len(s) {
			numeric = isDigit
		}
	}

	return key
}

// newSegment builds one key segment from a run of characters.
//
// Parameters:
//   - run: The raw run of characters
//   - numeric: Whether the run is a digit run
//
// Returns:
//   - Segment: The normalized segment
func newSegment(run string, numeric bool) Segment {
	if !numeric {
		return Segment{value: strings.ToLower(run)}
	}
	trimmed := strings.TrimLeft(run, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	return Segment{value: trimmed, numeric: true}
}

// CompareKeys compares two natural-order keys.
//
// Segments compare pairwise left to right. A numeric segment sorts before a
// text segment at the same position, mirroring the fact that a name starting
// with digits has an empty leading text run. Numeric segments compare by
// digit count first, then lexically; equal-length comparison is exact because
// leading zeros were stripped at key construction. When one key is a prefix
// of the other, the shorter key sorts first.
//
// Parameters:
//   - a: First key
//   - b: Second key
//
// Returns:
//   - int: -1 if a < b, 0 if equal, 1 if a > b
func CompareKeys(a, b Key) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareSegments(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// compareSegments compares two key segments.
//
// Parameters:
//   - a: First segment
//   - b: Second segment
//
// Returns:
//   - int: -1 if a < b, 0 if equal, 1 if a > b
func compareSegments(a, b Segment) int {
	if a.numeric != b.numeric {
		if a.numeric {
			return -1
		}
		return 1
	}
	if a.numeric && len(a.value) != len(b.value) {
		if len(a.value) < len(b.value) {
			return -1
		}
		return 1
	}
	return strings.Compare(a.value, b.value)
}

// Compare compares two names in natural order.
//
// Parameters:
//   - a: First name
//   - b: Second name
//
// Returns:
//   - int: -1 if a < b, 0 if equal, 1 if a > b
func Compare(a, b string) int {
	return CompareKeys(NewKey(a), NewKey(b))
}

// Less reports whether a sorts before b in natural order.
//
// Parameters:
//   - a: First name
//   - b: Second name
//
// Returns:
//   - bool: true if a sorts strictly before b
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Sort stable-sorts names in ascending natural order, in place.
//
// Parameters:
//   - names: The names to sort
//
// Returns:
//   - None
func Sort(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Compare(names[i], names[j]) < 0
	})
}

// SortDescending stable-sorts names in descending natural order, in place.
//
// Names with equal keys keep their input order. Descending here inverts
// every key segment comparison, numeric and text alike, so that higher
// values come first.
//
// Parameters:
//   - names: The names to sort
//
// Returns:
//   - None
func SortDescending(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return Compare(names[i], names[j]) > 0
	})
}
