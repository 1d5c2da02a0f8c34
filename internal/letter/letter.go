// Package letter converts between raw text and the core's 0-25 integer
// alphabet. This is the only place in the module that deals in runes;
// everything past this boundary is plain ints.
package letter

import "strings"

// Size is the number of letters in the alphabet the core operates on.
const Size = 26

// Clean upper-cases s and discards every character that is not A-Z,
// returning the surviving letters as indices 0-25.
func Clean(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		if r >= 'A' && r <= 'Z' {
			out = append(out, int(r-'A'))
		}
	}
	return out
}

// ToString converts a slice of 0-25 indices back to an upper-case
// A-Z string. Values outside [0,26) are a programmer error.
func ToString(indices []int) string {
	var b strings.Builder
	b.Grow(len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= Size {
			panic("letter: index out of range")
		}
		b.WriteByte(byte('A' + idx))
	}
	return b.String()
}

// IndexToRune converts a single 0-25 index to its letter.
func IndexToRune(idx int) rune {
	if idx < 0 || idx >= Size {
		panic("letter: index out of range")
	}
	return rune('A' + idx)
}

// RuneToIndex converts a single A-Z rune (case-insensitive) to its
// index, reporting ok=false for anything else.
func RuneToIndex(r rune) (idx int, ok bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	default:
		return 0, false
	}
}
