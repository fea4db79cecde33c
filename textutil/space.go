// Package textutil holds the tokenization and segmentation helpers shared by
// the analyzer and the rewriter.
package textutil

import (
	"strings"
	"unicode"
)

// SpaceClass is a regexp character-class body matching the same runes as
// IsSpace. RE2's \s only covers ASCII whitespace.
const SpaceClass = `\s\x{0B}\x{A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// IsSpace reports whether r separates words. U+FEFF counts as space and
// U+0085 does not.
func IsSpace(r rune) bool {
	switch r {
	case '\ufeff':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// IsBlank reports whether s is empty or contains only whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !IsSpace(r) }) < 0
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// CollapseSpace replaces every whitespace run (including single newlines and
// tabs) with one ASCII space.
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Words splits s into whitespace-delimited, non-empty tokens.
func Words(s string) []string {
	return strings.FieldsFunc(s, IsSpace)
}

// WordCount returns len(Words(s)) without allocating the slice.
func WordCount(s string) int {
	n := 0
	inWord := false
	for _, r := range s {
		if IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}
