package textutil

// SplitSentences collapses whitespace, trims, and splits at each space that
// directly follows '.', '!' or '?'. The punctuation stays attached to the
// sentence before the split. Empty fragments are dropped, so blank input
// yields nil.
func SplitSentences(text string) []string {
	norm := Trim(CollapseSpace(text))
	if norm == "" {
		return nil
	}

	var out []string
	start := 0
	for i := 1; i < len(norm); i++ {
		if norm[i] != ' ' || !isTerminal(norm[i-1]) {
			continue
		}
		if start < i {
			out = append(out, norm[start:i])
		}
		start = i + 1
	}
	if start < len(norm) {
		out = append(out, norm[start:])
	}
	return out
}

// isTerminal reports whether b ends a sentence.
func isTerminal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// TrimTerminal strips trailing '.', '!' and '?' from s.
func TrimTerminal(s string) string {
	end := len(s)
	for end > 0 && isTerminal(s[end-1]) {
		end--
	}
	return s[:end]
}
