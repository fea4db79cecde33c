package textutil

import "unicode/utf8"

// EstimateTokens approximates the LLM token count of text as one token per
// three runes, with a minimum of one for non-empty text. English averages
// about four runes per token and CJK about one and a half.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	if n < 3 {
		return 1
	}
	return n / 3
}
