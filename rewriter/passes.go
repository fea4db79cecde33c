package rewriter

import (
	"regexp"
	"strings"

	"github.com/use-agent/unslop/textutil"
)

const (
	mergeMaxWords = 5
	splitMinWords = 28
)

var (
	emDashRe      = regexp.MustCompile(`[` + textutil.SpaceClass + `]*—[` + textutil.SpaceClass + `]*`)
	transitionRe  = regexp.MustCompile(`(?i)\b(however|therefore|thus|moreover)\b[,` + textutil.SpaceClass + `]*`)
	jitterRe      = regexp.MustCompile(`(?i)\b(also|then|so)\b`)
	spaceBeforeRe = regexp.MustCompile(`[` + textutil.SpaceClass + `]+([,.;!?])`)
	multiSpaceRe  = regexp.MustCompile(`[` + textutil.SpaceClass + `]{2,}`)
	commaRunRe    = regexp.MustCompile(`,{2,}`)

	// RE2 has no backreferences, so each mark gets its own pattern.
	repeatedMarks = []struct {
		re   *regexp.Regexp
		mark string
	}{
		{regexp.MustCompile(`\.{2,}`), "."},
		{regexp.MustCompile(`!{2,}`), "!"},
		{regexp.MustCompile(`\?{2,}`), "?"},
	}

	jitterWords = map[string]string{
		"also": "plus",
		"then": "after that",
		"so":   "as a result",
	}
)

func reduceEmDashes(text string) string {
	text = emDashRe.ReplaceAllLiteralString(text, ", ")
	return commaRunRe.ReplaceAllLiteralString(text, ",")
}

func simplifyTransitions(text string) string {
	return transitionRe.ReplaceAllStringFunc(text, func(m string) string {
		if len(m) >= len("however") && strings.EqualFold(m[:len("however")], "however") {
			return "but "
		}
		return ""
	})
}

// varySentenceLength folds short sentences into their predecessor and
// halves long ones.
func varySentenceLength(text string) string {
	sentences := textutil.SplitSentences(text)
	out := make([]string, 0, len(sentences))

	for _, s := range sentences {
		words := textutil.Words(s)
		switch {
		case len(words) <= mergeMaxWords && len(out) > 0:
			last := len(out) - 1
			out[last] = textutil.TrimTerminal(out[last]) + ", " + strings.ToLower(s)
		case len(words) >= splitMinWords:
			mid := len(words) / 2
			out = append(out, strings.Join(words[:mid], " ")+".", strings.Join(words[mid:], " "))
		default:
			out = append(out, s)
		}
	}
	return textutil.CollapseSpace(strings.Join(out, " "))
}

func jitterSyntax(text string) string {
	return jitterRe.ReplaceAllStringFunc(text, func(m string) string {
		if r, ok := jitterWords[strings.ToLower(m)]; ok {
			return r
		}
		return m
	})
}

// Cleanup normalizes spacing and punctuation. Rewrite always ends with it.
func Cleanup(text string) string {
	text = spaceBeforeRe.ReplaceAllString(text, "$1")
	for _, rm := range repeatedMarks {
		text = rm.re.ReplaceAllLiteralString(text, rm.mark)
	}
	text = multiSpaceRe.ReplaceAllLiteralString(text, " ")
	return textutil.Trim(text)
}
