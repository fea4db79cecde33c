// Package analyzer scores text for surface-level signs of machine-written
// prose. Every function here is pure and safe for concurrent use.
package analyzer

import (
	"math"
	"strings"

	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/textutil"
)

// Score weights. Changing any of these changes every published score.
const (
	weightEmoji       = 5
	weightEmDash      = 7
	weightCliche      = 6
	weightBuzzword    = 3
	weightSentenceLen = 1
	weightRepetition  = 40

	maxScore = 100

	// A token counts as a repeat from its third occurrence on.
	repeatFrom = 3
)

// EmDash is U+2014.
const EmDash = "—"

// Result holds the signal counts for one passage.
type Result struct {
	EmojiCount        int     `json:"emoji_count"`
	EmDashCount       int     `json:"em_dash_count"`
	ClicheCount       int     `json:"cliche_count"`
	BuzzwordCount     int     `json:"buzzword_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	RepetitionRatio   float64 `json:"repetition_ratio"`
	Score             int     `json:"score"`
}

// Warning names a metric that crossed its display threshold.
type Warning string

const (
	WarnEmojis     Warning = "emojis"
	WarnEmDashes   Warning = "em_dashes"
	WarnCliches    Warning = "cliches"
	WarnBuzzwords  Warning = "buzzwords"
	WarnRepetition Warning = "repetition"
)

// Warnings lists the metrics of r that are high enough to flag.
func (r Result) Warnings() []Warning {
	var w []Warning
	if r.EmojiCount > 2 {
		w = append(w, WarnEmojis)
	}
	if r.EmDashCount > 1 {
		w = append(w, WarnEmDashes)
	}
	if r.ClicheCount > 0 {
		w = append(w, WarnCliches)
	}
	if r.BuzzwordCount > 0 {
		w = append(w, WarnBuzzwords)
	}
	if r.RepetitionRatio > 0.25 {
		w = append(w, WarnRepetition)
	}
	return w
}

// Analyzer scores text against a lexicon.
type Analyzer struct {
	lex *lexicon.Lexicon
}

// New returns an Analyzer using lex, or the default lexicon if lex is nil.
func New(lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{lex: lex}
}

var defaultAnalyzer = New(nil)

// Analyze scores text with the default lexicon.
func Analyze(text string) Result {
	return defaultAnalyzer.Analyze(text)
}

// Analyze scores text. Blank input yields the zero Result.
func (a *Analyzer) Analyze(text string) Result {
	if textutil.IsBlank(text) {
		return Result{}
	}

	lower := strings.ToLower(text)
	r := Result{
		EmojiCount:        textutil.CountEmoji(text),
		EmDashCount:       strings.Count(text, EmDash),
		ClicheCount:       a.lex.CountCliches(lower),
		BuzzwordCount:     a.lex.CountBuzzwords(lower),
		AvgSentenceLength: avgSentenceLength(text),
		RepetitionRatio:   repetitionRatio(lower),
	}
	r.Score = score(r)
	return r
}

func avgSentenceLength(text string) float64 {
	sentences := textutil.SplitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	words := 0
	for _, s := range sentences {
		words += textutil.WordCount(s)
	}
	return roundTenths(float64(words) / float64(len(sentences)))
}

func repetitionRatio(lower string) float64 {
	tokens := textutil.Words(lower)
	if len(tokens) == 0 {
		return 0
	}
	seen := make(map[string]int, len(tokens))
	repeats := 0
	for _, t := range tokens {
		seen[t]++
		if seen[t] >= repeatFrom {
			repeats++
		}
	}
	return math.Min(1, float64(repeats)/float64(len(tokens)))
}

func score(r Result) int {
	raw := float64(r.EmojiCount*weightEmoji+
		r.EmDashCount*weightEmDash+
		r.ClicheCount*weightCliche+
		r.BuzzwordCount*weightBuzzword) +
		r.AvgSentenceLength*weightSentenceLen +
		r.RepetitionRatio*weightRepetition
	return int(roundHalfUp(math.Min(maxScore, raw)))
}

// roundHalfUp rounds .5 toward +Inf. All inputs here are non-negative.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func roundTenths(x float64) float64 {
	return roundHalfUp(x*10) / 10
}
