// Package rewriter applies deterministic, rule-based edits that reduce the
// signals measured by package analyzer.
//
// Passes always run in this order, each seeing the previous one's output:
//
//  1. emoji strip            (ReduceEmojis)
//  2. em-dash reduction      (LimitEmDashes)
//  3. buzzword/cliché swap   (ReplaceBuzzwords)
//  4. contractions           (UseContractions)
//  5. transition removal     (SimplifyTransitions)
//  6. sentence-length mixing (VarySentenceLength)
//  7. syntax jitter          (JitterSyntax)
//  8. cleanup                (always)
package rewriter

import (
	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/textutil"
)

// Options selects the passes to run. The zero value runs cleanup only.
type Options struct {
	ReduceEmojis        bool `json:"reduce_emojis"`
	LimitEmDashes       bool `json:"limit_em_dashes"`
	SimplifyTransitions bool `json:"simplify_transitions"`
	UseContractions     bool `json:"use_contractions"`
	VarySentenceLength  bool `json:"vary_sentence_length"`
	ReplaceBuzzwords    bool `json:"replace_buzzwords"`
	JitterSyntax        bool `json:"jitter_syntax"`
}

// DefaultOptions enables every pass except JitterSyntax.
func DefaultOptions() Options {
	return Options{
		ReduceEmojis:        true,
		LimitEmDashes:       true,
		SimplifyTransitions: true,
		UseContractions:     true,
		VarySentenceLength:  true,
		ReplaceBuzzwords:    true,
	}
}

// Enabled returns the JSON names of the enabled passes in pass order.
func (o Options) Enabled() []string {
	var names []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{o.ReduceEmojis, "reduce_emojis"},
		{o.LimitEmDashes, "limit_em_dashes"},
		{o.ReplaceBuzzwords, "replace_buzzwords"},
		{o.UseContractions, "use_contractions"},
		{o.SimplifyTransitions, "simplify_transitions"},
		{o.VarySentenceLength, "vary_sentence_length"},
		{o.JitterSyntax, "jitter_syntax"},
	} {
		if f.on {
			names = append(names, f.name)
		}
	}
	return names
}

// Rewriter rewrites text against a lexicon.
type Rewriter struct {
	lex *lexicon.Lexicon
}

// New returns a Rewriter using lex, or the default lexicon if lex is nil.
func New(lex *lexicon.Lexicon) *Rewriter {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Rewriter{lex: lex}
}

var defaultRewriter = New(nil)

// Rewrite rewrites text with the default lexicon.
func Rewrite(text string, opts Options) string {
	return defaultRewriter.Rewrite(text, opts)
}

// Rewrite runs the enabled passes over text and then cleans it up. Blank
// input yields "".
func (w *Rewriter) Rewrite(text string, opts Options) string {
	text = textutil.Trim(text)
	if text == "" {
		return ""
	}

	if opts.ReduceEmojis {
		text = textutil.StripEmoji(text)
	}
	if opts.LimitEmDashes {
		text = reduceEmDashes(text)
	}
	if opts.ReplaceBuzzwords {
		text = w.lex.ReplaceBuzzwords(text)
		text = w.lex.ReplaceCliches(text)
	}
	if opts.UseContractions {
		text = w.lex.Contract(text)
	}
	if opts.SimplifyTransitions {
		text = simplifyTransitions(text)
	}
	if opts.VarySentenceLength {
		text = varySentenceLength(text)
	}
	if opts.JitterSyntax {
		text = jitterSyntax(text)
	}
	return Cleanup(text)
}
