// Package pipeline runs the analyzer before and after a rewrite and reports
// the difference.
package pipeline

import (
	"github.com/use-agent/unslop/analyzer"
	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/rewriter"
	"github.com/use-agent/unslop/simhash"
)

// Report is the outcome of one rewrite.
type Report struct {
	Input      string          `json:"input"`
	Output     string          `json:"output"`
	Before     analyzer.Result `json:"before"`
	After      analyzer.Result `json:"after"`
	ScoreDelta int             `json:"score_delta"`
	Similarity float64         `json:"similarity"`
}

// Engine binds an analyzer and a rewriter to one lexicon.
type Engine struct {
	lex      *lexicon.Lexicon
	analyzer *analyzer.Analyzer
	rewriter *rewriter.Rewriter
}

// New returns an Engine for lex, or for the default lexicon if lex is nil.
func New(lex *lexicon.Lexicon) *Engine {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Engine{
		lex:      lex,
		analyzer: analyzer.New(lex),
		rewriter: rewriter.New(lex),
	}
}

var defaultEngine = New(nil)

// Default returns the engine bound to the default lexicon.
func Default() *Engine {
	return defaultEngine
}

// Run rewrites text with the default lexicon.
func Run(text string, opts rewriter.Options) Report {
	return defaultEngine.Run(text, opts)
}

// Lexicon returns the lexicon the engine was built with.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lex
}

// Analyze scores text.
func (e *Engine) Analyze(text string) analyzer.Result {
	return e.analyzer.Analyze(text)
}

// Run analyzes text, rewrites it and analyzes the output.
func (e *Engine) Run(text string, opts rewriter.Options) Report {
	return e.Compare(text, e.rewriter.Rewrite(text, opts))
}

// Compare builds a Report for an output produced elsewhere, such as an
// LLM rewrite.
func (e *Engine) Compare(input, output string) Report {
	before := e.analyzer.Analyze(input)
	after := e.analyzer.Analyze(output)
	return Report{
		Input:      input,
		Output:     output,
		Before:     before,
		After:      after,
		ScoreDelta: after.Score - before.Score,
		Similarity: simhash.Compare(input, output),
	}
}
