// Package lexicon holds the phrase tables used to score and rewrite text.
//
// A Lexicon is built once and never changes afterwards; every matcher is
// compiled at construction, so the analyzer and rewriter can share one
// instance across goroutines without locking.
package lexicon

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Replacement maps a phrase to the text that replaces it.
type Replacement struct {
	Phrase      string `json:"phrase" yaml:"phrase" toml:"phrase"`
	Replacement string `json:"replacement" yaml:"replacement" toml:"replacement"`
}

// Tables is the raw, decodable form of a lexicon. Replacement tables are
// applied in slice order.
type Tables struct {
	Cliches              []string      `json:"cliches" yaml:"cliches" toml:"cliches"`
	Buzzwords            []string      `json:"buzzwords" yaml:"buzzwords" toml:"buzzwords"`
	BuzzwordReplacements []Replacement `json:"buzzword_replacements" yaml:"buzzword_replacements" toml:"buzzword_replacements"`
	ClicheReplacements   []Replacement `json:"cliche_replacements" yaml:"cliche_replacements" toml:"cliche_replacements"`
	Contractions         []Replacement `json:"contractions" yaml:"contractions" toml:"contractions"`
}

// Stats reports table sizes.
type Stats struct {
	Cliches              int `json:"cliches"`
	Buzzwords            int `json:"buzzwords"`
	BuzzwordReplacements int `json:"buzzword_replacements"`
	ClicheReplacements   int `json:"cliche_replacements"`
	Contractions         int `json:"contractions"`
}

// matcher is a compiled case-insensitive whole-word phrase.
type matcher struct {
	phrase      string
	replacement string
	re          *regexp.Regexp
}

// Lexicon is an immutable, compiled set of tables.
type Lexicon struct {
	tables               Tables
	cliches              []matcher
	buzzwords            []matcher
	buzzwordReplacements []matcher
	clicheReplacements   []matcher
	contractions         []matcher
}

// New compiles t into a Lexicon. Phrases are trimmed; blank phrases are an
// error. Duplicate set entries are dropped so they are not counted twice.
func New(t Tables) (*Lexicon, error) {
	l := &Lexicon{}
	var err error

	if l.cliches, err = compileSet("cliches", t.Cliches); err != nil {
		return nil, err
	}
	if l.buzzwords, err = compileSet("buzzwords", t.Buzzwords); err != nil {
		return nil, err
	}
	if l.buzzwordReplacements, err = compileReplacements("buzzword_replacements", t.BuzzwordReplacements); err != nil {
		return nil, err
	}
	if l.clicheReplacements, err = compileReplacements("cliche_replacements", t.ClicheReplacements); err != nil {
		return nil, err
	}
	if l.contractions, err = compileReplacements("contractions", t.Contractions); err != nil {
		return nil, err
	}

	l.tables = Tables{
		Cliches:              phrases(l.cliches),
		Buzzwords:            phrases(l.buzzwords),
		BuzzwordReplacements: pairs(l.buzzwordReplacements),
		ClicheReplacements:   pairs(l.clicheReplacements),
		Contractions:         pairs(l.contractions),
	}
	return l, nil
}

// MustNew is like New but panics on error. Used for the built-in tables.
func MustNew(t Tables) *Lexicon {
	l, err := New(t)
	if err != nil {
		panic(err)
	}
	return l
}

// CountCliches returns the number of whole-word cliché matches in text.
func (l *Lexicon) CountCliches(text string) int {
	return countAll(l.cliches, text)
}

// CountBuzzwords returns the number of whole-word buzzword matches in text.
func (l *Lexicon) CountBuzzwords(text string) int {
	return countAll(l.buzzwords, text)
}

// ReplaceBuzzwords swaps each buzzword for its plainer synonym.
func (l *Lexicon) ReplaceBuzzwords(text string) string {
	return replaceAll(l.buzzwordReplacements, text)
}

// ReplaceCliches swaps each stock phrase for its replacement.
func (l *Lexicon) ReplaceCliches(text string) string {
	return replaceAll(l.clicheReplacements, text)
}

// Contract applies the contraction rules in order.
func (l *Lexicon) Contract(text string) string {
	return replaceAll(l.contractions, text)
}

// Tables returns a copy of the tables the lexicon was built from.
func (l *Lexicon) Tables() Tables {
	return Tables{
		Cliches:              slices.Clone(l.tables.Cliches),
		Buzzwords:            slices.Clone(l.tables.Buzzwords),
		BuzzwordReplacements: slices.Clone(l.tables.BuzzwordReplacements),
		ClicheReplacements:   slices.Clone(l.tables.ClicheReplacements),
		Contractions:         slices.Clone(l.tables.Contractions),
	}
}

// Stats returns the size of each table.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Cliches:              len(l.cliches),
		Buzzwords:            len(l.buzzwords),
		BuzzwordReplacements: len(l.buzzwordReplacements),
		ClicheReplacements:   len(l.clicheReplacements),
		Contractions:         len(l.contractions),
	}
}

// Merge returns base extended by extra. Set entries are appended; a
// replacement whose phrase already exists (case-insensitively) overrides
// the base value in place, otherwise it is appended.
func Merge(base, extra Tables) Tables {
	return Tables{
		Cliches:              mergeSet(base.Cliches, extra.Cliches),
		Buzzwords:            mergeSet(base.Buzzwords, extra.Buzzwords),
		BuzzwordReplacements: mergeReplacements(base.BuzzwordReplacements, extra.BuzzwordReplacements),
		ClicheReplacements:   mergeReplacements(base.ClicheReplacements, extra.ClicheReplacements),
		Contractions:         mergeReplacements(base.Contractions, extra.Contractions),
	}
}

// wholeWord builds the case-insensitive, word-bounded pattern for phrase.
// RE2's \b is ASCII-only, so "delve" never matches inside "delved" and
// accented neighbours do not count as word characters.
func wholeWord(phrase string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

func compileSet(table string, entries []string) ([]matcher, error) {
	out := make([]matcher, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		phrase := strings.ToLower(strings.TrimSpace(e))
		if phrase == "" {
			return nil, fmt.Errorf("lexicon: %s[%d]: empty phrase", table, i)
		}
		if _, dup := seen[phrase]; dup {
			continue
		}
		seen[phrase] = struct{}{}
		re, err := wholeWord(phrase)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %s[%d]: %w", table, i, err)
		}
		out = append(out, matcher{phrase: phrase, re: re})
	}
	return out, nil
}

func compileReplacements(table string, entries []Replacement) ([]matcher, error) {
	out := make([]matcher, 0, len(entries))
	for i, e := range entries {
		phrase := strings.TrimSpace(e.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("lexicon: %s[%d]: empty phrase", table, i)
		}
		re, err := wholeWord(phrase)
		if err != nil {
			return nil, fmt.Errorf("lexicon: %s[%d]: %w", table, i, err)
		}
		out = append(out, matcher{phrase: phrase, replacement: e.Replacement, re: re})
	}
	return out, nil
}

func countAll(ms []matcher, text string) int {
	n := 0
	for _, m := range ms {
		n += len(m.re.FindAllStringIndex(text, -1))
	}
	return n
}

func replaceAll(ms []matcher, text string) string {
	for _, m := range ms {
		text = m.re.ReplaceAllLiteralString(text, m.replacement)
	}
	return text
}

func phrases(ms []matcher) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.phrase
	}
	return out
}

func pairs(ms []matcher) []Replacement {
	out := make([]Replacement, len(ms))
	for i, m := range ms {
		out[i] = Replacement{Phrase: m.phrase, Replacement: m.replacement}
	}
	return out
}

func mergeSet(base, extra []string) []string {
	out := slices.Clone(base)
	for _, e := range extra {
		if !slices.ContainsFunc(out, func(b string) bool { return strings.EqualFold(b, e) }) {
			out = append(out, e)
		}
	}
	return out
}

func mergeReplacements(base, extra []Replacement) []Replacement {
	out := slices.Clone(base)
	for _, e := range extra {
		i := slices.IndexFunc(out, func(b Replacement) bool { return strings.EqualFold(b.Phrase, e.Phrase) })
		if i >= 0 {
			out[i].Replacement = e.Replacement
			continue
		}
		out = append(out, e)
	}
	return out
}
