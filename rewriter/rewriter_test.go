package rewriter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/unslop/analyzer"
	"github.com/use-agent/unslop/lexicon"
	"github.com/use-agent/unslop/textutil"
)

func numberedWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i+1)
	}
	return strings.Join(words, " ")
}

func TestRewriteBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\u3000"} {
		assert.Equal(t, "", Rewrite(in, DefaultOptions()))
	}
}

func TestRewriteNoOptionsIsCleanup(t *testing.T) {
	inputs := []string{
		"Hello   world ,  again!!  ",
		"I will leverage — robust things 😊 However, fine.",
		"Wait... what?? Really!!!",
		"  already clean.  ",
	}
	for _, in := range inputs {
		assert.Equal(t, Cleanup(in), Rewrite(in, Options{}), "input %q", in)
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello   world ,  again!!  ", "Hello world, again!"},
		{"Wait!!! Really?? ok...", "Wait! Really? ok."},
		{"mixed ?! stays", "mixed?! stays"},
		{"a ; b", "a; b"},
		{"line one\nline two", "line one\nline two"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Cleanup(tt.in))
		})
	}
}

func TestBuzzwordAndEmDashExample(t *testing.T) {
	in := "I will leverage a tapestry of insights — furthermore — to explore the landscape."
	got := Rewrite(in, Options{ReplaceBuzzwords: true, LimitEmDashes: true})

	assert.Equal(t, "I will use a mix of insights, also, to explore the landscape.", got)
	assert.NotContains(t, got, "—")
}

func TestBuzzwordsWholeWordOnly(t *testing.T) {
	opts := Options{ReplaceBuzzwords: true}
	assert.Equal(t, "We delved into it.", Rewrite("We delved into it.", opts))
	assert.Equal(t, "We explore into it.", Rewrite("We delve into it.", opts))
	assert.Equal(t, "Robustness matters.", Rewrite("Robustness matters.", opts))
	assert.Equal(t, "reliable and overall.", Rewrite("ROBUST and In conclusion.", opts))
}

func TestEmojiStrip(t *testing.T) {
	inputs := []string{
		"Launch day 🚀🎉 is here 😊",
		"Family 👨‍👩‍👧 and flag 🇺🇸 and thumbs 👍🏽",
		"Love ❤️ this",
		"no emoji at all",
	}
	for _, in := range inputs {
		got := Rewrite(in, Options{ReduceEmojis: true})
		assert.Zero(t, analyzer.Analyze(got).EmojiCount, "input %q -> %q", in, got)
	}
	assert.Equal(t, "Launch day is here", Rewrite("Launch day 🚀🎉 is here 😊", Options{ReduceEmojis: true}))
}

func TestEmDashIdempotent(t *testing.T) {
	inputs := []string{
		"one — two — three",
		"a—b",
		"x ——  y",
		"start —",
		"a,,,b — c",
	}
	for _, in := range inputs {
		once := reduceEmDashes(in)
		assert.Equal(t, once, reduceEmDashes(once))
		assert.NotContains(t, once, "—")
	}
	assert.Equal(t, "a, b", reduceEmDashes("a—b"))
	assert.Equal(t, "a,b, c", reduceEmDashes("a,,,b — c"))
}

func TestContractions(t *testing.T) {
	got := Rewrite("I am sure we are ready. You are not late and it is not over.", Options{UseContractions: true})
	assert.Equal(t, "I'm sure we're ready. You aren't late and it isn't over.", got)
}

func TestSimplifyTransitions(t *testing.T) {
	opts := Options{SimplifyTransitions: true}
	tests := []struct {
		in   string
		want string
	}{
		{"However, it failed.", "but it failed."},
		{"It worked. HOWEVER the cost grew.", "It worked. but the cost grew."},
		{"Therefore we stopped. Thus ended.", "we stopped. ended."},
		{"Moreover,  the plan held.", "the plan held."},
		{"Whatever thusly happens.", "Whatever thusly happens."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Rewrite(tt.in, opts))
		})
	}
}

func TestVarySentenceLengthSplit(t *testing.T) {
	got := Rewrite(numberedWords(30), Options{VarySentenceLength: true})

	sentences := textutil.SplitSentences(got)
	require.Len(t, sentences, 2)
	assert.True(t, strings.HasSuffix(sentences[0], "."))
	assert.Equal(t, numberedWords(15)+".", sentences[0])
	assert.Equal(t, 15, textutil.WordCount(sentences[1]))
}

func TestVarySentenceLengthSplitKeepsHeadPunctuation(t *testing.T) {
	words := strings.Fields(numberedWords(30))
	words[14] += ","
	got := Rewrite(strings.Join(words, " "), Options{VarySentenceLength: true})

	sentences := textutil.SplitSentences(got)
	require.Len(t, sentences, 2)
	assert.True(t, strings.HasSuffix(sentences[0], "w15,."), sentences[0])
	assert.Equal(t, "w16", textutil.Words(sentences[1])[0])
}

func TestVarySentenceLengthMerge(t *testing.T) {
	opts := Options{VarySentenceLength: true}

	in := "This is a long enough sentence to keep. Short One here! Another fine sentence that stays as is."
	want := "This is a long enough sentence to keep, short one here! Another fine sentence that stays as is."
	assert.Equal(t, want, Rewrite(in, opts))

	// A short opening sentence has nothing to merge into.
	assert.Equal(t, "Hi. This sentence is long enough to stand.", Rewrite("Hi. This sentence is long enough to stand.", opts))

	// Consecutive short sentences keep folding into the same one.
	assert.Equal(t, "Tiny, also tiny, and again.", Rewrite("Tiny. Also tiny. And again.", opts))
}

func TestVarySentenceLengthNeverEmpty(t *testing.T) {
	inputs := []string{
		"a. b. c. d. e.",
		numberedWords(60) + ". " + numberedWords(3) + "!",
		"... !!! ???",
		"One. " + numberedWords(28) + ", tail? ok.",
	}
	for _, in := range inputs {
		out := varySentenceLength(in)
		for _, s := range textutil.SplitSentences(out) {
			assert.Positive(t, textutil.WordCount(s), "input %q produced %q", in, out)
		}
	}
}

func TestJitterSyntax(t *testing.T) {
	got := Rewrite("So we also left then. Sober thenceforth.", Options{JitterSyntax: true})
	assert.Equal(t, "as a result we plus left after that. Sober thenceforth.", got)
}

func TestDefaultOptionsOnSample(t *testing.T) {
	before := analyzer.Analyze(lexicon.SampleText)
	out := Rewrite(lexicon.SampleText, DefaultOptions())
	after := analyzer.Analyze(out)

	assert.Zero(t, after.EmojiCount)
	assert.Zero(t, after.EmDashCount)
	assert.Zero(t, after.BuzzwordCount)
	assert.Less(t, after.Score, before.Score)
}

func TestOptionsEnabled(t *testing.T) {
	assert.Empty(t, Options{}.Enabled())
	assert.Equal(t, []string{"limit_em_dashes", "jitter_syntax"}, Options{LimitEmDashes: true, JitterSyntax: true}.Enabled())
	assert.Len(t, DefaultOptions().Enabled(), 6)
}

func TestCustomLexicon(t *testing.T) {
	lex, err := lexicon.New(lexicon.Tables{
		BuzzwordReplacements: []lexicon.Replacement{{Phrase: "paradigm", Replacement: "model"}},
	})
	require.NoError(t, err)

	w := New(lex)
	assert.Equal(t, "A new model. Robust.", w.Rewrite("A new paradigm. Robust.", Options{ReplaceBuzzwords: true}))
}
