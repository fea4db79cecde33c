package simhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	assert.Equal(t, Fingerprint(text), Fingerprint(text))
}

func TestFingerprint_IgnoresCaseAndEdgePunctuation(t *testing.T) {
	assert.Equal(t,
		Fingerprint("the quick brown fox"),
		Fingerprint("The quick, brown fox!"),
	)
}

func TestFingerprint_SimilarTexts(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox jumps over the lazy dog")
	fp2 := Fingerprint("the quick brown fox leaps over the lazy dog")

	assert.LessOrEqual(t, Distance(fp1, fp2), 16)
}

func TestFingerprint_DifferentTexts(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox jumps over the lazy dog")
	fp2 := Fingerprint("completely unrelated content about quantum physics and mathematics")

	assert.GreaterOrEqual(t, Distance(fp1, fp2), 5)
}

func TestFingerprint_Blank(t *testing.T) {
	for _, in := range []string{"", "   \t\n  ", " -- ... "} {
		assert.Zero(t, Fingerprint(in), "input %q", in)
	}
	assert.NotZero(t, Fingerprint("hello"))
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
		})
	}
}

func TestSimilar(t *testing.T) {
	fp1 := Fingerprint("the quick brown fox")
	fp3 := Fingerprint("a completely different text about nothing related")
	dist := Distance(fp1, fp3)

	assert.True(t, Similar(fp1, fp1, 0))
	assert.False(t, Similar(fp1, fp3, dist-1))
	assert.True(t, Similar(fp1, fp3, dist))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity(42, 42))
	assert.Equal(t, 0.0, Similarity(0, ^uint64(0)))
	assert.Equal(t, 0.5, Similarity(0, 0xFFFFFFFF))
}

func TestCompare(t *testing.T) {
	assert.Equal(t, 1.0, Compare("", "  "))
	assert.Equal(t, 0.0, Compare("", "something"))
	assert.Equal(t, 1.0, Compare("Same words here.", "same words here"))

	got := Compare("We will use a mix of insights.", "We will leverage a tapestry of insights.")
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}

func TestMakeShingles(t *testing.T) {
	assert.Equal(t, []string{"a_b", "b_c", "c_d"}, makeShingles([]string{"a", "b", "c", "d"}, 2))
	assert.Nil(t, makeShingles([]string{"a"}, 2))
}
