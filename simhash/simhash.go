// Package simhash fingerprints text so that a rewrite can be compared with
// its source. Near-identical passages land a few bits apart.
package simhash

import (
	"hash/fnv"
	"math/bits"
	"strings"
	"unicode"

	"github.com/use-agent/unslop/textutil"
)

// Fingerprint computes a 64-bit SimHash of text. Features are the
// lower-cased word tokens with edge punctuation removed, plus word bigrams
// so that reordering moves the hash.
func Fingerprint(text string) uint64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var vector [64]int
	add := func(feature string) {
		h := fnv.New64a()
		h.Write([]byte(feature))
		hash := h.Sum64()
		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	for _, t := range tokens {
		add(t)
	}
	for _, s := range makeShingles(tokens, 2) {
		add(s)
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}
	return fingerprint
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar reports whether a and b are at most threshold bits apart.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}

// Similarity maps the distance between two fingerprints onto [0,1], where
// 1 means identical.
func Similarity(a, b uint64) float64 {
	return 1 - float64(Distance(a, b))/64
}

// Compare returns the Similarity of two texts. Two blank texts are
// identical; a blank text against a non-blank one scores 0.
func Compare(a, b string) float64 {
	fa, fb := Fingerprint(a), Fingerprint(b)
	if fa == 0 || fb == 0 {
		if fa == fb {
			return 1
		}
		return 0
	}
	return Similarity(fa, fb)
}

func tokenize(text string) []string {
	words := textutil.Words(strings.ToLower(text))
	tokens := words[:0]
	for _, w := range words {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
