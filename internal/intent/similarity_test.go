package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityExactAndCaseFolding(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("paracetamol", "paracetamol", 0))
	assert.Equal(t, 1.0, Similarity("  Paracetamol ", "paracetamol", 0))
	assert.Equal(t, 1.0, Similarity("HELP", "help", 0))
}

func TestSimilarityContainment(t *testing.T) {
	// Containment scores a fixed 0.9 in either direction.
	assert.Equal(t, containmentScore, Similarity("para", "paracetamol", 0))
	assert.Equal(t, containmentScore, Similarity("paracetamol", "para", 0))
}

func TestSimilarityEditDistanceRatio(t *testing.T) {
	// One edit across four characters.
	assert.InDelta(t, 0.75, Similarity("helo", "help", 0), 1e-9)
	// Completely different strings bottom out near zero.
	assert.InDelta(t, 0.0, Similarity("abc", "xyz", 0), 1e-9)
}

func TestSimilarityThresholdCollapsesToZero(t *testing.T) {
	assert.Equal(t, 0.0, Similarity("helo", "help", 0.85))
	assert.Equal(t, containmentScore, Similarity("para", "paracetamol", 0.85))
}

func TestSimilarityEmptyStrings(t *testing.T) {
	// "" never matches by containment; two empties are equal.
	assert.Equal(t, 1.0, Similarity("", "", 0))
	assert.Equal(t, 0.0, Similarity("anything", "", 0))
	assert.Equal(t, 0.0, Similarity("", "anything", 0))
}

func TestKeywordScoreIgnoresContainment(t *testing.T) {
	// "hi" inside "this" must not look like a near-match.
	assert.Equal(t, containmentScore, Similarity("this", "hi", 0))
	assert.InDelta(t, 0.5, keywordScore("this", "hi"), 1e-9)
	assert.Equal(t, 1.0, keywordScore("hi", "hi"))
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
