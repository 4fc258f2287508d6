package intent

import "strings"

// containmentScore is the fixed score for substring containment. Partial
// matches like "para" inside "paracetamol" are treated as strong without
// paying for an edit-distance pass.
const containmentScore = 0.9

// Similarity scores how closely two short strings match, in [0,1]. Exact
// match after case-folding scores 1, substring containment in either
// direction scores 0.9, anything else is a Levenshtein ratio. Scores below
// min collapse to 0 so callers can treat the return as match/no-match.
// Callers must not pass an empty target: everything contains "".
func Similarity(a, b string, min float64) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	score := rawSimilarity(a, b)
	if score < min {
		return 0
	}
	return score
}

func rawSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return containmentScore
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// keywordScore is the edit-distance-only variant used for command words.
// Containment shortcuts are fine for vocabulary scanning but not here:
// "hi" inside "this" must not look like a greeting.
func keywordScore(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}

func min3(a, b, c int) int {
	if a < b && a < c {
		return a
	} else if b < c {
		return b
	}
	return c
}
