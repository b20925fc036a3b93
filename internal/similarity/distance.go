// Package similarity scores text documents against each other by
// character-level edit distance.
//
// Lengths and edits are counted in runes, so a multi-byte character is one
// edit rather than several. Functions in this package perform no I/O; an
// empty string is a valid input everywhere.
package similarity

import "unicode/utf8"

// EditDistance returns the Levenshtein distance between a and b: the least
// number of single-rune insertions, deletions and substitutions that turn a
// into b. It runs in O(len(a)*len(b)) time and O(min(len(a), len(b))) space.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// rb is the shorter one and drives the row width.
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity returns a percentage in [0, 100]: the edit distance normalised
// by the length of the longer string and subtracted from 100. Two empty
// strings are identical and score 100.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	return 100 * (1 - float64(EditDistance(a, b))/float64(longest))
}
