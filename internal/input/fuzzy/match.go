package fuzzy

import "unicode"

// Positions returns the rune index in candidate of each query character,
// using a greedy left-to-right scan with case folding. ok is false when the
// query is not a subsequence of candidate. An empty query yields no
// positions and ok == true.
func Positions(query, candidate string) (matches []int, ok bool) {
	queryRunes := fold([]rune(query))
	if len(queryRunes) == 0 {
		return nil, true
	}
	return positions(queryRunes, fold([]rune(candidate)))
}

func positions(queryRunes, textRunes []rune) ([]int, bool) {
	matches := make([]int, 0, len(queryRunes))
	queryIdx := 0

	for i := 0; i < len(textRunes) && queryIdx < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[queryIdx] {
			matches = append(matches, i)
			queryIdx++
		}
	}

	if queryIdx != len(queryRunes) {
		return nil, false
	}
	return matches, true
}

// fold lowercases runes in place. Folding rune by rune keeps indices aligned
// with the original text, which boundary detection relies on.
func fold(runes []rune) []rune {
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
