package fuzzy

import "unicode"

// Scorer ranks a candidate against a query.
//
// Score reports ok == true exactly when the query is a case-insensitive
// subsequence of the candidate. For an empty query every candidate matches
// with the same score.
type Scorer interface {
	Score(query, candidate string) (score int, ok bool)
}

// WeightedScorer scores matches with configurable weights.
type WeightedScorer struct {
	// BaseScore is the starting score for any match.
	BaseScore int

	// ConsecutiveBonus is added for each consecutive character match.
	ConsecutiveBonus int

	// WordBoundaryBonus is added for matches at word boundaries.
	WordBoundaryBonus int

	// PrefixBonus is added when the first match is at position 0.
	PrefixBonus int

	// ExactPrefixBonus is added when query matches the start of text exactly.
	ExactPrefixBonus int

	// GapPenalty is subtracted for each gap character between matches.
	GapPenalty int

	// LeadingPenalty is subtracted for each character before first match.
	LeadingPenalty int

	// LengthBonusThreshold awards one point per character a candidate is
	// shorter than this length.
	LengthBonusThreshold int
}

// DefaultWeights returns the default scoring weights.
func DefaultWeights() WeightedScorer {
	return WeightedScorer{
		BaseScore:            100,
		ConsecutiveBonus:     20,
		WordBoundaryBonus:    15,
		PrefixBonus:          25,
		ExactPrefixBonus:     50,
		GapPenalty:           2,
		LeadingPenalty:       1,
		LengthBonusThreshold: 20,
	}
}

// Score implements the Scorer interface.
func (s WeightedScorer) Score(query, candidate string) (int, bool) {
	queryRunes := fold([]rune(query))
	if len(queryRunes) == 0 {
		return 0, true
	}

	originalRunes := []rune(candidate)
	textRunes := fold(append([]rune(nil), originalRunes...))

	matches, ok := positions(queryRunes, textRunes)
	if !ok {
		return 0, false
	}
	return s.rank(queryRunes, originalRunes, textRunes, matches), true
}

// rank computes the score of a known match. matches holds the rune index of
// each query character in text.
func (s WeightedScorer) rank(queryRunes, originalRunes, textRunes []rune, matches []int) int {
	score := s.BaseScore

	// Consecutive matches bonus
	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += s.ConsecutiveBonus
		}
	}

	// Word boundary bonus
	for _, idx := range matches {
		if isWordBoundary(originalRunes, idx) {
			score += s.WordBoundaryBonus
		}
	}

	// Prefix bonus
	if matches[0] == 0 {
		score += s.PrefixBonus
	}

	// Gap penalty
	if len(matches) > 1 {
		totalGap := matches[len(matches)-1] - matches[0] - len(matches) + 1
		if totalGap > 0 {
			score -= totalGap * s.GapPenalty
		}
	}

	// Leading penalty
	if matches[0] > 0 {
		score -= matches[0] * s.LeadingPenalty
	}

	// Length bonus
	if textLen := len(textRunes); textLen < s.LengthBonusThreshold {
		score += s.LengthBonusThreshold - textLen
	}

	// Exact prefix bonus
	if hasPrefix(textRunes, queryRunes) {
		score += s.ExactPrefixBonus
	}

	if score < 1 {
		score = 1
	}
	return score
}

// PathScorer is tuned for file paths. It gives extra weight to matches in
// the final path element.
type PathScorer struct {
	base WeightedScorer
}

// NewPathScorer creates a scorer optimized for file paths.
func NewPathScorer() PathScorer {
	return PathScorer{
		base: WeightedScorer{
			BaseScore:            100,
			ConsecutiveBonus:     25, // Higher for paths
			WordBoundaryBonus:    20, // Path separators matter
			PrefixBonus:          15, // Less important for paths
			ExactPrefixBonus:     30,
			GapPenalty:           3,
			LeadingPenalty:       1,
			LengthBonusThreshold: 30, // Paths are longer
		},
	}
}

// Score implements the Scorer interface.
func (s PathScorer) Score(query, candidate string) (int, bool) {
	queryRunes := fold([]rune(query))
	if len(queryRunes) == 0 {
		return 0, true
	}

	originalRunes := []rune(candidate)
	textRunes := fold(append([]rune(nil), originalRunes...))

	matches, ok := positions(queryRunes, textRunes)
	if !ok {
		return 0, false
	}
	score := s.base.rank(queryRunes, originalRunes, textRunes, matches)

	lastSep := -1
	for i := len(originalRunes) - 1; i >= 0; i-- {
		if originalRunes[i] == '/' || originalRunes[i] == '\\' {
			lastSep = i
			break
		}
	}
	if lastSep >= 0 {
		for _, idx := range matches {
			if idx > lastSep {
				score += 10
			}
		}
	}
	return score, true
}

// isWordBoundary checks if the rune at idx is at a word boundary.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}

	prevChar := runes[idx-1]
	currChar := runes[idx]

	// After separator characters (including Unicode space/punct)
	if unicode.IsSpace(prevChar) || unicode.IsPunct(prevChar) {
		return true
	}

	// CamelCase boundary (lowercase followed by uppercase)
	return unicode.IsLower(prevChar) && unicode.IsUpper(currChar)
}

func hasPrefix(text, prefix []rune) bool {
	if len(text) < len(prefix) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}
