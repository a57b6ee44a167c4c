// Package picker ranks a fixed candidate list against a live query and
// tracks a cyclic selection over the ranked matches.
package picker

import (
	"cmp"
	"iter"
	"slices"

	"github.com/dshills/glyphmenu/internal/input/fuzzy"
	"github.com/dshills/glyphmenu/internal/input/lineedit"
)

// Match is one ranked candidate.
type Match struct {
	// Score is the scorer's rank (higher is better).
	Score int

	// Index is the candidate's position in the original option list.
	Index int
}

// Picker owns the candidate list, the query editor and the ranked matches.
//
// Matches are derived state: Update always recomputes them from the full
// option list. Picker is not safe for concurrent use.
type Picker struct {
	options   []string
	scorer    fuzzy.Scorer
	editor    *lineedit.Editor
	matches   []Match
	selection int
}

// New creates a picker over options. The slice is copied. A nil scorer
// selects fuzzy.DefaultWeights.
func New(options []string, scorer fuzzy.Scorer) *Picker {
	if scorer == nil {
		scorer = fuzzy.DefaultWeights()
	}
	return &Picker{
		options: slices.Clone(options),
		scorer:  scorer,
		editor:  lineedit.New(),
		matches: make([]Match, 0, len(options)),
	}
}

// Editor returns the query editor.
func (p *Picker) Editor() *lineedit.Editor {
	return p.editor
}

// Query returns the current query text.
func (p *Picker) Query() string {
	return p.editor.Query()
}

// SetScorer replaces the scoring strategy. It takes effect on the next
// Update. A nil scorer is ignored.
func (p *Picker) SetScorer(s fuzzy.Scorer) {
	if s != nil {
		p.scorer = s
	}
}

// Options returns the number of candidates.
func (p *Picker) Options() int {
	return len(p.options)
}

// Update re-ranks every candidate against the current query. Matches are
// ordered by score descending, then by original index ascending. The
// selection is clamped to the new match count.
func (p *Picker) Update() {
	query := p.editor.Query()

	p.matches = p.matches[:0]
	for i, opt := range p.options {
		if score, ok := p.scorer.Score(query, opt); ok {
			p.matches = append(p.matches, Match{Score: score, Index: i})
		}
	}

	slices.SortFunc(p.matches, func(a, b Match) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(a.Index, b.Index),
		)
	})

	p.clamp()
}

// Len returns the number of current matches.
func (p *Picker) Len() int {
	return len(p.matches)
}

// Matches returns a copy of the ranked matches.
func (p *Picker) Matches() []Match {
	return slices.Clone(p.matches)
}

// Selection returns the selected rank.
func (p *Picker) Selection() int {
	return p.selection
}

// Next selects the following match, wrapping to the first.
func (p *Picker) Next() {
	if n := len(p.matches); n > 0 {
		p.selection = (p.selection + 1) % n
	}
}

// Prev selects the preceding match, wrapping to the last.
func (p *Picker) Prev() {
	if n := len(p.matches); n > 0 {
		p.selection = (p.selection - 1 + n) % n
	}
}

// Select moves the selection to rank, clamped to the matches. Unlike
// Next and Prev it does not wrap.
func (p *Picker) Select(rank int) {
	if len(p.matches) == 0 {
		p.selection = 0
		return
	}
	p.selection = max(0, min(rank, len(p.matches)-1))
}

// Selected returns the selected candidate, or false when nothing matches.
func (p *Picker) Selected() (string, bool) {
	if p.selection >= len(p.matches) {
		return "", false
	}
	return p.options[p.matches[p.selection].Index], true
}

// Top yields the first n ranked candidates. The sequence reads the current
// matches each time it is iterated.
func (p *Picker) Top(n int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, text := range p.Window(0, n) {
			if !yield(text) {
				return
			}
		}
	}
}

// Window yields up to n ranked candidates starting at rank offset, paired
// with their rank.
func (p *Picker) Window(offset, n int) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		start := max(offset, 0)
		end := min(start+max(n, 0), len(p.matches))
		for rank := start; rank < end; rank++ {
			if !yield(rank, p.options[p.matches[rank].Index]) {
				return
			}
		}
	}
}

// Scroll returns the first visible rank for a view of rows lines, moving
// offset as little as possible to keep the selection on screen.
func (p *Picker) Scroll(offset, rows int) int {
	if rows <= 0 || len(p.matches) == 0 {
		return 0
	}
	switch {
	case p.selection < offset:
		offset = p.selection
	case p.selection >= offset+rows:
		offset = p.selection - rows + 1
	}
	return max(0, min(offset, len(p.matches)-rows))
}

func (p *Picker) clamp() {
	switch {
	case len(p.matches) == 0:
		p.selection = 0
	case p.selection >= len(p.matches):
		p.selection = len(p.matches) - 1
	}
}
