package lua

import (
	"fmt"
	"math"

	"github.com/dshills/glyphmenu/internal/input/fuzzy"
	lua "github.com/yuin/gopher-lua"
)

// scoreFunc is the global a ranking script must define.
const scoreFunc = "score"

// Scorer is a fuzzy.Scorer that delegates ranking to a Lua script.
//
// Matching stays in Go: the script is only asked to rank candidates that
// the query already matches, and an empty query scores every candidate
// 0 without calling the script. When a call fails the candidate is
// ranked by the fallback scorer and the failure is recorded.
type Scorer struct {
	state    *State
	fallback fuzzy.Scorer

	failures int
	lastErr  error
}

// NewScorer loads the ranking script at path. A nil fallback selects the
// default weighted scorer.
func NewScorer(path string, fallback fuzzy.Scorer, opts ...StateOption) (*Scorer, error) {
	state := NewState(opts...)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return newScorer(state, path, fallback)
}

// NewScorerFromString is like NewScorer with the script given inline.
func NewScorerFromString(code string, fallback fuzzy.Scorer, opts ...StateOption) (*Scorer, error) {
	state := NewState(opts...)
	if err := state.DoString(code); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return newScorer(state, "script", fallback)
}

func newScorer(state *State, name string, fallback fuzzy.Scorer) (*Scorer, error) {
	if !state.HasFunction(scoreFunc) {
		state.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrNoScoreFunction)
	}
	if fallback == nil {
		fallback = fuzzy.DefaultWeights()
	}
	return &Scorer{state: state, fallback: fallback}, nil
}

// Score implements fuzzy.Scorer.
func (s *Scorer) Score(query, candidate string) (int, bool) {
	positions, ok := fuzzy.Positions(query, candidate)
	if !ok {
		return 0, false
	}
	if query == "" {
		return 0, true
	}

	score, keep, err := s.call(query, candidate, positions)
	if err != nil {
		s.failures++
		s.lastErr = err
		return s.fallback.Score(query, candidate)
	}
	return score, keep
}

func (s *Scorer) call(query, candidate string, positions []int) (int, bool, error) {
	tbl := s.state.L.CreateTable(len(positions), 0)
	for _, p := range positions {
		tbl.Append(lua.LNumber(p + 1))
	}

	ret, err := s.state.Call(scoreFunc, lua.LString(query), lua.LString(candidate), tbl)
	if err != nil {
		return 0, false, err
	}

	switch v := ret.(type) {
	case lua.LNumber:
		f := float64(v)
		if math.IsNaN(f) {
			return 0, false, fmt.Errorf("%w: NaN", ErrBadResult)
		}
		return int(max(min(f, math.MaxInt32), math.MinInt32)), true, nil
	case lua.LBool:
		if !bool(v) {
			return 0, false, nil
		}
	case *lua.LNilType:
		return 0, false, nil
	}
	return 0, false, fmt.Errorf("%w: %s", ErrBadResult, ret.Type())
}

// Failures returns how many calls have failed and the most recent error.
func (s *Scorer) Failures() (int, error) {
	return s.failures, s.lastErr
}

// Close releases the Lua state.
func (s *Scorer) Close() error {
	return s.state.Close()
}
