// Package fuzzy scores candidate strings against a query.
//
// A candidate matches when every character of the query occurs in it, in
// order, ignoring case. Matching candidates receive a score; higher is
// better.
//
// # Scoring Algorithm
//
// The weighted scorer favors:
//   - Consecutive character matches
//   - Word boundary matches (after a separator, camelCase transitions)
//   - Prefix matches (query at start of text)
//   - Shorter text (more specific matches)
//   - Minimal gaps between matched characters
//
// An empty query matches every candidate with the same score, so a stable
// sort keeps the original order.
//
// # Usage
//
//	var s fuzzy.Scorer = fuzzy.DefaultWeights()
//	if score, ok := s.Score("mc", "MainController.go"); ok {
//	    fmt.Println(score)
//	}
//
// Scorers must be deterministic: the same query and candidate always give the
// same result.
package fuzzy
