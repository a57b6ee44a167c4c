package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoScoreFunction is returned when a script defines no score function.
	ErrNoScoreFunction = errors.New("script does not define a score function")

	// ErrBadResult is returned when score returns something other than a
	// number, nil or false.
	ErrBadResult = errors.New("score returned a non-number")
)
