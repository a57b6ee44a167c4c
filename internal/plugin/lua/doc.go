// Package lua runs user ranking scripts in a sandboxed gopher-lua state.
//
// A ranking script defines a global function
//
//	function score(query, candidate, positions)
//	    return #positions * 10 - #candidate
//	end
//
// which is called only for candidates the query already matches as a
// case-insensitive subsequence. positions holds the 1-based character
// index of each query character in candidate. Returning a number ranks
// the candidate; returning nil or false drops it.
//
// Scripts see only the base, table, string and math libraries. File
// loading functions are removed and print is redirected to the host.
package lua
