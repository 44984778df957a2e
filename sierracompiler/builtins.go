package sierracompiler

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// SupportedBuiltins is the fixed order of builtins the compiler accepts.
// The order matters: an entry point's declared builtins must appear as a
// subsequence of this list, not merely a subset.
var SupportedBuiltins = []string{
	"pedersen",
	"range_check",
	"ecdsa",
	"bitwise",
	"ec_op",
	"poseidon",
	"segment_arena",
}

var supportedBuiltinSet = func() mapset.Set[string] {
	s := mapset.NewSet[string]()
	for _, b := range SupportedBuiltins {
		s.Add(b)
	}
	return s
}()

// isSubsequence reports whether found appears, in order, within supported:
// every element of found must be a member of supported, and their relative
// order in found must match their order in supported.
func isSubsequence(found, supported []string) bool {
	i := 0
	for _, b := range found {
		if !supportedBuiltinSet.Contains(b) {
			return false
		}
		for i < len(supported) && supported[i] != b {
			i++
		}
		if i == len(supported) {
			return false
		}
		i++
	}
	return true
}
