// Package match implements the string matching algorithms used by the search
// engine: Knuth-Morris-Pratt and Boyer-Moore for exact single-keyword search,
// an Aho-Corasick automaton for simultaneous multi-keyword search, and
// Levenshtein-based approximate matching for typo tolerance.
//
// All matchers are case-insensitive and operate on runes, so reported offsets
// are rune offsets into the original text. The set of algorithms is closed:
// the engine dispatches over exactly these implementations.
package match

import "unicode"

// foldRunes lower-cases s rune by rune. All matchers compare folded runes so
// matching is case-insensitive without changing offsets.
func foldRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}
