package match

import (
	"errors"
	"sort"
	"strings"
)

// ErrNoPatterns is returned when an automaton is built with no usable
// patterns. Querying such an automaton would be a programming error, so the
// construction fails loudly instead of silently matching nothing.
var ErrNoPatterns = errors.New("aho-corasick: no patterns")

// acNode is one trie node of the automaton.
type acNode struct {
	children map[rune]*acNode
	fail     *acNode
	// output lists the indices of every pattern that ends at this node or at
	// any node reachable via failure links, flattened at build time so
	// reporting during the scan is O(1) per match.
	output []int
}

// Automaton is a built Aho-Corasick automaton over a fixed keyword set. It is
// read-only after construction and safe for concurrent use by any number of
// searches.
type Automaton struct {
	root     *acNode
	patterns []string // normalized, deduplicated
	lengths  []int    // rune length per pattern
}

// PatternMatch is one occurrence of one pattern found by the automaton.
type PatternMatch struct {
	Pattern string
	// Offset is the starting rune offset of the occurrence.
	Offset int
}

// NewAutomaton builds an automaton over the given patterns. Patterns are
// lower-cased, trimmed, and deduplicated; building with no non-empty pattern
// returns ErrNoPatterns. Build cost is O(total pattern length); the automaton
// is reusable across any number of texts.
func NewAutomaton(patterns []string) (*Automaton, error) {
	a := &Automaton{root: &acNode{children: make(map[rune]*acNode)}}

	seen := make(map[string]struct{}, len(patterns))
	for _, pat := range patterns {
		pat = strings.ToLower(strings.TrimSpace(pat))
		if pat == "" {
			continue
		}
		if _, dup := seen[pat]; dup {
			continue
		}
		seen[pat] = struct{}{}
		a.insert(pat)
	}
	if len(a.patterns) == 0 {
		return nil, ErrNoPatterns
	}
	a.buildFailureLinks()
	return a, nil
}

// Patterns returns the normalized pattern set the automaton was built from.
func (a *Automaton) Patterns() []string {
	return a.patterns
}

func (a *Automaton) insert(pattern string) {
	node := a.root
	for _, r := range pattern {
		child, ok := node.children[r]
		if !ok {
			child = &acNode{children: make(map[rune]*acNode)}
			node.children[r] = child
		}
		node = child
	}
	idx := len(a.patterns)
	a.patterns = append(a.patterns, pattern)
	a.lengths = append(a.lengths, len([]rune(pattern)))
	node.output = append(node.output, idx)
}

// buildFailureLinks computes failure links breadth-first: each node's failure
// link points to the longest proper suffix of its path that is also a path in
// the trie (the KMP failure function generalized to a trie). Output sets are
// merged down the failure chain as links are assigned.
func (a *Automaton) buildFailureLinks() {
	a.root.fail = a.root
	queue := make([]*acNode, 0, len(a.root.children))
	for _, child := range a.root.children {
		child.fail = a.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for r, child := range current.children {
			queue = append(queue, child)

			fail := current.fail
			for fail != a.root && fail.children[r] == nil {
				fail = fail.fail
			}
			if next := fail.children[r]; next != nil && next != child {
				child.fail = next
			} else {
				child.fail = a.root
			}
			child.output = append(child.output, child.fail.output...)
		}
	}
}

// FindAll scans text once and returns every occurrence of every pattern,
// sorted by offset (then pattern, for determinism). Runs in
// O(len(text) + number of matches).
func (a *Automaton) FindAll(text string) []PatternMatch {
	var matches []PatternMatch
	node := a.root
	for i, r := range foldRunes(text) {
		for node != a.root && node.children[r] == nil {
			node = node.fail
		}
		if next := node.children[r]; next != nil {
			node = next
		}
		for _, idx := range node.output {
			matches = append(matches, PatternMatch{
				Pattern: a.patterns[idx],
				Offset:  i - a.lengths[idx] + 1,
			})
		}
	}
	sort.Slice(matches, func(x, y int) bool {
		if matches[x].Offset != matches[y].Offset {
			return matches[x].Offset < matches[y].Offset
		}
		return matches[x].Pattern < matches[y].Pattern
	})
	return matches
}
