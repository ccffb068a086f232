package match

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// KMP and Boyer-Moore must report identical offset sets for any input, and
// Aho-Corasick over a pattern set must equal the union of per-pattern KMP
// runs. Randomized inputs over a small alphabet exercise the heavy-overlap
// cases the hand-written tables miss.
func TestExactMatchersAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcab ")

	randomString := func(n int) string {
		runes := make([]rune, n)
		for i := range runes {
			runes[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(runes)
	}

	for trial := 0; trial < 200; trial++ {
		text := randomString(5 + rng.Intn(120))
		patterns := make([]string, 0, 3)
		for len(patterns) < 3 {
			p := randomString(1 + rng.Intn(5))
			if p != "" && p != " " {
				patterns = append(patterns, p)
			}
		}

		// KMP vs Boyer-Moore, per pattern.
		for _, p := range patterns {
			kmp := FindAllKMP(p, text)
			bm := FindAllBoyerMoore(p, text)
			if !reflect.DeepEqual(kmp, bm) {
				t.Fatalf("pattern %q text %q: KMP %v != Boyer-Moore %v", p, text, kmp, bm)
			}
		}

		// Aho-Corasick vs union of KMP runs.
		a, err := NewAutomaton(patterns)
		if err != nil {
			continue // all-blank pattern draw
		}
		var want []PatternMatch
		for _, p := range a.Patterns() {
			for _, off := range FindAllKMP(p, text) {
				want = append(want, PatternMatch{Pattern: p, Offset: off})
			}
		}
		sort.Slice(want, func(i, j int) bool {
			if want[i].Offset != want[j].Offset {
				return want[i].Offset < want[j].Offset
			}
			return want[i].Pattern < want[j].Pattern
		})
		got := a.FindAll(text)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("patterns %v text %q: Aho-Corasick %v != KMP union %v", patterns, text, got, want)
		}
	}
}
