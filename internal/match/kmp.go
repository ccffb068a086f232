package match

// FindAllKMP returns the starting rune offset of every occurrence of pattern
// in text, in position order, using Knuth-Morris-Pratt. Overlapping
// occurrences are all reported. An empty pattern or a pattern longer than the
// text yields no matches. Runs in O(len(text) + len(pattern)).
func FindAllKMP(pattern, text string) []int {
	p := foldRunes(pattern)
	t := foldRunes(text)
	if len(p) == 0 || len(p) > len(t) {
		return nil
	}

	failure := buildFailure(p)
	var offsets []int
	j := 0 // pattern position
	for i := 0; i < len(t); i++ {
		for j > 0 && t[i] != p[j] {
			j = failure[j-1]
		}
		if t[i] == p[j] {
			j++
		}
		if j == len(p) {
			offsets = append(offsets, i-j+1)
			// Continue from the longest border so overlapping matches are found.
			j = failure[j-1]
		}
	}
	return offsets
}

// buildFailure computes the KMP failure function: failure[i] is the length of
// the longest proper prefix of pattern[0..i] that is also a suffix of it.
func buildFailure(pattern []rune) []int {
	failure := make([]int, len(pattern))
	j := 0
	for i := 1; i < len(pattern); i++ {
		for j > 0 && pattern[i] != pattern[j] {
			j = failure[j-1]
		}
		if pattern[i] == pattern[j] {
			j++
		}
		failure[i] = j
	}
	return failure
}
