package match

// FindAllBoyerMoore returns the starting rune offset of every occurrence of
// pattern in text, in position order, using Boyer-Moore with both the
// bad-character and good-suffix heuristics. After a full match the alignment
// advances by one so overlapping occurrences are reported, keeping the offset
// set identical to FindAllKMP. Average sub-linear; worst case O(n*m).
func FindAllBoyerMoore(pattern, text string) []int {
	p := foldRunes(pattern)
	t := foldRunes(text)
	m := len(p)
	n := len(t)
	if m == 0 || m > n {
		return nil
	}

	lastOccurrence := buildLastOccurrence(p)
	goodSuffix := buildGoodSuffix(p)

	var offsets []int
	i := 0
	for i <= n-m {
		j := m - 1
		for j >= 0 && p[j] == t[i+j] {
			j--
		}
		if j < 0 {
			offsets = append(offsets, i)
			i++
			continue
		}
		badCharShift := j - lastIndex(lastOccurrence, t[i+j])
		shift := goodSuffix[j]
		if badCharShift > shift {
			shift = badCharShift
		}
		if shift < 1 {
			shift = 1
		}
		i += shift
	}
	return offsets
}

// buildLastOccurrence maps each rune in the pattern to its last index.
func buildLastOccurrence(pattern []rune) map[rune]int {
	table := make(map[rune]int, len(pattern))
	for i, r := range pattern {
		table[r] = i
	}
	return table
}

// lastIndex returns the last pattern index of r, or -1 when r does not occur.
func lastIndex(table map[rune]int, r rune) int {
	if i, ok := table[r]; ok {
		return i
	}
	return -1
}

// buildGoodSuffix computes, for each mismatch position j, how far the
// alignment start may shift so that the already-matched suffix lines up with
// its next occurrence (or with a matching prefix of the pattern). Values are
// alignment shifts, not shifts of the mismatch text position, so the search
// loop can add them to the alignment start directly.
func buildGoodSuffix(pattern []rune) []int {
	m := len(pattern)
	table := make([]int, m)

	lastPrefixPos := m
	for j := m - 1; j >= 0; j-- {
		if isPrefix(pattern, j+1) {
			lastPrefixPos = j + 1
		}
		table[j] = lastPrefixPos
	}
	for j := 0; j < m-1; j++ {
		sl := suffixLength(pattern, j)
		table[m-1-sl] = m - 1 - j
	}
	return table
}

// isPrefix reports whether pattern[p:] is also a prefix of pattern.
func isPrefix(pattern []rune, p int) bool {
	for i, j := p, 0; i < len(pattern); i, j = i+1, j+1 {
		if pattern[i] != pattern[j] {
			return false
		}
	}
	return true
}

// suffixLength returns the length of the longest suffix of pattern that ends
// at position p.
func suffixLength(pattern []rune, p int) int {
	length := 0
	for i, j := p, len(pattern)-1; i >= 0 && pattern[i] == pattern[j]; i, j = i-1, j-1 {
		length++
	}
	return length
}
