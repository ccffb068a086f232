package match

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
)

// ApproxMatch is one approximate occurrence of a query in a text.
type ApproxMatch struct {
	// Offset is the starting rune offset of the matched token or phrase.
	Offset int
	// Matched is the token (or token window) that met the threshold.
	Matched string
	// Similarity is the ratio in [0,1] between the query and Matched.
	Similarity float64
}

// Similarity returns the normalized Levenshtein similarity between a and b:
// 1 - distance/max(len(a), len(b)), computed over runes, case-insensitive.
// This formula is fixed: it is what decides which typos are tolerated, and
// the golden tests pin it down. Empty input scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	score, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(score)
}

// FindApproximate returns every token of text whose similarity to query meets
// or exceeds threshold, in position order. Comparison is token-level to keep
// cost bounded to O(tokens * |query| * avg token length); multi-word queries
// are compared against sliding windows of query-length ± 1 tokens. A
// threshold of 0 accepts every token; a threshold of 1 accepts only exact
// (case-insensitive) equality.
func FindApproximate(query, text string, threshold float64) []ApproxMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || text == "" {
		return nil
	}

	tokens := tokenize(text)
	queryWords := strings.Fields(query)
	if len(queryWords) <= 1 {
		var matches []ApproxMatch
		for _, tok := range tokens {
			if sim := Similarity(query, tok.text); sim >= threshold {
				matches = append(matches, ApproxMatch{Offset: tok.offset, Matched: tok.text, Similarity: sim})
			}
		}
		return matches
	}
	return findApproximatePhrase(query, len(queryWords), tokens, threshold)
}

// findApproximatePhrase slides windows of n-1, n, and n+1 tokens over the
// text (n = number of query words) and scores each window against the whole
// query, so phrases still match when a word was dropped or duplicated.
func findApproximatePhrase(query string, queryLen int, tokens []token, threshold float64) []ApproxMatch {
	var matches []ApproxMatch
	for _, size := range []int{queryLen - 1, queryLen, queryLen + 1} {
		if size < 1 || size > len(tokens) {
			continue
		}
		for start := 0; start+size <= len(tokens); start++ {
			words := make([]string, size)
			for i := 0; i < size; i++ {
				words[i] = tokens[start+i].text
			}
			phrase := strings.Join(words, " ")
			if sim := Similarity(query, phrase); sim >= threshold {
				matches = append(matches, ApproxMatch{Offset: tokens[start].offset, Matched: phrase, Similarity: sim})
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Offset != matches[j].Offset {
			return matches[i].Offset < matches[j].Offset
		}
		return matches[i].Matched < matches[j].Matched
	})
	return matches
}

// DynamicThreshold derives a similarity threshold from keyword length: short
// keywords must match exactly while long keywords tolerate more typos.
func DynamicThreshold(keyword string) float64 {
	switch n := len([]rune(strings.TrimSpace(keyword))); {
	case n <= 3:
		return 1.0
	case n <= 5:
		return 0.95
	case n <= 8:
		return 0.85
	case n <= 12:
		return 0.8
	default:
		return 0.7
	}
}

// token is one word of a text with its starting rune offset.
type token struct {
	text   string
	offset int
}

// tokenize splits text into words on whitespace, trimming punctuation at the
// token edges (so "Go," matches "go") while keeping interior symbols intact
// (so "C++" and "node.js" survive). Offsets are rune offsets into text.
func tokenize(text string) []token {
	var tokens []token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		if start == i {
			continue
		}
		lo, hi := start, i
		for lo < hi && isEdgePunct(runes[lo]) {
			lo++
		}
		for hi > lo && isEdgePunct(runes[hi-1]) {
			hi--
		}
		if lo < hi {
			tokens = append(tokens, token{text: string(runes[lo:hi]), offset: lo})
		}
	}
	return tokens
}

// isEdgePunct reports punctuation that should be stripped from token edges.
// '+' and '#' are kept so language names like "C++" and "C#" stay intact.
func isEdgePunct(r rune) bool {
	switch r {
	case '+', '#':
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
