package models

import (
	"fmt"
	"strings"
)

// Algorithm selects which matcher the engine runs. The set is closed by
// design: the engine dispatches over these five values and nothing else.
type Algorithm string

const (
	// AlgorithmKMP runs Knuth-Morris-Pratt per keyword.
	AlgorithmKMP Algorithm = "kmp"
	// AlgorithmBoyerMoore runs Boyer-Moore per keyword.
	AlgorithmBoyerMoore Algorithm = "boyer_moore"
	// AlgorithmAhoCorasick runs one automaton over all keywords at once.
	AlgorithmAhoCorasick Algorithm = "aho_corasick"
	// AlgorithmFuzzy runs approximate token matching per keyword.
	AlgorithmFuzzy Algorithm = "fuzzy"
	// AlgorithmAuto picks Aho-Corasick for multi-keyword requests and KMP otherwise.
	AlgorithmAuto Algorithm = "auto"
)

// ParseAlgorithm parses a user-supplied algorithm name. Accepts the canonical
// names plus the short forms used by the CLI ("bm", "ac"). An empty string
// means Auto.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return AlgorithmAuto, nil
	case "kmp":
		return AlgorithmKMP, nil
	case "bm", "boyer_moore", "boyer-moore":
		return AlgorithmBoyerMoore, nil
	case "ac", "aho_corasick", "aho-corasick":
		return AlgorithmAhoCorasick, nil
	case "fuzzy":
		return AlgorithmFuzzy, nil
	default:
		return "", fmt.Errorf("unknown algorithm %q", s)
	}
}

// SearchRequest is a validated search over the applicant corpus.
type SearchRequest struct {
	Keywords []string `json:"keywords"`
	// Algorithm is one of kmp, boyer_moore, aho_corasick, fuzzy, auto.
	Algorithm Algorithm `json:"algorithm,omitempty"`
	// MaxResults caps the ranked result list. Defaults to 10.
	MaxResults int `json:"max_results,omitempty"`
	// FuzzyThreshold is the minimum similarity for fuzzy matches, in [0,1].
	// nil means the engine's configured default; an explicit 0 accepts every
	// candidate token.
	FuzzyThreshold *float64 `json:"fuzzy_threshold,omitempty"`
	// DynamicThreshold derives a per-keyword threshold from keyword length
	// instead of using FuzzyThreshold (short keywords match strictly, long
	// keywords tolerate more typos). Only meaningful with the fuzzy algorithm.
	DynamicThreshold bool `json:"dynamic_threshold,omitempty"`
}

// InvalidConfigurationError reports a request field that failed validation.
// The whole search call fails immediately; it is never retried.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate normalizes the request in place and reports the first invalid
// field. Keywords are trimmed, lower-cased, and deduplicated with insertion
// order preserved; an empty keyword set is valid (the search returns no
// results rather than failing).
func (r *SearchRequest) Validate() error {
	seen := make(map[string]struct{}, len(r.Keywords))
	normalized := make([]string, 0, len(r.Keywords))
	for _, kw := range r.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		normalized = append(normalized, kw)
	}
	r.Keywords = normalized

	if r.Algorithm == "" {
		r.Algorithm = AlgorithmAuto
	}
	switch r.Algorithm {
	case AlgorithmKMP, AlgorithmBoyerMoore, AlgorithmAhoCorasick, AlgorithmFuzzy, AlgorithmAuto:
	default:
		return &InvalidConfigurationError{Field: "algorithm", Reason: fmt.Sprintf("unknown value %q", r.Algorithm)}
	}

	if r.MaxResults == 0 {
		r.MaxResults = 10
	}
	if r.MaxResults < 1 {
		return &InvalidConfigurationError{Field: "max_results", Reason: "must be at least 1"}
	}
	if r.FuzzyThreshold != nil && (*r.FuzzyThreshold < 0 || *r.FuzzyThreshold > 1) {
		return &InvalidConfigurationError{Field: "fuzzy_threshold", Reason: "must be in [0,1]"}
	}
	return nil
}

// MatchEvidence is the result of one matcher running one keyword against one
// document: every occurrence offset (rune offsets into the text), and for
// fuzzy matches the matched token and its similarity in [0,1].
type MatchEvidence struct {
	Keyword string `json:"keyword"`
	// Offsets holds the starting rune offset of every occurrence, in
	// position order. All occurrences are reported, not just the first.
	Offsets []int `json:"offsets"`
	// Matched is the text that matched. Equal to Keyword for exact matches;
	// the accepted candidate token for fuzzy matches.
	Matched string `json:"matched,omitempty"`
	// Similarity is 1 for exact matches, the similarity ratio for fuzzy ones.
	Similarity float64 `json:"similarity"`
}

// DocumentScore aggregates all match evidence for one document across all
// requested keywords. Immutable after aggregation; never persisted.
type DocumentScore struct {
	DocumentID string `json:"document_id"`
	// OverallScore weighs distinct-keyword coverage above raw repetition;
	// see search.Score for the exact formula.
	OverallScore float64 `json:"overall_score"`
	// PerKeywordHits maps each matched keyword to its occurrence count.
	PerKeywordHits map[string]int  `json:"per_keyword_hits"`
	Matches        []MatchEvidence `json:"matches"`
}

// SkippedDocument records a document that could not be searched. The search
// call still succeeds; skipped documents are reported alongside the results.
type SkippedDocument struct {
	DocumentID string `json:"document_id"`
	Reason     string `json:"reason"`
}

// SearchResponse is the ranked result of one search call.
type SearchResponse struct {
	// Results are sorted by descending overall score, ties broken by
	// ascending document ID, truncated to the request's MaxResults.
	Results []*DocumentScore `json:"results"`
	// Total is the number of documents that matched before truncation.
	Total int `json:"total"`
	// Skipped lists documents excluded due to per-document errors.
	Skipped      []SkippedDocument `json:"skipped,omitempty"`
	SkippedCount int               `json:"skipped_count"`
	Algorithm    Algorithm         `json:"algorithm"`
	QueryTime    int64             `json:"query_time_ms"`
}
