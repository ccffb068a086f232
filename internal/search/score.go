package search

import (
	"sort"

	"github.com/hyperjump/rirekisho/internal/models"
)

// Default ranking weights. Coverage (how many distinct keywords a document
// matches) dominates repetition (how often any one keyword occurs), so a CV
// matching 3 of 3 keywords once each outranks one matching a single keyword
// three times.
const (
	DefaultCoverageWeight   = 10.0
	DefaultOccurrenceWeight = 1.0
)

// Score computes the overall document score:
//
//	score = coverageWeight*distinctKeywords + occurrenceWeight*occurrences
//
// where occurrences is the similarity-weighted occurrence count: exact
// matches contribute 1 per occurrence, fuzzy matches contribute their
// similarity ratio instead.
func Score(perKeywordHits map[string]int, matches []models.MatchEvidence, coverageWeight, occurrenceWeight float64) float64 {
	var occurrences float64
	for _, m := range matches {
		occurrences += m.Similarity * float64(len(m.Offsets))
	}
	return coverageWeight*float64(len(perKeywordHits)) + occurrenceWeight*occurrences
}

// mergeRanked merges the partial score lists produced by the worker shards
// into the final ranking: descending overall score, ties broken by ascending
// document ID so the ordering is deterministic regardless of worker count or
// shard assignment. Pure function of its inputs; O(n log n), no re-scan.
func mergeRanked(shards [][]*models.DocumentScore) []*models.DocumentScore {
	total := 0
	for _, s := range shards {
		total += len(s)
	}
	merged := make([]*models.DocumentScore, 0, total)
	for _, s := range shards {
		merged = append(merged, s...)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].OverallScore != merged[j].OverallScore {
			return merged[i].OverallScore > merged[j].OverallScore
		}
		return merged[i].DocumentID < merged[j].DocumentID
	})
	return merged
}
