// Package cli provides output formatting for the Rirekisho command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hyperjump/rirekisho/internal/models"
	"github.com/hyperjump/rirekisho/pkg/utils"
)

// SearchOutputFormat is the format for search result output.
type SearchOutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText SearchOutputFormat = "text"
	// OutputCompact is one result per line.
	OutputCompact SearchOutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON SearchOutputFormat = "json"
)

const snippetRadius = 40

// WriteOption configures result rendering.
type WriteOption func(*writeOptions)

type writeOptions struct {
	texts map[string]string
}

// WithTexts supplies the extracted CV text per document ID so text output can
// show a snippet around the first match. Only used by the text format.
func WithTexts(texts map[string]string) WriteOption {
	return func(o *writeOptions) { o.texts = texts }
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format SearchOutputFormat, opts ...WriteOption) error {
	var o writeOptions
	for _, opt := range opts {
		opt(&o)
	}
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	case OutputCompact:
		writeSearchResultsCompact(w, response)
		return nil
	default:
		writeSearchResultsText(w, response, &o)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse, o *writeOptions) {
	fmt.Fprintf(w, "\nFound %d applicants in %dms (algorithm: %s)\n",
		response.Total, response.QueryTime, response.Algorithm)
	if response.SkippedCount > 0 {
		fmt.Fprintf(w, "Skipped %d document(s) with unreadable text\n", response.SkippedCount)
	}
	fmt.Fprintln(w)
	for i, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.2f\n", i+1, result.OverallScore)
		fmt.Fprintf(w, "ID: %s\n", result.DocumentID)
		fmt.Fprintf(w, "Keywords: %s\n", formatHits(result))
		if text, ok := o.texts[result.DocumentID]; ok {
			if snip := firstMatchSnippet(result, text); snip != "" {
				fmt.Fprintf(w, "Context: %s\n", snip)
			}
		}
		fmt.Fprintln(w)
	}
}

func writeSearchResultsCompact(w io.Writer, response *models.SearchResponse) {
	for i, result := range response.Results {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\n", i+1, result.DocumentID, result.OverallScore, formatHits(result))
	}
}

// formatHits renders per-keyword hit counts as "go x2, java x1", in the
// evidence order the engine produced (request keyword order).
func formatHits(result *models.DocumentScore) string {
	var parts []string
	seen := make(map[string]bool)
	for _, m := range result.Matches {
		if seen[m.Keyword] {
			continue
		}
		seen[m.Keyword] = true
		label := fmt.Sprintf("%s x%d", m.Keyword, result.PerKeywordHits[m.Keyword])
		if m.Matched != "" && m.Matched != m.Keyword {
			label = fmt.Sprintf("%s (~%s %.0f%%)", label, m.Matched, m.Similarity*100)
		}
		parts = append(parts, label)
	}
	// Keywords present in the hit map but missing from the evidence still
	// get listed, sorted for determinism.
	var rest []string
	for kw, n := range result.PerKeywordHits {
		if !seen[kw] {
			rest = append(rest, fmt.Sprintf("%s x%d", kw, n))
		}
	}
	sort.Strings(rest)
	return strings.Join(append(parts, rest...), ", ")
}

// firstMatchSnippet returns the CV text around the earliest match offset.
func firstMatchSnippet(result *models.DocumentScore, text string) string {
	best := -1
	for _, m := range result.Matches {
		for _, off := range m.Offsets {
			if best < 0 || off < best {
				best = off
			}
		}
	}
	if best < 0 {
		return ""
	}
	return utils.Snippet(text, best, snippetRadius)
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
