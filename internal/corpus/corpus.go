// Package corpus defines how the search engine consumes the applicant
// corpus: a lazy iterator over (document ID, extracted text) pairs, so the
// engine never assumes the whole corpus fits in memory at once.
package corpus

import (
	"context"

	"github.com/hyperjump/rirekisho/internal/models"
)

// Provider yields CV documents one at a time. Iterate calls fn for each
// document and stops early when fn returns an error (which Iterate then
// returns). Implementations must respect ctx cancellation between documents.
type Provider interface {
	Iterate(ctx context.Context, fn func(doc models.CVDocument) error) error
}

// MemoryProvider serves a fixed slice of documents. Used by tests and by the
// CLI when searching ad-hoc text instead of the applicant store.
type MemoryProvider struct {
	docs []models.CVDocument
}

// NewMemoryProvider creates a provider over the given documents.
func NewMemoryProvider(docs ...models.CVDocument) *MemoryProvider {
	return &MemoryProvider{docs: docs}
}

// Add appends a document to the corpus.
func (p *MemoryProvider) Add(id, text string) {
	p.docs = append(p.docs, models.CVDocument{ID: id, Text: text})
}

// Iterate implements Provider.
func (p *MemoryProvider) Iterate(ctx context.Context, fn func(doc models.CVDocument) error) error {
	for _, doc := range p.docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}
