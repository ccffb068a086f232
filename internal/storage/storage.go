// Package storage defines the persistence interface for applicants.
package storage

import (
	"context"
	"errors"

	"github.com/hyperjump/rirekisho/internal/models"
)

// ErrNotFound is returned when an applicant ID does not exist.
var ErrNotFound = errors.New("applicant not found")

// Storage defines applicant persistence operations. Implementations also
// serve as the search corpus by streaming (id, extracted text) pairs.
type Storage interface {
	CreateApplicant(ctx context.Context, a *models.Applicant) error
	GetApplicant(ctx context.Context, id string) (*models.Applicant, error)
	UpdateApplicant(ctx context.Context, a *models.Applicant) error
	DeleteApplicant(ctx context.Context, id string) error
	ListApplicants(ctx context.Context, offset, limit int) ([]*models.Applicant, error)
	CountApplicants(ctx context.Context) (int64, error)

	// Iterate streams the searchable corpus: one CVDocument per applicant
	// with non-empty extracted text.
	Iterate(ctx context.Context, fn func(doc models.CVDocument) error) error

	Close() error
}
