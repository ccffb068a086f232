// Package indexer ingests CV files into applicant storage: extract the text,
// normalize it, and upsert the applicant record the search engine reads from.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/rirekisho/internal/extract"
	"github.com/hyperjump/rirekisho/internal/fileid"
	"github.com/hyperjump/rirekisho/internal/models"
	"github.com/hyperjump/rirekisho/internal/storage"
)

// Indexer extracts text from CV files and upserts applicants into storage.
type Indexer struct {
	storage   storage.Storage
	extractor *extract.Extractor
	logger    *zap.Logger // optional; when set, logs debug events
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets a logger for debug output (file indexed, applicant deleted, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer creates an indexer with the given dependencies.
// extractor may be nil; when nil, IndexFile treats all files as plain text.
func NewIndexer(st storage.Storage, extractor *extract.Extractor, opts ...Option) *Indexer {
	idx := &Indexer{
		storage:   st,
		extractor: extractor,
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// IndexApplicant upserts an applicant. Either input.Text (already-extracted
// content) or input.CVPath (a file to extract) must be set; Text wins when
// both are present. A missing ID gets a fresh UUID.
func (idx *Indexer) IndexApplicant(ctx context.Context, input *models.ApplicantInput) (*models.Applicant, error) {
	text := input.Text
	if text == "" {
		if input.CVPath == "" {
			return nil, errors.New("either text or cv_path must be provided")
		}
		extracted, err := idx.extractContent(input.CVPath)
		if err != nil {
			return nil, fmt.Errorf("extract content: %w", err)
		}
		text = extracted
	}
	text = Preprocess(text)
	if text == "" {
		return nil, errors.New("no searchable text in CV")
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	name := input.Name
	if name == "" && input.CVPath != "" {
		name = nameFromPath(input.CVPath)
	}

	a := &models.Applicant{
		ID:            id,
		Name:          name,
		Role:          input.Role,
		CVPath:        input.CVPath,
		ExtractedText: text,
	}
	if err := idx.upsert(ctx, a); err != nil {
		return nil, err
	}
	if idx.logger != nil {
		idx.logger.Debug("applicant indexed", zap.String("id", a.ID), zap.Int("text_len", len(text)))
	}
	return a, nil
}

func (idx *Indexer) upsert(ctx context.Context, a *models.Applicant) error {
	err := idx.storage.UpdateApplicant(ctx, a)
	if errors.Is(err, storage.ErrNotFound) {
		return idx.storage.CreateApplicant(ctx, a)
	}
	return err
}

// IndexFile reads a CV file from path and indexes it. The applicant ID is
// derived from the absolute path so re-indexing updates the same applicant.
// If allowedExts is non-empty, the file's extension must be in the list
// (case-insensitive). Skips extraction when the stored applicant is newer
// than the file on disk.
func (idx *Indexer) IndexFile(ctx context.Context, path string, allowedExts []string) (*models.Applicant, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(absPath))
	if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
		return nil, fmt.Errorf("extension %q not in allowed list", ext)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}

	id := fileid.ApplicantID(absPath)
	if existing, ok := idx.unchanged(ctx, id, absPath, info); ok {
		if idx.logger != nil {
			idx.logger.Debug("skipping unchanged file", zap.String("path", absPath))
		}
		return existing, nil
	}

	text, err := idx.extractContent(absPath)
	if err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}
	a, err := idx.IndexApplicant(ctx, &models.ApplicantInput{
		ID:     id,
		Name:   nameFromPath(absPath),
		CVPath: absPath,
		Text:   text,
	})
	if err != nil {
		return nil, err
	}
	if idx.logger != nil {
		idx.logger.Debug("file indexed", zap.String("path", absPath), zap.String("id", a.ID))
	}
	return a, nil
}

// unchanged reports whether the applicant for this file is already indexed
// and at least as new as the file on disk.
func (idx *Indexer) unchanged(ctx context.Context, id, absPath string, info os.FileInfo) (*models.Applicant, bool) {
	a, err := idx.storage.GetApplicant(ctx, id)
	if err != nil {
		return nil, false
	}
	if a.CVPath != absPath {
		return nil, false
	}
	if info.ModTime().After(a.UpdatedAt) {
		return nil, false
	}
	return a, true
}

// IndexDirectory walks dir recursively and indexes each regular file whose
// extension is in allowedExts (if non-empty; otherwise all files). Returns
// the number of files indexed and the first error encountered, if any.
func (idx *Indexer) IndexDirectory(ctx context.Context, dir string, allowedExts []string) (n int, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if len(allowedExts) > 0 && !extensionAllowed(ext, allowedExts) {
			return nil
		}
		// Resolve symlinks so we only index regular files
		finfo, statErr := os.Stat(path)
		if statErr != nil {
			return nil
		}
		if !finfo.Mode().IsRegular() {
			return nil
		}
		if _, indexErr := idx.IndexFile(ctx, path, allowedExts); indexErr != nil {
			return indexErr
		}
		n++
		return nil
	})
	return n, err
}

// DeleteApplicant removes an applicant from storage.
func (idx *Indexer) DeleteApplicant(ctx context.Context, id string) error {
	if err := idx.storage.DeleteApplicant(ctx, id); err != nil {
		return err
	}
	if idx.logger != nil {
		idx.logger.Debug("applicant deleted", zap.String("id", id))
	}
	return nil
}

// DeleteByPath removes the applicant indexed from the given CV file, if any.
func (idx *Indexer) DeleteByPath(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("absolute path: %w", err)
	}
	err = idx.DeleteApplicant(ctx, fileid.ApplicantID(absPath))
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

func (idx *Indexer) extractContent(path string) (string, error) {
	if idx.extractor != nil {
		return idx.extractor.Extract(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// nameFromPath guesses an applicant name from a CV filename: underscores as
// spaces so "taro_yamada.pdf" becomes "taro yamada".
func nameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "_", " ")
}

func extensionAllowed(ext string, allowed []string) bool {
	extNorm := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}
