// Package storage provides SQLite implementation of the Storage interface.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/rirekisho/internal/models"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates a SQLite database at dbPath and initializes the schema.
// Parent directories are created if they do not exist.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS applicants (
		id TEXT PRIMARY KEY,
		name TEXT,
		role TEXT,
		cv_path TEXT,
		extracted_text TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_applicants_created_at ON applicants(created_at);
	CREATE INDEX IF NOT EXISTS idx_applicants_cv_path ON applicants(cv_path);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateApplicant inserts an applicant.
func (s *SQLiteStorage) CreateApplicant(ctx context.Context, a *models.Applicant) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applicants (id, name, role, cv_path, extracted_text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Role, a.CVPath, a.ExtractedText, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// GetApplicant returns an applicant by ID.
func (s *SQLiteStorage) GetApplicant(ctx context.Context, id string) (*models.Applicant, error) {
	var a models.Applicant
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, role, cv_path, extracted_text, created_at, updated_at
		 FROM applicants WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Role, &a.CVPath, &a.ExtractedText, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetApplicantByPath returns the applicant indexed from the given CV file, if any.
func (s *SQLiteStorage) GetApplicantByPath(ctx context.Context, cvPath string) (*models.Applicant, error) {
	var a models.Applicant
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, role, cv_path, extracted_text, created_at, updated_at
		 FROM applicants WHERE cv_path = ?`, cvPath,
	).Scan(&a.ID, &a.Name, &a.Role, &a.CVPath, &a.ExtractedText, &a.CreatedAt, &a.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: path %s", ErrNotFound, cvPath)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateApplicant updates an existing applicant.
func (s *SQLiteStorage) UpdateApplicant(ctx context.Context, a *models.Applicant) error {
	a.UpdatedAt = time.Now()

	result, err := s.db.ExecContext(ctx,
		`UPDATE applicants SET name = ?, role = ?, cv_path = ?, extracted_text = ?, updated_at = ?
		 WHERE id = ?`,
		a.Name, a.Role, a.CVPath, a.ExtractedText, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	return nil
}

// DeleteApplicant removes an applicant by ID.
func (s *SQLiteStorage) DeleteApplicant(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM applicants WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ListApplicants returns applicants with offset and limit, newest first.
func (s *SQLiteStorage) ListApplicants(ctx context.Context, offset, limit int) ([]*models.Applicant, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, cv_path, extracted_text, created_at, updated_at
		 FROM applicants ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []*models.Applicant
	for rows.Next() {
		var a models.Applicant
		if err := rows.Scan(&a.ID, &a.Name, &a.Role, &a.CVPath, &a.ExtractedText, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		applicants = append(applicants, &a)
	}
	return applicants, rows.Err()
}

// CountApplicants returns the total number of applicants.
func (s *SQLiteStorage) CountApplicants(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applicants`).Scan(&count)
	return count, err
}

// Iterate streams every applicant with non-empty extracted text as a
// CVDocument, in ID order. Rows are fetched lazily so the corpus never has
// to fit in memory at once.
func (s *SQLiteStorage) Iterate(ctx context.Context, fn func(doc models.CVDocument) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, extracted_text FROM applicants
		 WHERE extracted_text != '' ORDER BY id`,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var doc models.CVDocument
		if err := rows.Scan(&doc.ID, &doc.Text); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
