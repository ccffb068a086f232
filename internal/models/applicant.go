// Package models defines core data structures for applicants, search requests, and results.
package models

import "time"

// Applicant represents a stored applicant with extracted CV text.
type Applicant struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Role          string    `json:"role" db:"role"`
	CVPath        string    `json:"cv_path,omitempty" db:"cv_path"`
	ExtractedText string    `json:"extracted_text,omitempty" db:"extracted_text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ApplicantInput is the input for creating or updating an applicant.
// Either CVPath (a file to extract) or Text (already-extracted content) must be set.
type ApplicantInput struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	CVPath string `json:"cv_path,omitempty"`
	Text   string `json:"text,omitempty"`
}

// CVDocument is one unit of searchable text handed to the matching engine:
// an applicant identifier and the full extracted CV text. The engine never
// mutates or retains it beyond a single search call.
type CVDocument struct {
	ID   string
	Text string
}
