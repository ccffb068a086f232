// Package fileid provides a deterministic applicant ID from a CV file path.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const prefix = "cv:"

// ApplicantID returns a stable applicant ID for the given absolute CV path.
// Same path always yields the same ID, so re-indexing a changed file updates
// the existing applicant instead of creating a duplicate.
func ApplicantID(absolutePath string) string {
	normalized := filepath.Clean(absolutePath)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:])
}
