package extract

import (
	"fmt"
	"os"

	"github.com/lu4p/cat"
)

// extractWithCat extracts text from .odt and .rtf files. cat dispatches on
// the file extension, so byte input goes through a temp file carrying the
// right suffix (see catBytes).
func extractWithCat(path string) (string, error) {
	txt, err := cat.File(path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}
	return txt, nil
}

// catBytes bridges ExtractBytes to the path-based cat API.
func catBytes(content []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "rirekisho-extract-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return extractWithCat(tmp.Name())
}
