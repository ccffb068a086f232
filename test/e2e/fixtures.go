// Package e2e provides end-to-end tests; this file builds minimal CV files of
// the supported binary formats.
package e2e

import (
	"archive/zip"
	"bytes"

	"github.com/xuri/excelize/v2"
)

// CVFileExtensions is the list of file extensions used in E2E file-based
// tests. The extractor also supports .pdf, .odt, and .rtf; those need external
// producers to generate meaningful fixtures and are covered by the extract
// package tests.
var CVFileExtensions = []string{".txt", ".md", ".docx", ".xlsx"}

// WriteMinimalCV returns the bytes of a minimal CV file of the given extension
// containing the given text. For plain types the content is the raw text; for
// binary types it is the assembled file.
func WriteMinimalCV(ext, text string) ([]byte, error) {
	switch ext {
	case ".txt", ".md":
		return []byte(text), nil
	case ".docx":
		return minimalDocx(text), nil
	case ".xlsx":
		return minimalXlsx(text), nil
	default:
		return []byte(text), nil
	}
}

func minimalDocx(text string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, _ := w.Create("word/document.xml")
	_, _ = fw.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`))
	_ = w.Close()
	return buf.Bytes()
}

func minimalXlsx(text string) []byte {
	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetCellValue("Sheet1", "A1", text)
	var buf bytes.Buffer
	_, _ = f.WriteTo(&buf)
	return buf.Bytes()
}
