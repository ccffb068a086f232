package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Most CVs arrive as Word documents. DOCX is a zip of OOXML parts and the
// searchable text lives in <w:t> runs inside the main body part. lu4p/cat's
// DOCX path only matches attribute-free <w:p> tags, so real Word exports come
// back empty through it; the runs are pulled here instead.

const (
	docxFallbackBodyPart = "word/document.xml"
	docxContentTypesPart = "[Content_Types].xml"
	docxBodyContentType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

var (
	docxTextRun = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
	// Word and LibreOffice disagree on attribute order inside Override.
	docxBodyOverrides = []*regexp.Regexp{
		regexp.MustCompile(`<Override[^>]+PartName="([^"]+)"[^>]+ContentType="` + regexp.QuoteMeta(docxBodyContentType) + `"`),
		regexp.MustCompile(`<Override[^>]+ContentType="` + regexp.QuoteMeta(docxBodyContentType) + `"[^>]+PartName="([^"]+)"`),
	}
)

// extractDOCX pulls the visible text out of a .docx CV. Text runs are joined
// with single spaces so keywords split across runs still sit on word
// boundaries.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	body, err := readZipPart(zr, docxBodyPart(zr))
	if err != nil {
		return "", fmt.Errorf("extract DOCX: %w", err)
	}

	runs := docxTextRun.FindAllSubmatch(body, -1)
	if len(runs) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for i, run := range runs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(bytes.TrimSpace(run[1]))
	}
	return strings.TrimSpace(sb.String()), nil
}

// docxBodyPart resolves the main body part from [Content_Types].xml.
// Exporters are free to rename it; word/document.xml is the fallback when the
// package carries no content-types part or no matching override.
func docxBodyPart(zr *zip.Reader) string {
	types, err := readZipPart(zr, docxContentTypesPart)
	if err != nil {
		return docxFallbackBodyPart
	}
	for _, re := range docxBodyOverrides {
		if m := re.FindSubmatch(types); len(m) > 1 {
			return strings.TrimPrefix(string(m[1]), "/")
		}
	}
	return docxFallbackBodyPart
}

func readZipPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found", name)
}
