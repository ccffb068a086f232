package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperjump/rirekisho/internal/extract"
	"github.com/hyperjump/rirekisho/internal/fileid"
	"github.com/hyperjump/rirekisho/internal/models"
	"github.com/hyperjump/rirekisho/internal/storage"
)

func newTestIndexer(t *testing.T) (*Indexer, *storage.SQLiteStorage) {
	t.Helper()
	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "applicants.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStorage: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return NewIndexer(st, extract.NewExtractor()), st
}

func TestIndexApplicantFromText(t *testing.T) {
	idx, st := newTestIndexer(t)
	ctx := context.Background()

	a, err := idx.IndexApplicant(ctx, &models.ApplicantInput{
		Name: "Taro Yamada",
		Role: "Backend Engineer",
		Text: "  Go   and\nJava developer  ",
	})
	if err != nil {
		t.Fatalf("IndexApplicant: %v", err)
	}
	if a.ID == "" {
		t.Error("expected generated ID")
	}
	if a.ExtractedText != "Go and Java developer" {
		t.Errorf("text = %q, want normalized", a.ExtractedText)
	}

	stored, err := st.GetApplicant(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetApplicant: %v", err)
	}
	if stored.Name != "Taro Yamada" || stored.Role != "Backend Engineer" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestIndexApplicantUpsert(t *testing.T) {
	idx, st := newTestIndexer(t)
	ctx := context.Background()

	if _, err := idx.IndexApplicant(ctx, &models.ApplicantInput{ID: "app-1", Text: "first version"}); err != nil {
		t.Fatalf("IndexApplicant: %v", err)
	}
	if _, err := idx.IndexApplicant(ctx, &models.ApplicantInput{ID: "app-1", Text: "second version"}); err != nil {
		t.Fatalf("IndexApplicant update: %v", err)
	}

	n, err := st.CountApplicants(ctx)
	if err != nil {
		t.Fatalf("CountApplicants: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1 (same ID must update, not duplicate)", n)
	}
	a, err := st.GetApplicant(ctx, "app-1")
	if err != nil {
		t.Fatalf("GetApplicant: %v", err)
	}
	if a.ExtractedText != "second version" {
		t.Errorf("text = %q, want second version", a.ExtractedText)
	}
}

func TestIndexApplicantRejectsEmptyInput(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	if _, err := idx.IndexApplicant(ctx, &models.ApplicantInput{Name: "no cv"}); err == nil {
		t.Error("expected error when neither text nor cv_path is set")
	}
	if _, err := idx.IndexApplicant(ctx, &models.ApplicantInput{Text: "   "}); err == nil {
		t.Error("expected error for whitespace-only text")
	}
}

func TestIndexFile(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "taro_yamada.txt")
	if err := os.WriteFile(path, []byte("Go developer, 5 years"), 0600); err != nil {
		t.Fatal(err)
	}

	a, err := idx.IndexFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	if a.Name != "taro yamada" {
		t.Errorf("Name = %q, want taro yamada", a.Name)
	}
	if a.ExtractedText != "Go developer, 5 years" {
		t.Errorf("text = %q", a.ExtractedText)
	}

	abs, _ := filepath.Abs(path)
	if a.ID != fileid.ApplicantID(abs) {
		t.Errorf("ID = %q, want path-derived ID", a.ID)
	}
}

func TestIndexFileReindexSamePath(t *testing.T) {
	idx, st := newTestIndexer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte("version one"), 0600); err != nil {
		t.Fatal(err)
	}
	first, err := idx.IndexFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}

	// Rewrite the file with a future mtime so the change is picked up.
	if err := os.WriteFile(path, []byte("version two"), 0600); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	second, err := idx.IndexFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("IndexFile reindex: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("IDs differ across reindex: %q vs %q", first.ID, second.ID)
	}
	n, _ := st.CountApplicants(ctx)
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
	a, _ := st.GetApplicant(ctx, second.ID)
	if a.ExtractedText != "version two" {
		t.Errorf("text = %q, want version two", a.ExtractedText)
	}
}

func TestIndexFileSkipsUnchanged(t *testing.T) {
	idx, st := newTestIndexer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte("stable content"), 0600); err != nil {
		t.Fatal(err)
	}
	// Backdate the file so the stored record stays newer.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	a, err := idx.IndexFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("IndexFile: %v", err)
	}
	firstUpdate := a.UpdatedAt

	again, err := idx.IndexFile(ctx, path, nil)
	if err != nil {
		t.Fatalf("IndexFile again: %v", err)
	}
	stored, _ := st.GetApplicant(ctx, again.ID)
	if !stored.UpdatedAt.Equal(firstUpdate) {
		t.Errorf("unchanged file was re-written: %v vs %v", stored.UpdatedAt, firstUpdate)
	}
}

func TestIndexFileExtensionFilter(t *testing.T) {
	idx, _ := newTestIndexer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.exe")
	if err := os.WriteFile(path, []byte("binary"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.IndexFile(ctx, path, []string{".txt", ".pdf"}); err == nil {
		t.Error("expected error for disallowed extension")
	}
}

func TestIndexDirectory(t *testing.T) {
	idx, st := newTestIndexer(t)
	ctx := context.Background()

	dir := t.TempDir()
	files := map[string]string{
		"a.txt":        "Go developer",
		"b.md":         "Java developer",
		"ignore.bin":   "not a cv",
		"sub/c.txt":    "Python developer",
		"sub/skip.exe": "nope",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	n, err := idx.IndexDirectory(ctx, dir, []string{".txt", ".md"})
	if err != nil {
		t.Fatalf("IndexDirectory: %v", err)
	}
	if n != 3 {
		t.Errorf("indexed %d files, want 3", n)
	}
	count, _ := st.CountApplicants(ctx)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestDeleteByPath(t *testing.T) {
	idx, st := newTestIndexer(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(path, []byte("Go developer"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := idx.IndexFile(ctx, path, nil); err != nil {
		t.Fatalf("IndexFile: %v", err)
	}

	if err := idx.DeleteByPath(ctx, path); err != nil {
		t.Fatalf("DeleteByPath: %v", err)
	}
	n, _ := st.CountApplicants(ctx)
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	// Deleting a never-indexed path is a no-op, not an error.
	if err := idx.DeleteByPath(ctx, filepath.Join(dir, "missing.txt")); err != nil {
		t.Errorf("DeleteByPath on unknown path: %v", err)
	}
}

func TestDeleteApplicantNotFound(t *testing.T) {
	idx, _ := newTestIndexer(t)
	if err := idx.DeleteApplicant(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteApplicant = %v, want ErrNotFound", err)
	}
}

func TestPreprocess(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  world  ", "hello world"},
		{"line1\nline2\r\nline3", "line1 line2 line3"},
		{"tabs\t\tand spaces", "tabs and spaces"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Preprocess(tt.in); got != tt.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
