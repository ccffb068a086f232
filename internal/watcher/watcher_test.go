package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestWatcher_AddRemoveInboxes(t *testing.T) {
	dir := t.TempDir()
	var indexed, removed []string
	var mu sync.Mutex
	onCV := func(path string) {
		mu.Lock()
		indexed = append(indexed, path)
		mu.Unlock()
	}
	onRemoved := func(path string) {
		mu.Lock()
		removed = append(removed, path)
		mu.Unlock()
	}

	w := NewWatcher(nil, []string{".pdf"}, true, onCV, onRemoved)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := w.AddInbox(dir, false); err != nil {
		t.Fatal(err)
	}
	inboxes := w.Inboxes()
	if len(inboxes) != 1 || filepath.Clean(inboxes[0]) != filepath.Clean(dir) {
		t.Errorf("Inboxes() = %v", inboxes)
	}

	if err := w.RemoveInbox(dir); err != nil {
		t.Fatal(err)
	}
	if len(w.Inboxes()) != 0 {
		t.Errorf("after remove: %v", w.Inboxes())
	}
	_ = indexed
	_ = removed
}

func TestWatcher_DebounceAndExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "batch")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	var indexed []string
	var mu sync.Mutex
	onCV := func(path string) {
		mu.Lock()
		indexed = append(indexed, path)
		mu.Unlock()
	}
	w := NewWatcher([]string{dir}, []string{".txt"}, true, onCV, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	cvPath := filepath.Join(sub, "taro.txt")
	if err := os.WriteFile(cvPath, []byte("Go developer"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(600 * time.Millisecond)
	mu.Lock()
	count := len(indexed)
	mu.Unlock()
	if count < 1 {
		t.Errorf("expected at least one cv callback, got %d", count)
	}
}

func TestMatchExtension(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"/inbox/cv.pdf", []string{".pdf"}, true},
		{"/inbox/cv.PDF", []string{".pdf"}, true},
		{"/inbox/cv.docx", []string{".pdf"}, false},
		{"/inbox/cv", nil, true},
		{"/inbox/cv", []string{}, true},
	}
	for _, tt := range tests {
		got := matchExtension(tt.path, tt.extensions)
		if got != tt.want {
			t.Errorf("matchExtension(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}

func TestInDir(t *testing.T) {
	tests := []struct {
		dir  string
		path string
		want bool
	}{
		{"/tmp/a", "/tmp/a", true},
		{"/tmp/a", "/tmp/a/b.pdf", true},
		{"/tmp/a", "/tmp/b", false},
		{"/tmp/a", "/tmp/a/../b", false},
	}
	for _, tt := range tests {
		got := inDir(tt.dir, tt.path)
		if got != tt.want {
			t.Errorf("inDir(%q, %q) = %v, want %v", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestWatcher_SyncExistingFiles_indexesMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "taro.txt"), []byte("Go"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignore.xyz"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	var indexed []string
	var mu sync.Mutex
	onCV := func(path string) {
		mu.Lock()
		indexed = append(indexed, path)
		mu.Unlock()
	}
	w := NewWatcher([]string{dir}, []string{".txt"}, true, onCV, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	w.SyncExistingFiles()

	mu.Lock()
	defer mu.Unlock()
	if len(indexed) != 1 || !strings.HasSuffix(indexed[0], "taro.txt") {
		t.Errorf("expected one indexed cv taro.txt, got %v", indexed)
	}
}

func TestWatcher_Start_createsMissingInbox(t *testing.T) {
	base := t.TempDir()
	inbox := filepath.Join(base, "inbox", "cv")
	_ = os.RemoveAll(filepath.Join(base, "inbox"))

	w := NewWatcher([]string{inbox}, []string{".pdf"}, true, nil, nil)
	// Use Background so we don't cancel; avoid race with run() reading w.fsw after Stop() nils it.
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(inbox); err != nil {
		t.Errorf("inbox should exist after Start: %v", err)
	}
}

func TestWatcher_NewDirectory_indexesCVsInside(t *testing.T) {
	dir := t.TempDir()

	var indexed []string
	var mu sync.Mutex
	onCV := func(path string) {
		mu.Lock()
		indexed = append(indexed, path)
		mu.Unlock()
	}

	w := NewWatcher([]string{dir}, []string{".txt", ".md"}, true, onCV, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	// Simulate copying a folder of CVs into the inbox.
	batch := filepath.Join(dir, "march-applicants")
	if err := os.MkdirAll(batch, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(batch, "taro.txt"), []byte("Go"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(batch, "hanako.md"), []byte("Java"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(batch, "ignore.xyz"), []byte("skip"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(800 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	txtFound, mdFound := false, false
	for _, p := range indexed {
		if strings.HasSuffix(p, "taro.txt") {
			txtFound = true
		}
		if strings.HasSuffix(p, "hanako.md") {
			mdFound = true
		}
		if strings.HasSuffix(p, "ignore.xyz") {
			t.Errorf("ignore.xyz should not be indexed")
		}
	}
	if !txtFound || !mdFound {
		t.Errorf("expected taro.txt and hanako.md to be indexed, got %v", indexed)
	}
}

func TestWatcher_NewDirectory_recursiveSubfolders(t *testing.T) {
	dir := t.TempDir()

	var indexed []string
	var mu sync.Mutex
	onCV := func(path string) {
		mu.Lock()
		indexed = append(indexed, path)
		mu.Unlock()
	}

	w := NewWatcher([]string{dir}, []string{".txt"}, true, onCV, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	nested := filepath.Join(dir, "agency", "referrals")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "deep.txt"), []byte("deep cv"), 0600); err != nil {
		t.Fatal(err)
	}

	time.Sleep(800 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	found := false
	for _, p := range indexed {
		if strings.HasSuffix(p, "deep.txt") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected deep.txt to be indexed, got %v", indexed)
	}
}
