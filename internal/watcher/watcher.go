// Package watcher watches CV inbox directories with fsnotify and feeds new,
// changed, or removed CV files to the caller. Rapid write bursts (editors,
// network copies) are debounced per file.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches inbox directories and invokes callbacks on CV file changes.
type Watcher struct {
	inboxes    []string
	extensions []string
	recursive  bool
	onCV       func(path string)
	onRemoved  func(path string)
	debounce   time.Duration
	fsw        *fsnotify.Watcher
	mu         sync.Mutex
	pending    map[string]*time.Timer
	watched    map[string][]string // inbox root -> dirs added to fsnotify
	done       chan struct{}
	started    bool
	stopOnce   sync.Once
	logger     *zap.Logger // optional; when set, logs debug events
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for debug output (inbox changes, file events, etc.).
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// NewWatcher creates a watcher. onCV is called when a CV file appears or
// changes, onRemoved when one disappears. inboxes are the initial directories
// to watch; extensions filter which files count as CVs (empty = all).
func NewWatcher(inboxes []string, extensions []string, recursive bool, onCV, onRemoved func(path string), opts ...Option) *Watcher {
	w := &Watcher{
		inboxes:    inboxes,
		extensions: extensions,
		recursive:  recursive,
		onCV:       onCV,
		onRemoved:  onRemoved,
		debounce:   defaultDebounce,
		pending:    make(map[string]*time.Timer),
		watched:    make(map[string][]string),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start starts the watcher. It runs until ctx is cancelled or Stop is called.
// Missing inbox directories are created.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.fsw = fsw
	w.started = true
	if w.logger != nil {
		w.logger.Debug("watcher starting", zap.Strings("inboxes", w.inboxes), zap.Strings("extensions", w.extensions), zap.Bool("recursive", w.recursive))
	}
	for _, inbox := range w.inboxes {
		if err := w.addInboxLocked(inbox); err != nil {
			_ = w.fsw.Close()
			w.fsw = nil
			w.started = false
			w.mu.Unlock()
			return err
		}
	}
	w.mu.Unlock()
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if err != nil && w.logger != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	path := ev.Name
	if !w.underInbox(path) {
		return
	}
	if w.logger != nil {
		w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", path))
	}
	switch {
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		// A directory moved or created inside the inbox (e.g. a batch of CVs
		// copied in as a folder).
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			w.handleNewDirectory(path)
			return
		}
		if w.matchExtension(path) {
			w.debounceCV(path)
		}
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		w.cancelPending(path)
		if w.matchExtension(path) {
			if w.onRemoved != nil {
				w.onRemoved(path)
			}
		}
	}
}

// handleNewDirectory adds a newly appeared directory to the watch list and
// feeds every CV file inside it to onCV.
func (w *Watcher) handleNewDirectory(dirPath string) {
	if w.logger != nil {
		w.logger.Debug("watcher handling new directory", zap.String("path", dirPath))
	}

	w.mu.Lock()
	recursive := w.recursive
	fsw := w.fsw
	w.mu.Unlock()

	if fsw == nil {
		return
	}

	if recursive {
		filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if err := fsw.Add(path); err != nil {
					if w.logger != nil {
						w.logger.Debug("watcher failed to add directory", zap.String("path", path), zap.Error(err))
					}
				} else if w.logger != nil {
					w.logger.Debug("watcher added new directory", zap.String("path", path))
				}
			}
			return nil
		})
	} else {
		if err := fsw.Add(dirPath); err != nil {
			if w.logger != nil {
				w.logger.Debug("watcher failed to add directory", zap.String("path", dirPath), zap.Error(err))
			}
		}
	}

	w.syncDirectory(dirPath)
}

func (w *Watcher) underInbox(path string) bool {
	w.mu.Lock()
	inboxes := append([]string(nil), w.inboxes...)
	w.mu.Unlock()
	clean := filepath.Clean(path)
	for _, inbox := range inboxes {
		inboxClean := filepath.Clean(inbox)
		if inboxClean == clean || inDir(inboxClean, clean) {
			return true
		}
	}
	return false
}

func inDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) matchExtension(path string) bool {
	return matchExtension(path, w.extensions)
}

func matchExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	if len(extensions) == 0 {
		return true
	}
	for _, e := range extensions {
		eNorm := strings.TrimPrefix(strings.ToLower(e), ".")
		extNorm := strings.TrimPrefix(strings.ToLower(ext), ".")
		if eNorm == extNorm {
			return true
		}
	}
	return false
}

func (w *Watcher) debounceCV(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	t := time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		logger := w.logger
		w.mu.Unlock()
		if logger != nil {
			logger.Debug("watcher indexing cv (debounced)", zap.String("path", path))
		}
		if w.onCV != nil {
			w.onCV(path)
		}
	})
	w.pending[path] = t
}

func (w *Watcher) cancelPending(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

// AddInbox adds an inbox directory to watch and optionally syncs existing CVs.
func (w *Watcher) AddInbox(dir string, syncExisting bool) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == nil {
		return nil
	}
	for _, r := range w.inboxes {
		if filepath.Clean(r) == filepath.Clean(abs) {
			return nil
		}
	}
	if err := w.addInboxLocked(abs); err != nil {
		return err
	}
	w.inboxes = append(w.inboxes, abs)
	if w.logger != nil {
		w.logger.Debug("watcher inbox added", zap.String("path", abs), zap.Bool("sync_existing", syncExisting))
	}
	if syncExisting && w.onCV != nil {
		go w.syncDirectory(abs)
	}
	return nil
}

func (w *Watcher) addInboxLocked(inbox string) error {
	inbox = filepath.Clean(inbox)
	if _, err := os.Stat(inbox); err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(inbox, 0755); err != nil {
				return err
			}
		} else {
			return err
		}
	}
	var paths []string
	add := func(path string, d fs.DirEntry) error {
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}
	if w.recursive {
		err := filepath.WalkDir(inbox, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			return add(path, d)
		})
		if err != nil {
			return err
		}
	} else {
		if err := w.fsw.Add(inbox); err != nil {
			return err
		}
		paths = append(paths, inbox)
	}
	w.watched[inbox] = paths
	return nil
}

func (w *Watcher) syncDirectory(dir string) {
	w.mu.Lock()
	exts := append([]string(nil), w.extensions...)
	onCV := w.onCV
	logger := w.logger
	w.mu.Unlock()
	if logger != nil {
		logger.Debug("watcher syncing directory", zap.String("dir", dir))
	}
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if matchExtension(path, exts) {
			if logger != nil {
				logger.Debug("watcher sync indexing cv", zap.String("path", path))
			}
			if onCV != nil {
				onCV(path)
			}
		}
		return nil
	})
}

// RemoveInbox stops watching the given inbox. It does not remove indexed applicants.
func (w *Watcher) RemoveInbox(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	abs = filepath.Clean(abs)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fsw == nil {
		return nil
	}
	idx := -1
	for i, r := range w.inboxes {
		if filepath.Clean(r) == abs {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	for _, p := range w.watched[abs] {
		_ = w.fsw.Remove(p)
	}
	delete(w.watched, abs)
	w.inboxes = append(w.inboxes[:idx], w.inboxes[idx+1:]...)
	if w.logger != nil {
		w.logger.Debug("watcher inbox removed", zap.String("path", abs))
	}
	return nil
}

// Inboxes returns a copy of the currently watched inbox directories.
func (w *Watcher) Inboxes() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.inboxes...)
}

// SyncExistingFiles feeds all CV files already present in each watched inbox
// to onCV. Call this after Start() so CVs that arrived while the service was
// down still get indexed.
func (w *Watcher) SyncExistingFiles() {
	w.mu.Lock()
	inboxes := append([]string(nil), w.inboxes...)
	w.mu.Unlock()
	if w.logger != nil {
		w.logger.Debug("watcher syncing existing files", zap.Strings("inboxes", inboxes))
	}
	for _, inbox := range inboxes {
		w.syncDirectory(inbox)
	}
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.fsw == nil {
		w.mu.Unlock()
		return
	}
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	_ = w.fsw.Close()
	w.fsw = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
