// Package watcher ingests call transcripts as they land in a directory.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/repdesk/internal/core/domain"
	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
	"github.com/custodia-labs/repdesk/internal/logger"
)

// DefaultDebounce is how long a file must be quiet before it is ingested.
const DefaultDebounce = 250 * time.Millisecond

var defaultExtensions = []string{".txt", ".log", ".transcript"}

// Event is the outcome of ingesting one transcript file.
type Event struct {
	// Path is the transcript file.
	Path string

	// Report summarises accepted and rejected records.
	Report domain.IngestReport

	// Err is set when the file could not be ingested at all.
	Err error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a changed file is ingested.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithExtensions restricts ingestion to files with these extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = make(map[string]bool, len(exts))
		for _, e := range exts {
			w.exts[strings.ToLower(e)] = true
		}
	}
}

// WithExisting ingests transcripts already in the directory when watching starts.
func WithExisting() Option {
	return func(w *Watcher) { w.existing = true }
}

// Watcher feeds transcript files from a directory into ingestion.
// Files are re-ingested whenever they change; records already stored
// come back as duplicate rejections.
type Watcher struct {
	dir      string
	ingest   driving.IngestService
	debounce time.Duration
	exts     map[string]bool
	existing bool

	mu     sync.Mutex
	closed bool
	fsw    *fsnotify.Watcher
}

// New creates a watcher for dir.
func New(dir string, ingest driving.IngestService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		ingest:   ingest,
		debounce: DefaultDebounce,
	}
	WithExtensions(defaultExtensions...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching and returns a channel of ingestion events.
// The channel is closed when ctx is cancelled or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New("watcher closed")
	}
	if w.fsw != nil {
		return nil, errors.New("watcher already running")
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.fsw = fsw

	var initial []string
	if w.existing {
		initial = w.existingFiles()
	}

	events := make(chan Event)
	go w.loop(ctx, fsw, initial, events)

	logger.Debug("Watching %s for transcripts", w.dir)
	return events, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, initial []string, out chan<- Event) {
	defer close(out)

	ready := make(chan string)
	done := make(chan struct{})
	defer close(done)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	schedule := func(path string) {
		if t, ok := timers[path]; ok {
			t.Stop()
		}
		timers[path] = time.AfterFunc(w.debounce, func() {
			select {
			case ready <- path:
			case <-done:
			}
		})
	}

	for _, path := range initial {
		schedule(path)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if path, ok := w.handleFsEvent(ev); ok {
				schedule(path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Transcript watcher error: %v", err)

		case path := <-ready:
			delete(timers, path)
			report, err := w.ingest.IngestTranscript(ctx, path)
			if err != nil {
				logger.Warn("Ingest %s failed: %v", path, err)
			}
			select {
			case out <- Event{Path: path, Report: report, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handleFsEvent returns the file to ingest for an event, if any.
// Only creates and writes of visible regular files with a known
// extension are of interest.
func (w *Watcher) handleFsEvent(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	if !w.accepts(ev.Name) {
		return "", false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return ev.Name, true
}

func (w *Watcher) accepts(path string) bool {
	if isHidden(path) {
		return false
	}
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

func (w *Watcher) existingFiles() []string {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("Read %s: %v", w.dir, err)
		return nil
	}
	var files []string
	for _, e := range entries {
		path := filepath.Join(w.dir, e.Name())
		if e.Type().IsRegular() && w.accepts(path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files
}

// isHidden reports whether the base name starts with a dot.
// "." and ".." are not hidden.
func isHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}
