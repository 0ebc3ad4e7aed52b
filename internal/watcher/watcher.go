// Package watcher keeps a published index snapshot warm while files change
// underneath it. A filesystem event on a markdown file re-scans just that
// file and hot-patches the live snapshot; nothing else is rebuilt.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"braindex/internal/graph"
	"braindex/internal/lastedit"
	"braindex/internal/link"
	"braindex/internal/parser"
	"braindex/internal/tasks"
	"braindex/internal/vault"
)

// Watcher monitors a notes root and patches the published index on change.
type Watcher struct {
	vault  *vault.Vault
	handle *graph.Handle
	tasks  *tasks.Store
	edits  *lastedit.Store

	debounceDelay time.Duration
	debug         bool
	now           func() time.Time

	fsWatcher *fsnotify.Watcher
	pending   map[string]time.Time
	mu        sync.Mutex

	onReindex func(path string, err error)
}

// Config holds configuration options for the Watcher.
type Config struct {
	Vault  *vault.Vault
	Handle *graph.Handle
	Tasks  *tasks.Store    // optional; task metadata attach on rescans
	Edits  *lastedit.Store // optional; stamped on every rescan
	Now    func() time.Time

	DebounceDelay time.Duration // Default: 100ms
	Debug         bool
	OnReindex     func(path string, err error) // Optional callback
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Vault == nil {
		return nil, fmt.Errorf("vault is required")
	}
	if cfg.Handle == nil {
		return nil, fmt.Errorf("index handle is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 100 * time.Millisecond
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Watcher{
		vault:         cfg.Vault,
		handle:        cfg.Handle,
		tasks:         cfg.Tasks,
		edits:         cfg.Edits,
		debounceDelay: debounce,
		debug:         cfg.Debug,
		now:           now,
		pending:       make(map[string]time.Time),
		onReindex:     cfg.OnReindex,
	}, nil
}

// Start begins watching the notes root for file changes.
// It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	if err := w.addWatchRecursive(w.vault.Root); err != nil {
		return fmt.Errorf("failed to watch notes root: %w", err)
	}

	w.logDebug("Watching notes root: %s", w.vault.Root)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// ReindexFile re-scans one file and patches it into the published snapshot.
// It can be called directly without starting the watcher.
func (w *Watcher) ReindexFile(path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.vault.Root, path)
	}
	if !strings.HasSuffix(path, ".md") {
		return nil
	}
	if w.shouldIgnore(path) {
		return nil
	}

	content, err := w.vault.Read(path)
	if err != nil {
		return err
	}

	note := parser.Extract(link.FromFilePath(path), content)

	if w.tasks != nil {
		if err := w.tasks.Attach(note.Tasks, w.now()); err != nil {
			return fmt.Errorf("failed to attach task metadata: %w", err)
		}
	}

	if !w.handle.Patch(note) {
		return fmt.Errorf("no index snapshot published yet")
	}

	if w.edits != nil {
		if err := w.edits.Stamp(note.Link.RawName, w.now()); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFromIndex drops a deleted file from the published snapshot.
func (w *Watcher) RemoveFromIndex(path string) error {
	ix := w.handle.Current()
	if ix == nil {
		return nil
	}
	ix.RemoveNote(link.FromFilePath(path).RawName)
	return nil
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !strings.HasSuffix(path, ".md") {
		// But watch new directories.
		if event.Op&fsnotify.Create != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.addWatchRecursive(path)
			}
		}
		return
	}

	if w.shouldIgnore(path) {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	switch {
	case event.Op&fsnotify.Write != 0, event.Op&fsnotify.Create != 0:
		w.scheduleReindex(path)
	case event.Op&fsnotify.Remove != 0, event.Op&fsnotify.Rename != 0:
		if err := w.RemoveFromIndex(path); err != nil {
			w.logDebug("Failed to remove from index: %v", err)
		}
	}
}

// scheduleReindex adds a file to the pending reindex queue with debouncing.
func (w *Watcher) scheduleReindex(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[path] = time.Now()
}

// processDebounced processes pending reindex requests after debounce delay.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending re-scans files whose debounce delay has elapsed.
func (w *Watcher) processPending() {
	w.mu.Lock()
	now := time.Now()
	ready := make([]string, 0)

	for path, scheduledAt := range w.pending {
		if now.Sub(scheduledAt) >= w.debounceDelay {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		err := w.ReindexFile(path)
		if w.onReindex != nil {
			w.onReindex(path, err)
		}
		if err != nil {
			w.logDebug("Failed to reindex %s: %v", path, err)
		} else {
			w.logDebug("Reindexed: %s", path)
		}
	}
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if w.shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path should be ignored.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.vault.Root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}

// shouldIgnoreDir returns true if the directory should not be watched.
func (w *Watcher) shouldIgnoreDir(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && path != w.vault.Root
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[braindex-watcher] "+format+"\n", args...)
	}
}
