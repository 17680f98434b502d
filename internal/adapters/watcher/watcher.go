// Package watcher implements file system watching for the change scheduler.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/ripplebuild/ripple/internal/core/domain"
	"github.com/ripplebuild/ripple/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	skipDirs  map[string]bool
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher. Directory names listed in
// skipDirs are never descended into; when empty, the defaults apply.
func NewWatcher(skipDirs []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if len(skipDirs) == 0 {
		skipDirs = domain.DefaultSkipDirectories
	}
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}

	return &Watcher{
		fsWatcher: fsw,
		skipDirs:  skip,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given root directory recursively. Directory
// names in skipDirs extend the set the watcher was constructed with, so
// configured exclusions and scan exclusions stay in step.
func (w *Watcher) Start(ctx context.Context, root string, skipDirs []string) error {
	for _, d := range skipDirs {
		w.skipDirs[d] = true
	}

	// Walk the directory tree and add all directories to the watcher.
	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	// Start processing events in a goroutine.
	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Continue walking even if there's an error accessing a directory.
				return nil //nolint:nilerr // Skip problematic directories instead of aborting.
			}
			if d.IsDir() {
				if w.shouldSkip(d.Name()) {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// shouldSkip returns true if the directory should be skipped.
func (w *Watcher) shouldSkip(name string) bool {
	return w.skipDirs[name]
}

// processEvents converts raw fsnotify events into ports.WatchEvent values.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := w.convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

			// If a new directory was created, add it to the watcher.
			if event.Op&fsnotify.Create == fsnotify.Create && watchEvent.Operation == ports.OpCreate {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldSkip(info.Name()) {
					for dir := range w.watchRecursively(event.Name) {
						_ = w.fsWatcher.Add(dir)
					}
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Log error to stderr and continue processing.
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func (w *Watcher) convertEvent(event fsnotify.Event) *ports.WatchEvent {
	path := event.Name

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite}
	case event.Op&fsnotify.Create == fsnotify.Create:
		return &ports.WatchEvent{Path: path, Operation: ports.OpCreate}
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		return &ports.WatchEvent{Path: path, Operation: ports.OpRemove}
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		return &ports.WatchEvent{Path: path, Operation: ports.OpRename}
	default:
		return nil
	}
}
