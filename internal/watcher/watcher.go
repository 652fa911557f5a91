// Package watcher triggers rescans when files under a repository change,
// coalescing bursts of filesystem events behind a debounce interval.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period required before a change fires.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a directory tree recursively and invokes a callback
// once per settled burst of changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	root     string
	debounce time.Duration
}

// New creates a watcher rooted at root. A non-positive debounce falls
// back to DefaultDebounce.
func New(root string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, root: root, debounce: debounce}
	if err := w.addRecursively(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, invoking callback after each debounced burst of changes,
// until the context is cancelled.
func (w *Watcher) Run(ctx context.Context, callback func()) error {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			// New directories need watches of their own.
			if event.Has(fsnotify.Create) {
				_ = w.addRecursively(event.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Warning: watch error: %v", err)

		case <-fire:
			timer = nil
			fire = nil
			callback()
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursively(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may already be gone; watching is best effort.
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(p); err != nil {
				log.Printf("Warning: could not watch %s: %v", p, err)
			}
		}
		return nil
	})
}
