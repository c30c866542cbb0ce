package engine

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is the quiet period after a burst of file events
// before the check pipeline re-runs.
const watchDebounce = 500 * time.Millisecond

// Watch re-runs onChange whenever a Python file under one of the
// paths changes. It blocks until ctx is cancelled. onChange is called
// once before watching starts so the initial state is reported.
func (e *Engine) Watch(ctx context.Context, paths []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range paths {
		if err := addDirsRecursively(watcher, root); err != nil {
			return err
		}
	}

	onChange()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// New directories must be added to the watch set so files
			// created inside them are seen.
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursively(watcher, event.Name); addErr != nil {
						log.Printf("warning: cannot watch %s: %v", event.Name, addErr)
					}
				}
			}

			if !strings.HasSuffix(event.Name, ".py") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("warning: watch error: %v", err)

		case <-fire:
			onChange()
		}
	}
}

// addDirsRecursively registers root and every subdirectory with the
// watcher, skipping hidden directories.
func addDirsRecursively(watcher *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(root))
	}

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
