package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aicsync-labs/aicsync/internal/artifact"
	"github.com/fsnotify/fsnotify"
)

// debounceWindow batches bursts of file events into one sync run.
const debounceWindow = 500 * time.Millisecond

// Watch runs Sync once, then re-runs it whenever the source system's
// artifact directories change, debounced. onRun receives each run's
// outcome. Watch returns when ctx is canceled or the watcher fails.
func (e *Engine) Watch(ctx context.Context, opts Options, onRun func(*JobResult, error)) error {
	src, err := e.registry.Get(opts.Source)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch every type root plus its immediate subdirectories (skill
	// directories are units of their own). fsnotify is not recursive;
	// new subdirectories are added as create events arrive.
	for _, t := range artifact.AllTypes() {
		root := src.ArtifactRoot(e.root, t)
		if root == "" {
			continue
		}
		if err := addWatchTree(watcher, root); err != nil {
			return err
		}
	}

	onRun(e.Sync(opts))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", opts.Source, err)

		case <-timerC:
			timer = nil
			timerC = nil
			onRun(e.Sync(opts))
		}
	}
}

func addWatchTree(watcher *fsnotify.Watcher, root string) error {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	if err := watcher.Add(root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("reading %s: %w", root, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(root, entry.Name())); err != nil {
				return fmt.Errorf("watching %s: %w", filepath.Join(root, entry.Name()), err)
			}
		}
	}
	return nil
}
