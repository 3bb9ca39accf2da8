package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long the watched file must be quiet before a rerun.
const WatchDebounce = 200 * time.Millisecond

// Watch runs Generate, then again every time the document changes, until
// ctx is cancelled. Invalid intermediate versions are reported and skipped.
func Watch(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	logger := createLogger(opts)
	planner := newPlanner(logger)

	if isTerminal(opts.Stderr) {
		tui.PrintBanner(opts.Stderr, weave.Version)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so watch the directory.
	target, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.Path, err)
	}
	logger.Info("Starting Watcher", "path", target)

	run := func() {
		if err := generate(ctx, planner, opts, logger); err != nil {
			logger.Error("Generation failed", "err", err)
			printSystemMessage(opts.Stderr, "Invalid document: %v", err)
		}
		printSystemMessage(opts.Stderr, "Waiting for changes to '%s'...", opts.Path)
	}
	run()

	debounce := time.NewTimer(WatchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			logger.Debug("Change detected", "event", event.Op.String())
			debounce.Reset(WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)

		case <-debounce.C:
			printSystemMessage(opts.Stderr, "Change detected in '%s'.", opts.Path)
			run()
		}
	}
}
