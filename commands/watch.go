package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/semshacl/config"
)

// debounceWindow coalesces the event bursts editors produce on save.
const debounceWindow = 250 * time.Millisecond

// watchAndValidate re-runs validation whenever a shapes or data file
// changes. It blocks until the command context is cancelled.
func watchAndValidate(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, shapesPatterns, dataPatterns []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories so newly matching files are seen too.
	dirs := make(map[string]bool)
	for _, patterns := range [][]string{shapesPatterns, dataPatterns} {
		files, err := expandGlobs(patterns)
		if err != nil {
			return err
		}
		for _, file := range files {
			dirs[filepath.Dir(file)] = true
		}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", "dir", dir)
	}

	runOnce := func() {
		report, err := runValidate(cmd, cfg, logger, shapesPatterns, dataPatterns)
		switch {
		case err != nil:
			logger.Error("validation failed", "error", err)
		case report.Conforms:
			logger.Info("data conforms")
		default:
			logger.Info("data does not conform", "results", len(report.Results))
		}
	}

	runOnce()
	ctx := cmd.Context()

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			logger.Debug("file changed", "file", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceWindow, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)

		case <-pending:
			runOnce()
		}
	}
}
