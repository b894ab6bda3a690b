package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

// watchFile calls run every time path is written or replaced, until ctx is
// canceled. Failures of run are reported and watching continues.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a temporary file over the original keep working.
func watchFile(ctx context.Context, path string, logger *log.Logger, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer w.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	printInfo("Watching %s (Ctrl-C to stop)", path)
	logger.Debug("watching", "dir", filepath.Dir(target))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name, _ := filepath.Abs(ev.Name)
			if name != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fire = time.After(watchDebounce)

		case <-fire:
			fire = nil
			logger.Debug("input changed", "file", path)
			if err := run(ctx); err != nil {
				ReportError(err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		}
	}
}
