package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 250 * time.Millisecond

// Watch runs fn once immediately, then again each time the file at
// path changes, until ctx is cancelled. The parent directory is
// watched rather than the file itself so atomic rename-into-place
// saves keep triggering. Errors from fn are logged, not fatal: a
// broken run should not stop the watch.
func Watch(ctx context.Context, path string, fn func(context.Context) error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	run := func() {
		if err := fn(ctx); err != nil {
			logger.Warn("sync run failed: %v", err)
		}
	}
	run()

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				logger.Debug("Source %s changed (%s)", abs, event.Op)
				pending = time.After(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)

		case <-pending:
			pending = nil
			run()

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
