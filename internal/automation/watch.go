package automation

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle coalesces the burst of events an editor produces on save.
const watchSettle = 100 * time.Millisecond

// WatchScenario calls onChange with the freshly loaded scenario every time
// the file at path is written or replaced. The parent directory is watched
// so that editors saving via rename are seen. It blocks until ctx is done
// and returns nil in that case.
func (r *Runner) WatchScenario(ctx context.Context, path string, onChange func(*Scenario, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	r.Logger.Info("watching scenario", "path", absPath)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != filepath.Base(absPath) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			settle = time.After(watchSettle)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			r.Logger.Warn("watcher error", "error", err)
		case <-settle:
			settle = nil
			onChange(LoadScenario(absPath))
		}
	}
}
