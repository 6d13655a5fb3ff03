package crontab

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reugn/go-cronparser/cronparser"
	"github.com/reugn/go-cronparser/logger"
)

// reloadDelay coalesces the bursts of events produced by a single save.
const reloadDelay = 100 * time.Millisecond

// Watch parses the crontab file at path and passes the result to fn, then
// does so again every time the file content changes, until ctx is done.
// The options are applied to every schedule.
//
// The parent directory is watched, so that files replaced by editors are
// followed. fn is called from the goroutine running Watch.
func Watch(ctx context.Context, path string, fn func(*Crontab), opts ...cronparser.Option) error {
	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create crontab watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var lastHash uint64
	reload := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("Failed to read crontab.", "path", path, "error", err)
			return
		}
		hash := hashCode(data)
		if hash == lastHash {
			logger.Debug("Crontab unchanged.", "path", path)
			return
		}
		lastHash = hash
		tab := ParseString(string(data), opts...)
		logger.Info("Crontab loaded.", "path", path, "entries", len(tab.Entries),
			"errors", len(tab.Errors))
		fn(tab)
	}
	reload()

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path ||
				!event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Crontab watcher error.", "path", path, "error", err)
		case <-timer.C:
			reload()
		}
	}
}

// hashCode calculates and returns a hash code of the given content.
func hashCode(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}
