package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/legcfg/internal/ctxlog"
	"github.com/vk/legcfg/internal/fsutil"
	"github.com/vk/legcfg/internal/hcl"
	"github.com/vk/legcfg/internal/urdf"
)

// watch reloads the catalog whenever a robot or URDF file under the
// configured paths changes. Bursts of events within ReloadDelay cause a
// single reload. It returns when ctx is cancelled.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := fsutil.WatchDirs(a.config.ConfigPaths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	logger.Info("Watching robot files for changes.", "dirs", len(dirs))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("Robot file changed.", "file", ev.Name, "op", ev.Op.String())
			pending = time.After(a.config.ReloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		case <-pending:
			pending = nil
			// Reload logs its own failure and keeps serving the old catalog.
			_ = a.Reload(ctx)
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	switch filepath.Ext(ev.Name) {
	case hcl.Extension, urdf.Extension:
		return true
	}
	return false
}
