package tenant

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// registryDebounce coalesces the bursts of events editors emit on save.
const registryDebounce = 200 * time.Millisecond

// WatchRegistry reloads the registry whenever tenants.json changes and calls
// onChange after each successful reload. It blocks until ctx is done.
func (d *Detector) WatchRegistry(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create registry watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file rather than write it.
	if err := watcher.Add(d.baseDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", d.baseDir, err)
	}
	d.logger.Tenant().Info("Watching tenant registry", "dir", d.baseDir)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != registryFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(registryDebounce)
		case <-pending:
			pending = nil
			if err := d.RefreshRegistry(); err != nil {
				d.logger.Tenant().Error("Registry reload failed", "error", err)
				continue
			}
			d.logger.Tenant().Info("Tenant registry reloaded", "tenants", len(d.TenantIDs()))
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Tenant().Warn("Registry watcher error", "error", err)
		}
	}
}
