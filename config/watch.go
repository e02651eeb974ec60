package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch watches the given config file and invokes onChange with the freshly
// loaded config each time it is rewritten. Parse or validation failures are
// logged and the previous config stays in effect. Watch blocks until ctx is
// cancelled; run it in its own goroutine.
//
// The parent directory is watched rather than the file itself so that
// editors that replace the file (write-to-temp + rename) keep triggering.
func Watch(ctx context.Context, path string, logger *logrus.Entry, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			cfg, loadErr := Load(path)
			if loadErr != nil {
				logger.WithError(loadErr).Warn("Ignoring config change that failed to load")
				continue
			}
			logger.WithField("path", path).Info("Configuration reloaded")
			onChange(cfg)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WithError(watchErr).Warn("Config watcher error")
		}
	}
}
