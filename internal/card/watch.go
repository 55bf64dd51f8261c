package card

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// Card each time the file is written, replaced, or created. It runs until
// ctx is cancelled.
//
// The parent directory is watched rather than the file, so atomic saves
// (write a temp file, rename it over path) keep being seen and a file that
// does not exist yet is picked up once it appears. Only a missing directory
// is an error.
//
// If a reload fails (invalid YAML, missing donuts), the error is logged and
// onChange is not called, so the previous card stays active.
func Watch(ctx context.Context, path string, onChange func(*Card)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("card: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			// A rename onto path arrives as Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			c, err := Load(path)
			if err != nil {
				slog.Error("card: reload failed, keeping previous card", "path", path, "err", err)
				continue
			}

			slog.Info("card: reloaded", "path", path, "donuts", len(c.Donuts))
			onChange(c)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("card: watcher error", "err", err)
		}
	}
}
