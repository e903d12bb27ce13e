package identity

import (
	"context"
	"errors"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reports identity changes made by other processes (a `worktrack
// logout` in another terminal, for instance) until ctx is cancelled.
// fn receives the freshly loaded identity, or the zero Identity after a
// logout. The parent directory is watched because Save replaces the file
// with a rename.
func Watch(ctx context.Context, store Store, fn func(Identity)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path := store.Path()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			id, err := store.Load()
			if err != nil && !errors.Is(err, ErrNoIdentity) {
				log.Printf("identity watch: %v", err)
				continue
			}
			fn(id)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; continue watching.
			log.Printf("identity watch: %v", err)
		}
	}
}
