package reference

import (
	"context"
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the catalog whenever the reference spreadsheet changes.
// A reload that fails leaves the previous set in place. Blocks until the
// context is cancelled or the watcher fails.
func Watch(ctx context.Context, path string, catalog *Catalog) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	log.Printf("Watching reference file %s for changes...", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			set, err := LoadFile(path)
			if err != nil {
				log.Printf("Reference reload failed, keeping previous set: %v", err)
				continue
			}
			catalog.Replace(set)
			log.Printf("Reference data reloaded: %d locations", set.Len())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
