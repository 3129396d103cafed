package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of filesystem events (a renewal usually
// rewrites the .pem, .key and .json together).
const DefaultDebounce = 500 * time.Millisecond

// Watch builds a report for dir immediately and again after every change
// to the directory, calling onReport each time. It runs until ctx is
// cancelled; a build interrupted by cancellation is never passed to
// onReport.
//
// A rebuild is triggered by any create/write/remove/rename in dir; events
// arriving within debounce of each other produce one rebuild.
func (b *Builder) Watch(ctx context.Context, dir string, debounce time.Duration, onReport func(Report)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	rebuild := func() {
		report, err := b.Build(ctx, dir)
		if err != nil {
			return
		}
		onReport(report)
	}

	b.log().Info("watching cert directory", "dir", dir)
	rebuild()

	// fire is nil (blocks forever) until an event arms it.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			b.log().Debug("cert directory changed", "path", event.Name, "op", event.Op.String())
			fire = time.After(debounce)

		case <-fire:
			fire = nil
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.log().Error("cert directory watcher error", "dir", dir, "err", err)
		}
	}
}
