package provider

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/davidlugo/recetasworld/internal/logger"
)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long to wait after the last write event before
// firing a reload. Editors tend to write files in several bursts.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) { w.debounce = d }
}

// Watcher observes the catalog data file and invokes the reload
// callback when it changes. Reloading is idempotent, so firing twice
// for one save is harmless, just noisy; the debounce keeps it quiet.
type Watcher struct {
	path     string
	onChange func(context.Context)
	log      *logger.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher for the given file.
func NewWatcher(path string, onChange func(context.Context), log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		log:      log,
		debounce: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watch loop. Blocks until ctx is cancelled; intended to
// be called as a goroutine. Watches the parent directory because many
// editors replace the file on save, which drops inode-level watches.
func (w *Watcher) Run(ctx context.Context) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.log.Error("file watcher init failed, live reload disabled: %v", err)
		return
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		w.log.Error("watching %s failed, live reload disabled: %v", dir, err)
		return
	}
	w.log.Info("watching %s for changes", w.path)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("file watcher stopped")
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			w.log.Info("catalog file changed, reloading")
			w.onChange(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher: %v", err)
		}
	}
}
