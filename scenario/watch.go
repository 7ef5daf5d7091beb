package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before
// calling onChange.
const DefaultDebounce = 100 * time.Millisecond

type watchConfig struct {
	debounce time.Duration
	logger   *slog.Logger
}

// WatchOption configures Watch.
type WatchOption func(*watchConfig)

// WithDebounce sets the quiet period before onChange runs.
func WithDebounce(d time.Duration) WatchOption {
	return func(c *watchConfig) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(l *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Watch calls onChange each time the file at path is written, created or
// renamed, debounced so a burst of events triggers one call. The parent
// directory is watched so editors that replace the file are handled.
//
// onChange runs on the calling goroutine; an error from it is logged and
// watching continues. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func() error, opts ...WatchOption) error {
	cfg := watchConfig{debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve scenario path %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %q: %w", filepath.Dir(target), err)
	}
	cfg.logger.Info("watching scenario file", "path", target, "debounce_ms", cfg.debounce.Milliseconds())

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			cfg.logger.Info("scenario watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevant(event, target) {
				continue
			}
			cfg.logger.Debug("scenario file event", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.AfterFunc(cfg.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(cfg.debounce)
			}

		case <-fire:
			if err := onChange(); err != nil {
				cfg.logger.Error("scenario reload failed", "path", target, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			cfg.logger.Warn("scenario watcher error", "error", err)
		}
	}
}

func relevant(event fsnotify.Event, target string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}
