package config

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a constants file whenever it changes on disk.
// Only valid files are published; broken edits are logged and skipped.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger
	updates  chan Constants
}

// NewWatcher creates a watcher for path. A nil logger discards output.
func NewWatcher(path string, logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{
		path:     abs,
		debounce: 150 * time.Millisecond,
		logger:   logger,
		updates:  make(chan Constants, 1),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers the latest valid constants. Only the newest value is kept
// if the consumer falls behind.
func (w *Watcher) Updates() <-chan Constants {
	return w.updates
}

// Run watches until ctx is cancelled, then closes the Updates channel. It must
// be called at most once. The parent directory is watched rather than the
// file so editors that save by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("config: watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Debug("watching constants", "path", w.path)

	// Saves usually arrive as several events; reload once they settle.
	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("constants watcher error", "err", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("ignoring constants change", "path", w.path, "err", err)
		return
	}

	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	w.logger.Info("constants reloaded", "path", w.path)
}
