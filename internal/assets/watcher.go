package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports when a mesh file changes on disk. It watches the parent
// directory, since editors and exporters often replace files by rename.
type Watcher struct {
	path     string
	debounce time.Duration
	watch    *fsnotify.Watcher
	changes  chan string
	log      *zap.Logger
}

func NewWatcher(path string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{
		path:     abs,
		debounce: debounce,
		watch:    fw,
		changes:  make(chan string, 1),
		log:      log,
	}, nil
}

// Changes delivers the file path once per settled burst of writes.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) Path() string {
	return w.path
}

// Run forwards debounced changes until ctx is done or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watch.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("mesh file event", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watch.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", zap.Error(err))
		case <-timer.C:
			select {
			case w.changes <- w.path:
			default: // a change is already pending
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.watch.Close()
}
