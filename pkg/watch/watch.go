// Package watch monitors the dataset file for external writes so the
// roster and search index follow changes made outside the update API.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 500 * time.Millisecond

type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	logger   *zap.SugaredLogger
}

func New(path string, logger *zap.SugaredLogger, onChange func()) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create dataset watcher: %w", err)
	}

	return &Watcher{
		watcher:  w,
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start watches the dataset directory until the context is cancelled.
// Change bursts are debounced so a rewrite triggers a single reload.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("unable to watch dataset directory: %w", err)
	}

	go func() {
		var debounce *time.Timer
		defer func() {
			if debounce != nil {
				debounce.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				w.logger.Debugf("Dataset change detected: %s", event.Name)
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, w.onChange)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Errorf("Dataset watcher error: %s", err)
			}
		}
	}()

	return nil
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
