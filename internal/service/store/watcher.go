package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kapu/senate-directory-go/internal/constants"
	"go.uber.org/zap"
)

// Watcher reloads the store whenever the local dataset file changes.
type Watcher struct {
	store    *Store
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

func NewWatcher(store *Store, path string, logger *zap.Logger) *Watcher {
	return &Watcher{
		store:    store,
		path:     filepath.Clean(path),
		debounce: constants.WatchConfig.Debounce,
		logger:   logger,
	}
}

// Run watches until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are noticed too.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.logger.Info("Watching dataset file", zap.String("path", w.path))

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Dataset watcher error", zap.Error(err))

		case <-timerC:
			timerC = nil
			w.logger.Info("Dataset file changed, reloading", zap.String("path", w.path))
			if _, err := w.store.Reload(ctx); err != nil {
				w.logger.Warn("Reload after file change failed, keeping previous snapshot", zap.Error(err))
			}
		}
	}
}
