package dash

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/midbel/titledash/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher refreshes the dashboard when the workbook it reads from changes on
// disk. Bursts of events are collapsed into a single refresh.
type Watcher struct {
	path     string
	dash     *Dashboard
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.SugaredLogger

	mu    sync.Mutex
	timer *time.Timer
}

func NewWatcher(path string, d *Dashboard) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	// spreadsheet tools replace the file instead of writing it
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watch %s", path)
	}
	return &Watcher{
		path:     filepath.Clean(path),
		dash:     d,
		watcher:  w,
		debounce: DefaultDebounce,
		logger:   logger.Named("watch"),
	}, nil
}

// Watch blocks until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.stop()
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debugw("workbook changed", logger.FieldFile, ev.Name, "op", ev.Op.String())
			w.schedule(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.logger.Infow("reloading dashboard", logger.FieldFile, w.path)
		w.dash.Refresh(ctx)
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
