package cache

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/poiesic/slidesearch/core"
)

// TableResolver maps a file name, without directory, to the table it backs.
type TableResolver func(name string) (core.TableName, bool)

// Watcher invalidates cache entries when the files backing them change.
type Watcher struct {
	source   *Source
	dir      string
	resolve  TableResolver
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	done     chan struct{}
	closeErr error
	once     sync.Once
}

// Watch starts watching dir. Any write, creation, removal or rename of a
// file that resolve maps to a table invalidates that table in source.
// The watch ends when ctx is done or Close is called.
func Watch(ctx context.Context, source *Source, dir string, resolve TableResolver) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		source:  source,
		dir:     dir,
		resolve: resolve,
		watcher: fsw,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go w.watchLoop(ctx)
	source.logger.Info("watching table files", "dir", dir)
	return w, nil
}

// Close stops the watcher and waits for its loop to exit.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		w.cancel()
		w.closeErr = w.watcher.Close()
		<-w.done
	})
	return w.closeErr
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			table, ok := w.resolve(filepath.Base(event.Name))
			if !ok {
				continue
			}
			w.source.logger.Debug("table file changed", "table", table, "file", event.Name, "op", event.Op.String())
			w.source.Invalidate(table)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.source.logger.Error("watcher error", "dir", w.dir, "err", err)
		}
	}
}
