package shader

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports edits to the shader files in a directory. It only signals;
// recompiling is left to the caller on the GL thread.
type Watcher struct {
	fs      *fsnotify.Watcher
	names   map[string]bool
	changed chan struct{}
	done    chan struct{}
	log     *zap.Logger
}

// NewWatcher starts watching dir for writes to the vertex and fragment files.
func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// Editors often replace files instead of writing in place, so watch the
	// directory rather than the files.
	if err := fsWatch.Add(dir); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fs:      fsWatch,
		names:   map[string]bool{VertexFile: true, FragmentFile: true},
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
	}
	go w.run()
	return w, nil
}

// Changed delivers at most one pending notification, however many edits
// happened since it was last drained.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changed
}

// Close stops the watcher goroutine.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.names[filepath.Base(e.Name)] || !e.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.log.Debug("shader source changed", zap.String("file", e.Name), zap.Stringer("op", e.Op))
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("shader watcher error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}
