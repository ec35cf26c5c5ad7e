// Package watch re-evaluates source files whenever they change on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dumbbrain-lang/dumbbrain/internal/cli"
	"github.com/dumbbrain-lang/dumbbrain/internal/pipeline"
)

// Handler receives the evaluation of a watched file. A file that could
// not be read is reported through err with a nil result.
type Handler func(path string, res *pipeline.Result, err error)

// Watcher evaluates a set of files once, then again after every write.
// Parent directories are watched rather than the files themselves so
// that editors replacing a file by rename are still noticed.
type Watcher struct {
	w       *fsnotify.Watcher
	files   map[string]bool
	handler Handler
	logger  *cli.Logger
}

// New creates a watcher for paths. logger may be nil.
func New(handler Handler, logger *cli.Logger, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to watch")
	}
	if logger == nil {
		logger = cli.NewLogger(false, false)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &Watcher{w: w, files: make(map[string]bool), handler: handler, logger: logger}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return fw, nil
}

// Run evaluates every file, then re-evaluates on change until ctx is
// done. It closes the underlying watcher before returning.
func (fw *Watcher) Run(ctx context.Context) error {
	defer fw.w.Close()

	for path := range fw.files {
		fw.evaluate(ctx, path)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(ev.Name)
			if !fw.files[path] {
				continue
			}
			fw.logger.Debug("%s: %s", ev.Op, path)
			fw.evaluate(ctx, path)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			fw.logger.Warn("watch error: %v", err)
		}
	}
}

func (fw *Watcher) evaluate(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fw.handler(path, nil, err)
		return
	}
	fw.handler(path, pipeline.Run(ctx, filepath.Base(path), string(data)), nil)
}
