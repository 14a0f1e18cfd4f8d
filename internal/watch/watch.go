// Package watch re-parses a source file every time it changes on disk.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"

	"github.com/opal-lang/opalc/internal/ast/syntax"
	"github.com/opal-lang/opalc/internal/parser"
)

var log = commonlog.GetLogger("opalc.watch")

// Result is the outcome of parsing the watched file once.
type Result struct {
	Path   string
	Source string
	Geode  syntax.Geode
	// Err is a read error or the first lexical or syntax error.
	Err    error
}

// ParseFile reads and parses path, naming the unit after the file.
func ParseFile(path, name string, opts ...parser.Option) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	source := string(data)
	geode, err := parser.ParseSource(name, source, opts...)
	return Result{Path: path, Source: source, Geode: geode, Err: err}
}

// Watcher reports a fresh Result for its file after every write.
type Watcher struct {
	path string
	name string
	opts []parser.Option
}

// New returns a watcher for path. The parsed unit is called name.
func New(path, name string, opts ...parser.Option) *Watcher {
	return &Watcher{path: filepath.Clean(path), name: name, opts: opts}
}

// Run parses the file once, then again after each change, passing every
// result to report. It returns nil when ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, report func(Result)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	// Editors often save by renaming a temporary file over the original, which
	// drops a watch on the file itself, so the directory is watched instead.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}
	log.Infof("watching %s", w.path)

	report(ParseFile(w.path, w.name, w.opts...))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debugf("change: %s", ev)
			report(ParseFile(w.path, w.name, w.opts...))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", w.path, err)
		}
	}
}
