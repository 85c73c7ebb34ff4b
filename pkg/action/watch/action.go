// Package watch keeps generated companions current while sources change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/romdo/go-debounce"
	"github.com/spf13/afero"

	"github.com/cmmoran/flugen/internal/discover"
	"github.com/cmmoran/flugen/pkg/action/generate"
	"github.com/cmmoran/flugen/pkg/generator"
)

// ReportFunc receives the report of every generation run, the initial full
// run included.
type ReportFunc func(*generate.Report)

// Watch runs a full generation, then regenerates changed units after each
// quiet period of opts.Debounce until ctx is done. Watch requires an
// OS-backed filesystem rooted at opts.Root.
func Watch(ctx context.Context, opts *generator.Options, report ReportFunc) error {
	g, err := generator.NewWithOpts(opts)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(g.Opts.Root)
	if err != nil {
		return fmt.Errorf("%w: root %q: %w", generator.ErrInvalidOptions, g.Opts.Root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	w := newWatcher(ctx, g, root, report)
	dirs, err := discover.Dirs(g.Opts.Fs, g.Opts.Pattern)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		w.add(fsw, d)
	}
	slog.Default().With("root", root, "directories", len(dirs)).Info("watching for changes")

	units, err := g.Discover()
	if err != nil {
		return err
	}
	if err := w.run(units); err != nil {
		return err
	}

	debounced, cancel := debounce.NewWithMaxWait(g.Opts.Debounce, 4*g.Opts.Debounce, w.flush)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			// wait out a run already in flight
			w.mu.Lock()
			w.mu.Unlock()
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.watchDir(fsw, event) || w.mark(event) {
				debounced()
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Default().With("error", err).Warn("file watcher error")
		}
	}
}

type watcher struct {
	ctx    context.Context
	g      *generator.Generator
	fs     afero.Fs
	root   string
	report ReportFunc

	dirtyMu sync.Mutex
	dirty   map[string]struct{}

	// mu serializes generation runs.
	mu sync.Mutex
}

func newWatcher(ctx context.Context, g *generator.Generator, root string, report ReportFunc) *watcher {
	return &watcher{
		ctx:    ctx,
		g:      g,
		fs:     g.Opts.Fs,
		root:   root,
		report: report,
		dirty:  make(map[string]struct{}),
	}
}

// rel maps an OS path reported by fsnotify to a slash-separated unit path
// under root.
func (w *watcher) rel(name string) (string, bool) {
	r, err := filepath.Rel(w.root, name)
	if err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(r), true
}

func (w *watcher) add(fsw *fsnotify.Watcher, dir string) {
	name := filepath.Join(w.root, filepath.FromSlash(dir))
	if err := fsw.Add(name); err != nil {
		slog.Default().With("error", err, "directory", dir).Warn("unable to watch directory")
	}
}

// watchDir subscribes to a directory created under a watched one, and reports
// whether event named a directory.
func (w *watcher) watchDir(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	r, ok := w.rel(event.Name)
	if !ok {
		return false
	}
	if isDir, err := afero.IsDir(w.fs, r); err != nil || !isDir {
		return false
	}
	dirs, err := discover.Dirs(w.fs, r)
	if err != nil {
		return true
	}
	for _, d := range dirs {
		w.add(fsw, d)
	}
	// files may have landed before the subscription
	units, err := discover.Discover(w.fs, r+"/**/*")
	if err == nil {
		for _, u := range units {
			w.markPath(u)
		}
	}
	return true
}

// mark records the unit named by event and reports whether it is a source.
func (w *watcher) mark(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	r, ok := w.rel(event.Name)
	if !ok {
		return false
	}
	return w.markPath(r)
}

func (w *watcher) markPath(p string) bool {
	if !generator.IsSource(p, &w.g.Opts) {
		return false
	}
	w.dirtyMu.Lock()
	w.dirty[p] = struct{}{}
	w.dirtyMu.Unlock()
	return true
}

// take drains the dirty set, returning units that still exist in sorted order.
func (w *watcher) take() []string {
	w.dirtyMu.Lock()
	pending := w.dirty
	w.dirty = make(map[string]struct{})
	w.dirtyMu.Unlock()

	units := make([]string, 0, len(pending))
	for p := range pending {
		if ok, err := afero.Exists(w.fs, p); err != nil || !ok {
			slog.Default().With("source", p).Debug("unit removed, skipping")
			continue
		}
		units = append(units, p)
	}
	slices.Sort(units)
	return units
}

func (w *watcher) flush() {
	if w.ctx.Err() != nil {
		return
	}
	units := w.take()
	if len(units) == 0 {
		return
	}
	if err := w.run(units); err != nil {
		slog.Default().With("error", err).Error("regeneration failed")
	}
}

func (w *watcher) run(units []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, err := generate.Units(w.ctx, w.g, units)
	if err != nil {
		return err
	}
	if w.report != nil {
		w.report(r)
	}
	return nil
}
