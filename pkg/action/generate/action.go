package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/cmmoran/flugen/internal/pool"
	"github.com/cmmoran/flugen/pkg/generator"
	"github.com/cmmoran/flugen/pkg/manifest"
)

// Status is the outcome of processing one unit.
type Status int

const (
	StatusWritten   Status = iota // output created or replaced
	StatusUnchanged               // rendered output matched the file on disk
	StatusCached                  // manifest digest matched, nothing rendered
	StatusEmpty                   // no annotated classes, no output
	StatusRemoved                 // no annotated classes, stale output deleted
	StatusFailed                  // unit could not be read, rendered or written
)

var statusNames = [...]string{
	StatusWritten:   "written",
	StatusUnchanged: "unchanged",
	StatusCached:    "cached",
	StatusEmpty:     "empty",
	StatusRemoved:   "removed",
	StatusFailed:    "failed",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// UnitResult describes one processed unit.
type UnitResult struct {
	Source  string
	Output  string
	Classes []string
	Status  Status
	Err     error
}

// Report collects unit results, sorted by source.
type Report struct {
	Units []UnitResult
}

// Count returns how many units ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, u := range r.Units {
		if u.Status == s {
			n++
		}
	}
	return n
}

// Classes is the number of classes across every unit that produced output.
func (r *Report) Classes() int {
	n := 0
	for _, u := range r.Units {
		n += len(u.Classes)
	}
	return n
}

// Err joins the errors of failed units.
func (r *Report) Err() error {
	var errs []error
	for _, u := range r.Units {
		if u.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", u.Source, u.Err))
		}
	}
	return errors.Join(errs...)
}

// Generate discovers every unit and generates its companion.
func Generate(ctx context.Context, opts *generator.Options) (*Report, error) {
	g, err := generator.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	units, err := g.Discover()
	if err != nil {
		return nil, err
	}
	slog.Default().With("pattern", g.Opts.Pattern, "units", len(units)).Debug("discovered units")
	return Units(ctx, g, units)
}

// Units generates the companions of the given units. Unit failures are
// reported, not returned; the error is reserved for cancellation and manifest
// I/O.
func Units(ctx context.Context, g *generator.Generator, units []string) (*Report, error) {
	r := &runner{g: g, fs: g.Opts.Fs}
	if err := r.loadManifest(); err != nil {
		return nil, err
	}

	err := pool.Run(ctx, g.Opts.Workers, units, func(_ context.Context, source string) error {
		r.add(r.process(source))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.saveManifest(); err != nil {
		return nil, err
	}
	slices.SortFunc(r.report.Units, func(a, b UnitResult) int {
		return strings.Compare(a.Source, b.Source)
	})
	return &r.report, nil
}

type runner struct {
	g        *generator.Generator
	fs       afero.Fs
	manifest *manifest.Manifest
	salt     string

	mu     sync.Mutex
	report Report
}

func (r *runner) add(u UnitResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report.Units = append(r.report.Units, u)
}

func (r *runner) loadManifest() error {
	if r.g.Opts.Manifest == "" {
		return nil
	}
	m, err := manifest.Load(r.fs, r.g.Opts.Manifest)
	if err != nil {
		return err
	}
	m.Reset(generator.Version)
	r.manifest = m
	r.salt = r.g.Fingerprint()
	return nil
}

func (r *runner) saveManifest() error {
	if r.manifest == nil {
		return nil
	}
	return r.manifest.Save(r.fs, r.g.Opts.Manifest)
}

func (r *runner) process(source string) UnitResult {
	l := slog.Default().With("source", source)
	res := UnitResult{Source: source}

	content, err := afero.ReadFile(r.fs, source)
	if err != nil {
		l.With("error", err).Warn("unable to read unit, skipping")
		res.Status, res.Err = StatusFailed, err
		return res
	}

	digest := ""
	if r.manifest != nil {
		digest = manifest.Digest(content, r.salt)
		if res, ok := r.cached(source, digest); ok && !r.g.Opts.Force {
			l.Debug("unit unchanged since last run")
			return res
		}
	}

	out, err := r.g.Render(source, string(content))
	if err != nil {
		l.With("error", err).Warn("unable to render unit")
		res.Status, res.Err = StatusFailed, err
		return res
	}
	res.Classes = out.Classes

	if out.Empty() {
		res.Status = StatusEmpty
		stale, err := Orphan(r.g, r.manifest, source, out.Path)
		if err == nil && stale {
			err = r.fs.Remove(out.Path)
			res.Status = StatusRemoved
		}
		if err != nil {
			l.With("error", err, "output", out.Path).Warn("unable to remove stale output")
			res.Status, res.Err = StatusFailed, err
			return res
		}
		if res.Status == StatusRemoved {
			l.With("output", out.Path).Info("removed stale output")
		}
		r.record(res, digest)
		return res
	}
	res.Output = out.Path
	l = l.With("output", out.Path)

	existing, err := afero.ReadFile(r.fs, out.Path)
	if err == nil && bytes.Equal(existing, []byte(out.Content)) {
		res.Status = StatusUnchanged
		r.record(res, digest)
		return res
	}
	if err := writeFile(r.fs, out.Path, out.Content); err != nil {
		l.With("error", err).Warn("unable to write generated unit")
		res.Status, res.Err = StatusFailed, err
		return res
	}
	l.With("classes", len(out.Classes)).Info("generated unit")
	res.Status = StatusWritten
	r.record(res, digest)
	return res
}

// cached returns a result for source when the manifest entry matches digest
// and its output, if any, is still on disk.
func (r *runner) cached(source, digest string) (UnitResult, bool) {
	u, ok := r.manifest.Lookup(source)
	if !ok || u.Digest != digest {
		return UnitResult{}, false
	}
	if u.Output != "" {
		if exists, err := afero.Exists(r.fs, u.Output); err != nil || !exists {
			return UnitResult{}, false
		}
	}
	return UnitResult{Source: source, Output: u.Output, Classes: u.Classes, Status: StatusCached}, true
}

func (r *runner) record(res UnitResult, digest string) {
	if r.manifest == nil {
		return
	}
	r.manifest.Record(manifest.Unit{
		Source:  res.Source,
		Output:  res.Output,
		Digest:  digest,
		Classes: res.Classes,
	})
}

// Orphan reports whether output exists and was written by a previous run for
// source: either m records it as the output of source, or it starts with the
// generated preamble. Files that are neither are never touched. m may be nil.
func Orphan(g *generator.Generator, m *manifest.Manifest, source, output string) (bool, error) {
	existing, err := afero.ReadFile(g.Opts.Fs, output)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if m != nil {
		if u, ok := m.Lookup(source); ok && u.Output == output {
			return true, nil
		}
	}
	return g.Generated(source, existing), nil
}

func writeFile(fs afero.Fs, path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
