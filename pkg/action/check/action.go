// Package check compares generated companions on disk with what a generation
// run would write, without touching the filesystem.
package check

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/flugen/internal/pool"
	"github.com/cmmoran/flugen/pkg/action/generate"
	"github.com/cmmoran/flugen/pkg/generator"
	"github.com/cmmoran/flugen/pkg/manifest"
)

// Drift describes one companion that is stale, missing or orphaned, or a unit
// that could not be checked.
type Drift struct {
	Source string
	Output string
	// Diff is a go-cmp diff from the on-disk text (-) to the expected text (+).
	Diff string
	// Err is set when the unit could not be read or rendered; Diff is empty.
	Err error
}

// Check renders every discovered unit and reports each output whose content
// differs from the file on disk. A missing output diffs against the empty
// string. An output left behind by a unit without annotated classes is
// reported only when a generation run would remove it. A unit that cannot be
// read or rendered is reported with Err and does not stop the others.
func Check(ctx context.Context, opts *generator.Options) ([]Drift, error) {
	g, err := generator.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	units, err := g.Discover()
	if err != nil {
		return nil, err
	}
	var m *manifest.Manifest
	if g.Opts.Manifest != "" {
		if m, err = manifest.Load(g.Opts.Fs, g.Opts.Manifest); err != nil {
			return nil, err
		}
	}

	var (
		mu     sync.Mutex
		drifts []Drift
	)
	err = pool.Run(ctx, g.Opts.Workers, units, func(_ context.Context, source string) error {
		d, ok := compare(g, m, source)
		if ok {
			mu.Lock()
			drifts = append(drifts, d)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(drifts, func(a, b Drift) int {
		return strings.Compare(a.Source, b.Source)
	})
	slog.Default().With("units", len(units), "drifted", len(drifts)).Debug("checked units")
	return drifts, nil
}

func compare(g *generator.Generator, m *manifest.Manifest, source string) (Drift, bool) {
	l := slog.Default().With("source", source)
	content, err := afero.ReadFile(g.Opts.Fs, source)
	if err != nil {
		l.With("error", err).Warn("unable to read unit, skipping")
		return Drift{Source: source, Err: fmt.Errorf("read %s: %w", source, err)}, true
	}
	out, err := g.Render(source, string(content))
	if err != nil {
		l.With("error", err).Warn("unable to render unit")
		return Drift{Source: source, Err: fmt.Errorf("render %s: %w", source, err)}, true
	}

	if out.Empty() {
		stale, err := generate.Orphan(g, m, source, out.Path)
		if err != nil {
			return Drift{Source: source, Output: out.Path, Err: fmt.Errorf("read %s: %w", out.Path, err)}, true
		}
		if !stale {
			return Drift{}, false
		}
	}

	existing, err := afero.ReadFile(g.Opts.Fs, out.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Drift{Source: source, Output: out.Path, Err: fmt.Errorf("read %s: %w", out.Path, err)}, true
	}

	diff := cmp.Diff(string(existing), out.Content)
	if diff == "" {
		return Drift{}, false
	}
	return Drift{Source: source, Output: out.Path, Diff: diff}, true
}
