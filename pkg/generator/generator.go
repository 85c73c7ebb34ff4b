// Package generator is the public entry point to flugen: it turns one source
// unit into its generated companion and finds the units a run should process.
package generator

import (
	"fmt"
	"strings"

	"github.com/cmmoran/flugen/internal/discover"
	"github.com/cmmoran/flugen/internal/emitter"
	"github.com/cmmoran/flugen/internal/parser"
)

// Version is recorded in manifests; bump it when generated text changes shape.
var Version = "0.3.0"

// Generator holds normalized options and the compiled emitter. It is safe
// for concurrent use.
type Generator struct {
	Opts Options

	emitter *emitter.Emitter
}

// Output is the result of rendering one unit.
type Output struct {
	Source  string   // logical identifier of the unit
	Path    string   // derived output identifier
	Classes []string // generated class names, in source order
	Content string   // full replacement text; empty when Classes is empty
}

// Empty reports whether the unit produced no output.
func (o *Output) Empty() bool {
	return len(o.Classes) == 0
}

// New creates a Generator from functional options applied over NewOptions.
func New(opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Generator, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	e, err := emitter.New(opts.EmitOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return &Generator{Opts: *opts, emitter: e}, nil
}

// Render parses content and emits the companion unit for source.
func (g *Generator) Render(source, content string) (*Output, error) {
	f := parser.Parse(source, content)
	out := &Output{
		Source:  source,
		Path:    OutputPath(source, g.Opts.SourceExt, g.Opts.OutputExt),
		Classes: make([]string, 0, len(f.Classes)),
	}
	for _, c := range f.Classes {
		out.Classes = append(out.Classes, c.Name)
	}
	text, ok, err := g.emitter.Emit(f)
	if err != nil {
		return nil, err
	}
	if ok {
		out.Content = text
	}
	return out, nil
}

// Generated reports whether content, read from the output of source, starts
// with the preamble this generator writes. Preambles that name the generated
// classes never match.
func (g *Generator) Generated(source string, content []byte) bool {
	header, err := g.emitter.Header(source, nil)
	if err != nil || header == "" {
		return false
	}
	return strings.HasPrefix(string(content), header)
}

// Discover lists the source units under the configured filesystem.
func (g *Generator) Discover() ([]string, error) {
	matches, err := discover.Discover(g.Opts.Fs, g.Opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	units := make([]string, 0, len(matches))
	for _, m := range matches {
		if shouldOmitSource(m, &g.Opts) {
			continue
		}
		units = append(units, m)
	}
	return units, nil
}

// Fingerprint identifies the settings that shape generated text; a change
// invalidates cached results.
func (g *Generator) Fingerprint() string {
	header := g.Opts.Header
	if header == "" {
		header = emitter.DefaultHeader
	}
	return strings.Join([]string{Version, header, strings.Join(g.Opts.Ignores, ","), g.Opts.OutputExt}, "\x00")
}

// OutputPath derives the generated unit's identifier by replacing the trailing
// source extension, e.g. "lib/user.dart" becomes "lib/user.flu.dart".
func OutputPath(source, sourceExt, outputExt string) string {
	return strings.TrimSuffix(source, sourceExt) + outputExt
}
