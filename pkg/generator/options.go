package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/cmmoran/flugen/internal/emitter"
)

var (
	// ErrInvalidPattern is returned for a malformed discovery or exclude glob.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrInvalidOptions is returned when options cannot be normalized.
	ErrInvalidOptions = errors.New("invalid options")
)

// Options control discovery, scheduling and output.
//
// Root      – directory every pattern and path is relative to.
// Pattern   – doublestar glob selecting source units.
// Excludes  – globs removing units from the match set.
// Workers   – width of the worker pool (GOMAXPROCS when <= 0).
// SourceExt – extension replaced when deriving output paths.
// OutputExt – extension of generated units; sources with it are never inputs.
// Manifest  – incremental cache file under Root; empty disables it.
// Force     – regenerate even when the manifest says a unit is fresh.
// Ignores   – lints silenced by the generated ignore_for_file directive.
// Header    – text/template for the generated preamble (sprig functions available).
// Debounce  – quiet period before watch mode regenerates changed units.
type Options struct {
	Root      string        `json:"root,omitempty" yaml:"root,omitempty" toml:"root,omitempty" mapstructure:"root,omitempty"`
	Pattern   string        `json:"pattern,omitempty" yaml:"pattern,omitempty" toml:"pattern,omitempty" mapstructure:"pattern,omitempty"`
	Excludes  []string      `json:"excludes,omitempty" yaml:"excludes,omitempty" toml:"excludes,omitempty" mapstructure:"excludes,omitempty"`
	Workers   int           `json:"workers,omitempty" yaml:"workers,omitempty" toml:"workers,omitempty" mapstructure:"workers,omitempty"`
	SourceExt string        `json:"source_ext,omitempty" yaml:"source_ext,omitempty" toml:"source_ext,omitempty" mapstructure:"source_ext,omitempty"`
	OutputExt string        `json:"output_ext,omitempty" yaml:"output_ext,omitempty" toml:"output_ext,omitempty" mapstructure:"output_ext,omitempty"`
	Manifest  string        `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	Force     bool          `json:"force,omitempty" yaml:"force,omitempty" toml:"force,omitempty" mapstructure:"force,omitempty"`
	Ignores   []string      `json:"ignores,omitempty" yaml:"ignores,omitempty" toml:"ignores,omitempty" mapstructure:"ignores,omitempty"`
	Header    string        `json:"header,omitempty" yaml:"header,omitempty" toml:"header,omitempty" mapstructure:"header,omitempty"`
	Debounce  time.Duration `json:"debounce,omitempty" yaml:"debounce,omitempty" toml:"debounce,omitempty" mapstructure:"debounce,omitempty"`

	// Fs is the filesystem units are read from and written to. Normalize
	// roots an OS filesystem at Root when it is nil.
	Fs afero.Fs `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
}

// DefaultExcludes skip generated companions of common Dart code generators.
var DefaultExcludes = []string{
	"**/*.flu.dart",
	"**/*.g.dart",
	"**/*.freezed.dart",
}

func NewOptions() *Options {
	return &Options{
		Root:      ".",
		Pattern:   "lib/**/*.dart",
		Excludes:  append([]string(nil), DefaultExcludes...),
		Workers:   runtime.GOMAXPROCS(0),
		SourceExt: ".dart",
		OutputExt: ".flu.dart",
		Manifest:  ".flu_manifest.yaml",
		Ignores:   append([]string(nil), emitter.DefaultIgnores...),
		Debounce:  250 * time.Millisecond,
	}
}

// Normalize fills defaults and validates patterns.
func (o *Options) Normalize() error {
	if len(o.Root) == 0 {
		o.Root = "."
	}
	if len(o.Pattern) == 0 {
		o.Pattern = "lib/**/*.dart"
	}
	o.Pattern = filepath.ToSlash(strings.TrimPrefix(o.Pattern, "./"))
	if !doublestar.ValidatePattern(o.Pattern) {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, o.Pattern)
	}
	for _, ex := range o.Excludes {
		if !doublestar.ValidatePattern(ex) {
			return fmt.Errorf("%w: exclude %q", ErrInvalidPattern, ex)
		}
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if len(o.SourceExt) == 0 {
		o.SourceExt = ".dart"
	}
	if len(o.OutputExt) == 0 {
		o.OutputExt = ".flu.dart"
	}
	if o.SourceExt == o.OutputExt {
		return fmt.Errorf("%w: output extension %q equals source extension", ErrInvalidOptions, o.OutputExt)
	}
	if o.Debounce <= 0 {
		o.Debounce = 250 * time.Millisecond
	}
	if o.Fs == nil {
		root, err := filepath.Abs(o.Root)
		if err != nil {
			return fmt.Errorf("%w: root %q: %w", ErrInvalidOptions, o.Root, err)
		}
		o.Root = root
		o.Fs = afero.NewBasePathFs(afero.NewOsFs(), root)
	}
	return nil
}

// EmitOptions are the emitter settings carried by o.
func (o *Options) EmitOptions() emitter.Options {
	return emitter.Options{
		Header:  o.Header,
		Ignores: o.Ignores,
	}
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithRoot(d string) Option       { return func(o *Options) { o.Root = d } }
func WithPattern(p string) Option    { return func(o *Options) { o.Pattern = p } }
func WithWorkers(n int) Option       { return func(o *Options) { o.Workers = n } }
func WithSourceExt(e string) Option  { return func(o *Options) { o.SourceExt = e } }
func WithOutputExt(e string) Option  { return func(o *Options) { o.OutputExt = e } }
func WithManifest(p string) Option   { return func(o *Options) { o.Manifest = p } }
func WithHeader(h string) Option     { return func(o *Options) { o.Header = h } }
func WithFs(fs afero.Fs) Option      { return func(o *Options) { o.Fs = fs } }
func WithForce() Option              { return func(o *Options) { o.Force = true } }
func WithoutManifest() Option        { return func(o *Options) { o.Manifest = "" } }
func WithIgnores(l ...string) Option { return func(o *Options) { o.Ignores = l } }
func WithDebounce(d time.Duration) Option {
	return func(o *Options) { o.Debounce = d }
}
func WithExcludes(patterns ...string) Option {
	return func(o *Options) {
		for _, p := range patterns {
			o.Excludes = append(o.Excludes, strings.TrimSpace(p))
		}
	}
}
