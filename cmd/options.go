package cmd

import (
	"fmt"
	"strings"

	"github.com/jinzhu/inflection"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmmoran/flugen/pkg/action/generate"
	"github.com/cmmoran/flugen/pkg/generator"
)

// optionFlags maps generator.Options keys to the command-line flags that set
// them. Config files and FLUGEN_* variables use the keys.
var optionFlags = []struct {
	key, flag string
}{
	{"root", "root"},
	{"pattern", "pattern"},
	{"excludes", "exclude"},
	{"workers", "workers"},
	{"source_ext", "source-ext"},
	{"output_ext", "output-ext"},
	{"manifest", "manifest"},
	{"force", "force"},
	{"ignores", "ignore"},
	{"header", "header"},
	{"debounce", "debounce"},
}

// addOptionFlags registers the generator flags on c with NewOptions defaults.
func addOptionFlags(c *cobra.Command) {
	d := generator.NewOptions()
	f := c.Flags()
	f.StringP("root", "r", d.Root, "project root every pattern and path is relative to")
	f.StringP("pattern", "p", d.Pattern, "doublestar glob selecting source units")
	f.StringSliceP("exclude", "x", d.Excludes, "globs removing units from the match set")
	f.IntP("workers", "w", d.Workers, "units processed in parallel")
	f.String("source-ext", d.SourceExt, "extension replaced when deriving output paths")
	f.String("output-ext", d.OutputExt, "extension of generated units")
	f.StringP("manifest", "m", d.Manifest, "incremental cache file under the root; empty disables it")
	f.BoolP("force", "f", d.Force, "regenerate units the manifest reports as fresh")
	f.StringSlice("ignore", d.Ignores, "lints listed in the generated ignore_for_file directive")
	f.String("header", d.Header, "text/template for the generated preamble (sprig functions available)")
	f.Duration("debounce", d.Debounce, "quiet period before watch mode regenerates")
}

// loadOptions resolves generator options from flags, FLUGEN_* variables and
// config files, in that order of precedence.
func loadOptions(c *cobra.Command) (*generator.Options, error) {
	for _, b := range optionFlags {
		flag := c.Flags().Lookup(b.flag)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(b.key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", b.flag, err)
		}
	}
	opts := generator.NewOptions()
	if err := viper.Unmarshal(opts); err != nil {
		return nil, fmt.Errorf("%w: %w", generator.ErrInvalidOptions, err)
	}
	return opts, nil
}

// plural renders n with noun, pluralized when n != 1.
func plural(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

var summaryStatuses = []generate.Status{
	generate.StatusWritten,
	generate.StatusUnchanged,
	generate.StatusCached,
	generate.StatusEmpty,
	generate.StatusRemoved,
	generate.StatusFailed,
}

// summarize describes a report in one line, e.g.
// "3 units, 4 classes: 1 written, 2 cached".
func summarize(r *generate.Report) string {
	parts := make([]string, 0, len(summaryStatuses))
	for _, s := range summaryStatuses {
		if n := r.Count(s); n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	head := plural(len(r.Units), "unit") + ", " + plural(r.Classes(), "class")
	if len(parts) == 0 {
		return head
	}
	return head + ": " + strings.Join(parts, ", ")
}
