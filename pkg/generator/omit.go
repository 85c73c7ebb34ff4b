package generator

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// shouldOmitSource determines whether a discovered path is not a source unit:
// generated companions, files outside the source extension, and anything an
// exclude pattern matches.
func shouldOmitSource(p string, opts *Options) bool {
	if p == "" {
		return true
	}
	if strings.HasSuffix(p, opts.OutputExt) || !strings.HasSuffix(p, opts.SourceExt) {
		return true
	}
	return matchesAny(opts.Excludes, p)
}

// matchesAny reports whether any pattern matches the slash path or its base
// name.
func matchesAny(patterns []string, p string) bool {
	base := path.Base(p)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// IsSource reports whether the slash path p is a unit opts would process.
// Watch mode uses it to filter filesystem events.
func IsSource(p string, opts *Options) bool {
	if shouldOmitSource(p, opts) {
		return false
	}
	ok, err := doublestar.Match(opts.Pattern, p)
	return err == nil && ok
}
