// Package discover finds source units on an afero filesystem.
package discover

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// ErrBadPattern is reported, wrapped, for a malformed glob.
var ErrBadPattern = doublestar.ErrBadPattern

// Discover returns the sorted, slash-separated files under fsys that match the
// doublestar pattern. A pattern whose base directory does not exist matches
// nothing.
func Discover(fsys afero.Fs, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(afero.NewIOFS(fsys), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	for i, m := range matches {
		matches[i] = path.Clean(m)
	}
	slices.Sort(matches)
	return slices.Compact(matches), nil
}

// Dirs returns the static base directory of pattern and every directory below
// it, the set watch mode subscribes to.
func Dirs(fsys afero.Fs, pattern string) ([]string, error) {
	base, _ := doublestar.SplitPattern(pattern)
	if ok, err := afero.DirExists(fsys, base); err != nil || !ok {
		return nil, fmt.Errorf("watch base %q: %w", base, errors.Join(err, afero.ErrFileNotFound))
	}
	dirs := make([]string, 0)
	err := afero.Walk(fsys, base, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		name := info.Name()
		if p != base && len(name) > 1 && name[0] == '.' {
			return filepath.SkipDir
		}
		dirs = append(dirs, path.Clean(p))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", base, err)
	}
	slices.Sort(dirs)
	return dirs, nil
}
