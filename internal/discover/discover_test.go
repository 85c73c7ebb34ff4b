package discover

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tree(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, nil, 0o644))
	}
	return fs
}

func TestDiscover(t *testing.T) {
	fs := tree(t,
		"lib/user.dart",
		"lib/models/order.dart",
		"lib/models/deep/item.dart",
		"lib/README.md",
		"test/user_test.dart",
	)
	require.NoError(t, fs.MkdirAll("lib/empty.dart", 0o755))

	tests := []struct {
		pattern string
		want    []string
	}{
		{"lib/**/*.dart", []string{"lib/models/deep/item.dart", "lib/models/order.dart", "lib/user.dart"}},
		{"lib/*.dart", []string{"lib/user.dart"}},
		{"**/*_test.dart", []string{"test/user_test.dart"}},
		{"{lib,test}/*.dart", []string{"lib/user.dart", "test/user_test.dart"}},
		{"missing/**/*.dart", nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := Discover(fs, tt.pattern)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverBadPattern(t *testing.T) {
	_, err := Discover(tree(t, "lib/a.dart"), "lib/[*.dart")
	require.ErrorIs(t, err, ErrBadPattern)
}

func TestDirs(t *testing.T) {
	fs := tree(t,
		"lib/user.dart",
		"lib/models/order.dart",
		"lib/models/deep/item.dart",
		"lib/.hidden/skip.dart",
		"bin/main.dart",
	)

	dirs, err := Dirs(fs, "lib/**/*.dart")
	require.NoError(t, err)
	assert.Equal(t, []string{"lib", "lib/models", "lib/models/deep"}, dirs)

	_, err = Dirs(fs, "src/**/*.dart")
	require.ErrorIs(t, err, afero.ErrFileNotFound)
}
