package generator

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userUnit = `part 'user.flu.dart';

// @flu
abstract class _User {
  String get name;
  int? get age;
}
`

func memGenerator(t *testing.T, files map[string]string, opts ...Option) *Generator {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	g, err := New(append([]Option{WithFs(fs)}, opts...)...)
	require.NoError(t, err)
	return g
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		source, want string
	}{
		{"lib/user.dart", "lib/user.flu.dart"},
		{"user.dart", "user.flu.dart"},
		{"lib/dart.dir/a.dart", "lib/dart.dir/a.flu.dart"},
		{"lib/notes.txt", "lib/notes.txt.flu.dart"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputPath(tt.source, ".dart", ".flu.dart"))
		})
	}
}

func TestRender(t *testing.T) {
	g := memGenerator(t, nil)

	out, err := g.Render("lib/user.dart", userUnit)
	require.NoError(t, err)
	assert.Equal(t, "lib/user.flu.dart", out.Path)
	assert.Equal(t, []string{"User"}, out.Classes)
	assert.False(t, out.Empty())
	assert.Contains(t, out.Content, "part of 'user.dart';")
	assert.Contains(t, out.Content, "class User extends _User {")

	again, err := g.Render("lib/user.dart", userUnit)
	require.NoError(t, err)
	assert.Equal(t, out.Content, again.Content)
}

func TestRenderNoClasses(t *testing.T) {
	g := memGenerator(t, nil)
	out, err := g.Render("lib/plain.dart", "class Plain {}\n")
	require.NoError(t, err)
	assert.True(t, out.Empty())
	assert.Empty(t, out.Content)
}

func TestDiscover(t *testing.T) {
	g := memGenerator(t, map[string]string{
		"lib/user.dart":                userUnit,
		"lib/user.flu.dart":            "generated",
		"lib/models/item.dart":         "",
		"lib/models/item.g.dart":       "",
		"lib/models/item.freezed.dart": "",
		"lib/README.md":                "",
		"test/user_test.dart":          "",
	})
	units, err := g.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/models/item.dart", "lib/user.dart"}, units)
}

func TestDiscoverExcludes(t *testing.T) {
	g := memGenerator(t, map[string]string{
		"lib/user.dart":       userUnit,
		"lib/legacy/old.dart": userUnit,
	}, WithExcludes("lib/legacy/**"))
	units, err := g.Discover()
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/user.dart"}, units)
}

func TestInvalidOptions(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := New(WithFs(fs), WithPattern("lib/[*.dart"))
	require.ErrorIs(t, err, ErrInvalidPattern)

	_, err = New(WithFs(fs), WithExcludes("{a,b"))
	require.ErrorIs(t, err, ErrInvalidPattern)

	_, err = New(WithFs(fs), WithOutputExt(".dart"))
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = New(WithFs(fs), WithHeader("{{ .Source "))
	require.ErrorIs(t, err, ErrInvalidOptions)
}

func TestNormalizeDefaults(t *testing.T) {
	o := &Options{Fs: afero.NewMemMapFs(), Pattern: "./lib/**/*.dart"}
	require.NoError(t, o.Normalize())
	assert.Equal(t, "lib/**/*.dart", o.Pattern)
	assert.Equal(t, ".dart", o.SourceExt)
	assert.Equal(t, ".flu.dart", o.OutputExt)
	assert.Positive(t, o.Workers)
	assert.Positive(t, o.Debounce)
}

func TestIsSource(t *testing.T) {
	g := memGenerator(t, nil)
	assert.True(t, IsSource("lib/a.dart", &g.Opts))
	assert.True(t, IsSource("lib/x/y/a.dart", &g.Opts))
	assert.False(t, IsSource("lib/a.flu.dart", &g.Opts))
	assert.False(t, IsSource("lib/a.g.dart", &g.Opts))
	assert.False(t, IsSource("bin/a.dart", &g.Opts))
	assert.False(t, IsSource("lib/a.txt", &g.Opts))
}

func TestFingerprint(t *testing.T) {
	a := memGenerator(t, nil)
	b := memGenerator(t, nil, WithIgnores("other"))
	c := memGenerator(t, nil)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Fingerprint(), c.Fingerprint())
}

func TestGenerated(t *testing.T) {
	g := memGenerator(t, nil)
	out, err := g.Render("lib/user.dart", userUnit)
	require.NoError(t, err)

	assert.True(t, g.Generated("lib/user.dart", []byte(out.Content)))
	assert.False(t, g.Generated("lib/other.dart", []byte(out.Content)))
	assert.False(t, g.Generated("lib/user.dart", []byte("class Handwritten {}\n")))
}
