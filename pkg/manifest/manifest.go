package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Unit records the last generation of one source unit.
type Unit struct {
	Source  string   `yaml:"source" json:"source"`
	Output  string   `yaml:"output,omitempty" json:"output,omitempty"`
	Digest  string   `yaml:"digest" json:"digest"`
	Classes []string `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// Manifest tracks generated units so unchanged sources can be skipped. It is
// safe for concurrent use.
type Manifest struct {
	Version string `yaml:"version" json:"version"`
	Units   []Unit `yaml:"units" json:"units"`

	mu sync.Mutex
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories
// as needed. Units are written sorted by source.
func (m *Manifest) Save(fs afero.Fs, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slices.SortFunc(m.Units, func(a, b Unit) int {
		return strings.Compare(a.Source, b.Source)
	})

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create manifest directory: %w", err)
		}
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Reset drops every unit when version differs from the recorded one, then
// records version.
func (m *Manifest) Reset(version string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Version != version {
		m.Units = nil
	}
	m.Version = version
}

// Record stores u, replacing an existing entry for the same source.
func (m *Manifest) Record(u Unit) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Units {
		if m.Units[i].Source == u.Source {
			m.Units[i] = u
			return
		}
	}

	m.Units = append(m.Units, u)
}

// Lookup returns the entry recorded for source, if present.
func (m *Manifest) Lookup(source string) (Unit, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Units {
		if u.Source == source {
			return u, true
		}
	}
	return Unit{}, false
}

// Fresh reports whether source was last generated from content with digest.
func (m *Manifest) Fresh(source, digest string) bool {
	u, ok := m.Lookup(source)
	return ok && u.Digest == digest
}

// Digest fingerprints unit content. The salt folds in generator settings so a
// configuration change invalidates every entry.
func Digest(content []byte, salt string) string {
	h := sha256.New()
	h.Write([]byte(salt))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
