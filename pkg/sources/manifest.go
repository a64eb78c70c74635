package sources

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/variantlab/savset/pkg/errors"
)

// Manifest lists the source tables to ingest, in merge order. Order is
// irrelevant to the resolved labels but fixes the provenance-string and
// report-axis ordering, so it is part of the artifact's definition.
type Manifest struct {
	Sources []ManifestEntry `yaml:"sources"`
}

// ManifestEntry describes one source in the manifest.
type ManifestEntry struct {
	// Name is the source identifier used in provenance strings.
	Name string `yaml:"name"`

	// Path is the label file, relative to the manifest's directory
	// unless absolute.
	Path string `yaml:"path"`

	// Authority marks the review-confidence authority source. At most
	// one entry may set it.
	Authority bool `yaml:"authority,omitempty"`
}

// Authority returns the name of the review authority source, or "".
func (m *Manifest) Authority() string {
	for _, e := range m.Sources {
		if e.Authority {
			return e.Name
		}
	}
	return ""
}

// Validate checks manifest consistency.
func (m *Manifest) Validate() error {
	if len(m.Sources) == 0 {
		return errors.NewConfigError("manifest", "no sources listed", nil)
	}
	seen := make(map[string]bool, len(m.Sources))
	authorities := 0
	for i, e := range m.Sources {
		if e.Name == "" {
			return errors.NewConfigError("manifest", fmt.Sprintf("source %d has no name", i), nil)
		}
		if e.Path == "" {
			return errors.NewConfigError("manifest", fmt.Sprintf("source %s has no path", e.Name), nil)
		}
		if seen[e.Name] {
			return errors.NewConfigError("manifest", fmt.Sprintf("source %s listed twice", e.Name), nil)
		}
		seen[e.Name] = true
		if e.Authority {
			authorities++
		}
	}
	if authorities > 1 {
		return errors.NewConfigError("manifest", "more than one source marked as review authority", nil)
	}
	return nil
}

// LoadManifest reads and validates a sources.yaml manifest. Relative
// source paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i, e := range m.Sources {
		if !filepath.IsAbs(e.Path) {
			m.Sources[i].Path = filepath.Join(base, e.Path)
		}
	}
	return &m, nil
}

// LoadTables parses every source file the manifest names, in manifest
// order. The first failing source aborts the load.
func (m *Manifest) LoadTables() ([]*Table, error) {
	tables := make([]*Table, 0, len(m.Sources))
	for _, e := range m.Sources {
		t, err := ParseFile(e.Name, e.Path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
