package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/savset/pkg/sources"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clinvar.tsv", "P04637\t175\tR\tH\t1\t4\n")
	writeFile(t, dir, "humvar.tsv", "P04637\t175\tR\tH\t0\n")

	manifest := writeFile(t, dir, "sources.yaml", `sources:
- name: clinvar
  path: clinvar.tsv
  authority: true
- name: humvar
  path: humvar.tsv
`)

	m, err := sources.LoadManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, "clinvar", m.Authority())

	tables, err := m.LoadTables()
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "clinvar", tables[0].Name())
	assert.Equal(t, "humvar", tables[1].Name())
}

func TestLoadManifestValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", "sources: []\n"},
		{"missing name", "sources:\n- path: a.tsv\n"},
		{"missing path", "sources:\n- name: a\n"},
		{"duplicate name", "sources:\n- name: a\n  path: a.tsv\n- name: a\n  path: b.tsv\n"},
		{"two authorities", "sources:\n- name: a\n  path: a.tsv\n  authority: true\n- name: b\n  path: b.tsv\n  authority: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".yaml", tt.content)
			_, err := sources.LoadManifest(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadTablesAbortsOnFirstBadSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.tsv", "P04637\t175\tR\tH\t1\n")
	writeFile(t, dir, "bad.tsv", "P04637\t175\tR\tH\tpathogenic\n")

	manifest := writeFile(t, dir, "sources.yaml", `sources:
- name: good
  path: good.tsv
- name: bad
  path: bad.tsv
`)

	m, err := sources.LoadManifest(manifest)
	require.NoError(t, err)

	_, err = m.LoadTables()
	assert.Error(t, err)
}
