package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

func buildDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "clinvar", map[sav.Variant]sav.Vote{
		v1: sav.VoteDeleterious,
		v2: sav.VoteNeutral,
	})))
	require.NoError(t, ds.Merge(makeTable(t, "humvar", map[sav.Variant]sav.Vote{
		v1: sav.VoteNeutral,
		v3: sav.VoteAmbiguous,
	})))
	require.NoError(t, ds.AnnotateTiers("clinvar", map[sav.Variant]sav.ReviewTier{
		v1: 4,
		v2: 1,
	}))
	require.NoError(t, ds.Finalize())
	return ds
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	ds := buildDataset(t)
	require.NoError(t, ds.Save(dir))

	loaded, err := dataset.Load(dir)
	require.NoError(t, err)

	assert.True(t, loaded.Finalized())
	assert.Equal(t, ds.Sources(), loaded.Sources())
	assert.Equal(t, ds.Authority(), loaded.Authority())
	require.Equal(t, ds.Len(), loaded.Len())

	for _, want := range ds.Records() {
		got, ok := loaded.Get(want.Variant)
		require.True(t, ok, "variant %s missing after load", want.Variant)
		assert.Equal(t, want.TrueLabel, got.TrueLabel)
		assert.Equal(t, want.ReviewTier, got.ReviewTier)
		assert.Equal(t, want.Votes.All(), got.Votes.All())
	}
}

func TestSaveRequiresFinalize(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteNeutral})))

	err := ds.Save(t.TempDir())
	assert.ErrorIs(t, err, errors.ErrNotFinalized)
}

func TestSavedTableFieldOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, buildDataset(t).Save(dir))

	data, err := os.ReadFile(filepath.Join(dir, dataset.TableFile))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Equal(t, dataset.TSVHeader, lines[0])

	// v1 carries a discordant label, both source votes, and tier 4.
	assert.Equal(t, "P04637:175:R>H\t-1\tclinvar[1],humvar[0]\t4", lines[1])
}

func TestLoadRejectsCorruptTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, buildDataset(t).Save(dir))

	path := filepath.Join(dir, dataset.TableFile)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	corrupted := strings.Replace(string(data), "\t-1\t", "\t9\t", 1)
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o644))

	_, err = dataset.Load(dir)
	assert.Error(t, err)
}
