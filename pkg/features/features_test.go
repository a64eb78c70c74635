package features_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/features"
	"github.com/variantlab/savset/pkg/sav"
	"github.com/variantlab/savset/pkg/sources"
)

const featureFile = `accession	position	wild_type	mutant	structure	residue_count	hydrophobicity	volume_delta
P04637	175	R	H	1tup	393	-0.5	-38.2
P04637	273	R	C	1tup	393	2.0	-65.6
P38398	61	C	G	.	0	0	0
`

func variant(t *testing.T, s string) sav.Variant {
	t.Helper()
	v, err := sav.ParseVariant(s)
	require.NoError(t, err)
	return v
}

func TestReadTable(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"hydrophobicity", "volume_delta"}, tc.Schema())

	rows, err := tc.Compute(context.Background(), []sav.Variant{variant(t, "P04637:273:R>C")})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Mapped)
	assert.Equal(t, "1tup", rows[0].Structure)
	assert.Equal(t, 393, rows[0].ResidueCount)
	assert.Equal(t, []float64{2.0, -65.6}, rows[0].Values)
}

func TestReadTableUnmappedMarker(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	rows, err := tc.Compute(context.Background(), []sav.Variant{variant(t, "P38398:61:C>G")})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.False(t, rows[0].Mapped)
	require.Len(t, rows[0].Values, 2)
	for i, val := range rows[0].Values {
		assert.True(t, math.IsNaN(val), "value %d", i)
	}
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "empty file",
			input: "",
		},
		{
			name:  "wrong header",
			input: "accession\tposition\twild_type\tmutant\tpdb\tresidue_count\tf1\n",
		},
		{
			name: "short row",
			input: "accession\tposition\twild_type\tmutant\tstructure\tresidue_count\tf1\n" +
				"P04637\t175\tR\tH\t1tup\t393\n",
		},
		{
			name: "non-numeric feature",
			input: "accession\tposition\twild_type\tmutant\tstructure\tresidue_count\tf1\n" +
				"P04637\t175\tR\tH\t1tup\t393\thello\n",
		},
		{
			name: "duplicate variant",
			input: "accession\tposition\twild_type\tmutant\tstructure\tresidue_count\tf1\n" +
				"P04637\t175\tR\tH\t1tup\t393\t1.0\n" +
				"P04637\t175\tR\tH\t1tup\t393\t2.0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := features.ReadTable(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestComputeAbsentVariantIsUnmapped(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	v := variant(t, "Q9Y6X9:100:A>T")
	rows, err := tc.Compute(context.Background(), []sav.Variant{v})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, v, rows[0].Variant)
	assert.False(t, rows[0].Mapped)
}

func TestComputeHonoursContext(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = tc.Compute(ctx, []sav.Variant{variant(t, "P04637:175:R>H")})
	assert.ErrorIs(t, err, context.Canceled)
}

func buildJoinDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds := dataset.New()

	table := sources.NewTable("clinvar")
	require.NoError(t, table.Add(variant(t, "P04637:175:R>H"), sav.VoteDeleterious))
	require.NoError(t, table.Add(variant(t, "P38398:61:C>G"), sav.VoteNeutral))
	require.NoError(t, table.Add(variant(t, "Q9Y6X9:100:A>T"), sav.VoteNeutral))
	require.NoError(t, table.SetTier(variant(t, "P04637:175:R>H"), 4))
	require.NoError(t, ds.Merge(table))

	require.NoError(t, ds.AnnotateTiers("clinvar", table.Tiers()))
	require.NoError(t, ds.Finalize())
	return ds
}

func TestJoinKeepsEveryRecord(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	ds := buildJoinDataset(t)
	table, err := features.Join(context.Background(), ds, tc)
	require.NoError(t, err)

	// Three records in, three rows out: Q9Y6X9 is missing from the
	// feature table but still appears, NaN-filled.
	require.Len(t, table.Rows, ds.Len())
	last := table.Rows[2]
	assert.Equal(t, variant(t, "Q9Y6X9:100:A>T"), last.Record.Variant)
	assert.False(t, last.Features.Mapped)
	for _, val := range last.Features.Values {
		assert.True(t, math.IsNaN(val))
	}
}

func TestJoinRequiresFinalizedDataset(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	_, err = features.Join(context.Background(), dataset.New(), tc)
	assert.ErrorIs(t, err, errors.ErrNotFinalized)
}

func TestWriteTSV(t *testing.T) {
	tc, err := features.ReadTable(strings.NewReader(featureFile))
	require.NoError(t, err)

	table, err := features.Join(context.Background(), buildJoinDataset(t), tc)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, table.WriteTSV(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Equal(t, "variant\ttrue_label\treview_tier\tstructure\tresidue_count\thydrophobicity\tvolume_delta", lines[0])
	assert.Equal(t, "P04637:175:R>H\t1\t4\t1tup\t393\t-0.5\t-38.2", lines[1])

	// Unmapped rows carry the marker and NaN feature values.
	unmapped := strings.Split(lines[3], "\t")
	assert.Equal(t, "Q9Y6X9:100:A>T", unmapped[0])
	assert.Equal(t, ".", unmapped[3])
	assert.Equal(t, "NaN", unmapped[5])
	assert.Equal(t, "NaN", unmapped[6])
}
