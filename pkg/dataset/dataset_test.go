package dataset_test

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
	"github.com/variantlab/savset/pkg/sources"
)

// Test fixtures
var (
	v1 = sav.Variant{Accession: "P04637", Position: 175, WildType: "R", Mutant: "H"}
	v2 = sav.Variant{Accession: "P04637", Position: 273, WildType: "R", Mutant: "C"}
	v3 = sav.Variant{Accession: "P38398", Position: 61, WildType: "C", Mutant: "G"}
)

func makeTable(t *testing.T, name string, votes map[sav.Variant]sav.Vote) *sources.Table {
	t.Helper()
	variants := make([]sav.Variant, 0, len(votes))
	for v := range votes {
		variants = append(variants, v)
	}
	// Map iteration order is random; keep table order deterministic.
	sort.Slice(variants, func(i, j int) bool {
		return variants[i].String() < variants[j].String()
	})

	table := sources.NewTable(name)
	for _, v := range variants {
		require.NoError(t, table.Add(v, votes[v]))
	}
	return table
}

func TestMergeDiscordantSources(t *testing.T) {
	// Source A says deleterious, source B says neutral.
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteDeleterious})))
	require.NoError(t, ds.Merge(makeTable(t, "b", map[sav.Variant]sav.Vote{v1: sav.VoteNeutral})))
	require.NoError(t, ds.Finalize())

	r, ok := ds.Get(v1)
	require.True(t, ok)
	assert.Equal(t, sav.LabelUnknown, r.TrueLabel)
	assert.True(t, dataset.Discordant(r.Votes))
}

func TestMergeUnanimousSources(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteDeleterious})))
	require.NoError(t, ds.Merge(makeTable(t, "b", map[sav.Variant]sav.Vote{v1: sav.VoteDeleterious})))
	require.NoError(t, ds.Finalize())

	r, _ := ds.Get(v1)
	assert.Equal(t, sav.LabelDeleterious, r.TrueLabel)
}

func TestMergeAmbiguousOnly(t *testing.T) {
	// A lone '?' vote gives no usable information.
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteAmbiguous})))
	require.NoError(t, ds.Finalize())

	r, _ := ds.Get(v1)
	assert.Equal(t, sav.LabelUnknown, r.TrueLabel)
	assert.False(t, dataset.Discordant(r.Votes))
}

func TestTierIndependentOfLabel(t *testing.T) {
	// The authority supplies tier 3 for v1; two other sources disagree
	// about its label. High-confidence discordance stays representable.
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "clinvar", map[sav.Variant]sav.Vote{v1: sav.VoteDeleterious})))
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteNeutral})))
	require.NoError(t, ds.AnnotateTiers("clinvar", map[sav.Variant]sav.ReviewTier{v1: 3}))
	require.NoError(t, ds.Finalize())

	r, _ := ds.Get(v1)
	assert.Equal(t, sav.ReviewTier(3), r.ReviewTier)
	assert.Equal(t, sav.LabelUnknown, r.TrueLabel)
}

func TestTierDefaultsToUnknown(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteNeutral, v2: sav.VoteNeutral})))
	require.NoError(t, ds.AnnotateTiers("clinvar", map[sav.Variant]sav.ReviewTier{v1: 4}))
	require.NoError(t, ds.Finalize())

	r1, _ := ds.Get(v1)
	assert.Equal(t, sav.ReviewTier(4), r1.ReviewTier)
	r2, _ := ds.Get(v2)
	assert.Equal(t, sav.TierUnknown, r2.ReviewTier)
}

func TestAnnotateTiersRejectsMalformed(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteNeutral})))

	err := ds.AnnotateTiers("clinvar", map[sav.Variant]sav.ReviewTier{v1: 7})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMalformedTier)

	// The failed annotation left the record untouched.
	r, _ := ds.Get(v1)
	assert.Equal(t, sav.TierUnknown, r.ReviewTier)
}

func TestMergeIdempotence(t *testing.T) {
	votes := map[sav.Variant]sav.Vote{
		v1: sav.VoteDeleterious,
		v2: sav.VoteNeutral,
		v3: sav.VoteAmbiguous,
	}

	once := dataset.New()
	require.NoError(t, once.Merge(makeTable(t, "a", votes)))
	require.NoError(t, once.Finalize())

	twice := dataset.New()
	require.NoError(t, twice.Merge(makeTable(t, "a", votes)))
	require.NoError(t, twice.Merge(makeTable(t, "a", votes)))
	require.NoError(t, twice.Finalize())

	assert.Equal(t, once.Sources(), twice.Sources())
	if diff := cmp.Diff(snapshot(once), snapshot(twice)); diff != "" {
		t.Errorf("double merge changed the dataset (-once +twice):\n%s", diff)
	}
}

// snapshot flattens a dataset into comparable rows.
func snapshot(ds *dataset.Dataset) [][3]string {
	var rows [][3]string
	for _, r := range ds.Records() {
		rows = append(rows, [3]string{r.Variant.String(), r.TrueLabel.String(), r.Votes.String()})
	}
	return rows
}

func TestMergeAfterFinalizeFails(t *testing.T) {
	ds := dataset.New()
	require.NoError(t, ds.Merge(makeTable(t, "a", map[sav.Variant]sav.Vote{v1: sav.VoteNeutral})))
	require.NoError(t, ds.Finalize())

	err := ds.Merge(makeTable(t, "b", map[sav.Variant]sav.Vote{v2: sav.VoteNeutral}))
	assert.ErrorIs(t, err, errors.ErrFinalized)

	err = ds.AnnotateTiers("clinvar", nil)
	assert.ErrorIs(t, err, errors.ErrFinalized)

	assert.Error(t, ds.Finalize(), "finalizing twice must fail")
}

func TestRecordsKeepInsertionOrder(t *testing.T) {
	ds := dataset.New()
	a := sources.NewTable("a")
	require.NoError(t, a.Add(v2, sav.VoteNeutral))
	require.NoError(t, a.Add(v1, sav.VoteNeutral))
	require.NoError(t, ds.Merge(a))

	b := sources.NewTable("b")
	require.NoError(t, b.Add(v3, sav.VoteDeleterious))
	require.NoError(t, b.Add(v1, sav.VoteDeleterious))
	require.NoError(t, ds.Merge(b))
	require.NoError(t, ds.Finalize())

	var got []sav.Variant
	for _, r := range ds.Records() {
		got = append(got, r.Variant)
	}
	assert.Equal(t, []sav.Variant{v2, v1, v3}, got)
	assert.Equal(t, []string{"a", "b"}, ds.Sources())
}

func TestResolveProperty(t *testing.T) {
	// true_label is LabelUnknown iff the distinct non-ambiguous vote
	// set is empty or contains both values, regardless of counts.
	votes := []sav.Vote{sav.VoteNeutral, sav.VoteDeleterious, sav.VoteAmbiguous}
	names := []string{"s1", "s2", "s3"}

	for _, a := range votes {
		for _, b := range votes {
			for _, c := range votes {
				vs := sav.NewVoteSet()
				combo := []sav.Vote{a, b, c}
				for i, v := range combo {
					vs.Set(names[i], v)
				}

				hasNeutral, hasDeleterious := false, false
				for _, v := range combo {
					switch v {
					case sav.VoteNeutral:
						hasNeutral = true
					case sav.VoteDeleterious:
						hasDeleterious = true
					}
				}

				want := sav.LabelUnknown
				switch {
				case hasNeutral && !hasDeleterious:
					want = sav.LabelNeutral
				case hasDeleterious && !hasNeutral:
					want = sav.LabelDeleterious
				}

				assert.Equal(t, want, dataset.Resolve(vs), "votes %v", combo)
			}
		}
	}
}
