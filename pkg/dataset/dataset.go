// Package dataset implements the Integrated Dataset: a keyed store of
// variant records built by unioning per-source label tables, with
// deterministic conflict resolution and review-confidence annotation.
//
// Lifecycle is strict: merge sources, annotate tiers, finalize, then
// read. Finalization resolves every record's label and freezes the
// store; reporting and persistence require a finalized dataset and
// never mutate it.
package dataset

import (
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
	"github.com/variantlab/savset/pkg/sources"
)

// Record is one unique variant's entry in the Integrated Dataset.
type Record struct {
	// Variant is the identity tuple the record is keyed by.
	Variant sav.Variant

	// TrueLabel is the canonical resolved label. LabelUnknown until
	// the dataset is finalized.
	TrueLabel sav.Label

	// Votes holds each contributing source's vote, in merge order.
	Votes *sav.VoteSet

	// ReviewTier is the authority source's confidence tier, or
	// TierUnknown when the variant is absent from the authority.
	ReviewTier sav.ReviewTier
}

// Dataset is the unioned variant table. Not safe for concurrent
// mutation; the build is a single-pass batch job.
type Dataset struct {
	records   map[sav.Variant]*Record
	order     []sav.Variant
	sources   []string
	authority string
	finalized bool
}

// New creates an empty dataset.
func New() *Dataset {
	return &Dataset{
		records: make(map[sav.Variant]*Record),
	}
}

// Len returns the number of unique variants.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Sources returns the merged source names in merge order.
func (d *Dataset) Sources() []string {
	out := make([]string, len(d.sources))
	copy(out, d.sources)
	return out
}

// Authority returns the review authority source name, or "".
func (d *Dataset) Authority() string {
	return d.authority
}

// Finalized reports whether the dataset has been sealed.
func (d *Dataset) Finalized() bool {
	return d.finalized
}

// Get returns the record for a variant.
func (d *Dataset) Get(v sav.Variant) (*Record, bool) {
	r, ok := d.records[v]
	return r, ok
}

// Records returns all records in first-seen order. Callers must not
// mutate records of a finalized dataset.
func (d *Dataset) Records() []*Record {
	out := make([]*Record, 0, len(d.order))
	for _, v := range d.order {
		out = append(out, d.records[v])
	}
	return out
}

// Merge folds one source table into the dataset. Each variant in the
// table gets the source's vote recorded on its record, creating the
// record on first sight. Re-merging a source name that was already
// merged overwrites that source's votes and is otherwise a no-op, so
// Merge is idempotent per source.
//
// Vote validity and within-source uniqueness are enforced by
// sources.Table at construction, which is what makes the fold-in
// atomic: nothing here can fail halfway through.
func (d *Dataset) Merge(t *sources.Table) error {
	if d.finalized {
		return errors.WrapMerge(t.Name(), errors.ErrFinalized)
	}

	if !d.hasSource(t.Name()) {
		d.sources = append(d.sources, t.Name())
	}

	for _, e := range t.Entries() {
		r, ok := d.records[e.Variant]
		if !ok {
			r = &Record{
				Variant:    e.Variant,
				TrueLabel:  sav.LabelUnknown,
				Votes:      sav.NewVoteSet(),
				ReviewTier: sav.TierUnknown,
			}
			d.records[e.Variant] = r
			d.order = append(d.order, e.Variant)
		}
		r.Votes.Set(t.Name(), e.Vote)
	}
	return nil
}

// AnnotateTiers joins the authority source's per-variant review tiers
// onto the dataset. Variants absent from the tier map keep TierUnknown;
// tier entries for variants outside the dataset are ignored. All tiers
// are validated before any record is touched, so a malformed tier
// leaves the dataset unchanged.
func (d *Dataset) AnnotateTiers(authority string, tiers map[sav.Variant]sav.ReviewTier) error {
	if d.finalized {
		return errors.WrapMerge(authority, errors.ErrFinalized)
	}

	for v, tier := range tiers {
		if !tier.Valid() {
			return errors.NewMalformedTierError(authority, v.String(), int(tier))
		}
	}

	d.authority = authority
	for v, tier := range tiers {
		if r, ok := d.records[v]; ok {
			r.ReviewTier = tier
		}
	}
	return nil
}

// Finalize resolves every record's label and seals the dataset.
// Finalizing an already-finalized dataset is an error.
func (d *Dataset) Finalize() error {
	if d.finalized {
		return errors.ErrFinalized
	}
	for _, v := range d.order {
		r := d.records[v]
		r.TrueLabel = Resolve(r.Votes)
	}
	d.finalized = true
	return nil
}

func (d *Dataset) hasSource(name string) bool {
	for _, s := range d.sources {
		if s == name {
			return true
		}
	}
	return false
}
