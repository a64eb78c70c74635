// Package sources loads per-source variant label tables: the flat TSV
// files each pathogenicity source ships, and the YAML manifest naming
// the sources to merge and which of them is the review authority.
package sources

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

// Well-known source names. Tables are not restricted to these; they
// only get canonical display titles in reports.
const (
	ClinVar  = "clinvar"
	HumVar   = "humvar"
	ExoVar   = "exovar"
	SwissVar = "swissvar"
	HumsaVar = "humsavar"
)

// displayTitles maps well-known source names to report headings.
var displayTitles = map[string]string{
	ClinVar:  "ClinVar",
	HumVar:   "HumVar",
	ExoVar:   "ExoVar",
	SwissVar: "SwissVar",
	HumsaVar: "Humsavar",
}

// DisplayTitle returns the report heading for a source name.
// Unknown names are title-cased.
func DisplayTitle(name string) string {
	if title, ok := displayTitles[name]; ok {
		return title
	}
	return cases.Title(language.English).String(name)
}

// Entry is one variant's vote within a source table.
type Entry struct {
	Variant sav.Variant
	Vote    sav.Vote
}

// Table is one source's variant -> vote mapping, in file order. A table
// never contains two entries for the same variant; Add rejects the
// duplicate rather than overwriting (see DuplicateVariantError).
type Table struct {
	name    string
	entries []Entry
	index   map[sav.Variant]int
	tiers   map[sav.Variant]sav.ReviewTier
}

// NewTable creates an empty source table.
func NewTable(name string) *Table {
	return &Table{
		name:  name,
		index: make(map[sav.Variant]int),
	}
}

// Name returns the source name.
func (t *Table) Name() string {
	return t.name
}

// Len returns the number of variants in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Add appends a variant's vote. Invalid votes and duplicate variants
// are rejected with typed errors naming the source and variant.
func (t *Table) Add(v sav.Variant, vote sav.Vote) error {
	if err := v.Validate(); err != nil {
		return errors.WrapMerge(t.name, err)
	}
	if !vote.Valid() {
		return errors.NewMalformedVoteError(t.name, v.String(), vote.String())
	}
	if _, exists := t.index[v]; exists {
		return &errors.DuplicateVariantError{Source: t.name, Variant: v.String()}
	}
	t.index[v] = len(t.entries)
	t.entries = append(t.entries, Entry{Variant: v, Vote: vote})
	return nil
}

// Vote returns the table's vote for a variant.
func (t *Table) Vote(v sav.Variant) (sav.Vote, bool) {
	i, ok := t.index[v]
	if !ok {
		return sav.VoteAmbiguous, false
	}
	return t.entries[i].Vote, true
}

// Entries returns the table entries in file order. The slice is a copy.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// SetTier records the review confidence tier the source supplies for a
// variant. Only the authority source's tiers are consulted downstream,
// but any table may carry them.
func (t *Table) SetTier(v sav.Variant, tier sav.ReviewTier) error {
	if !tier.Valid() {
		return errors.NewMalformedTierError(t.name, v.String(), int(tier))
	}
	if t.tiers == nil {
		t.tiers = make(map[sav.Variant]sav.ReviewTier)
	}
	t.tiers[v] = tier
	return nil
}

// Tiers returns the per-variant review tiers the table carries, keyed
// by variant. The map is a copy; nil when the source supplied none.
func (t *Table) Tiers() map[sav.Variant]sav.ReviewTier {
	if t.tiers == nil {
		return nil
	}
	out := make(map[sav.Variant]sav.ReviewTier, len(t.tiers))
	for v, tier := range t.tiers {
		out[v] = tier
	}
	return out
}
