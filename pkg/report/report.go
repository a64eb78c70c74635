// Package report computes the pairwise composition summary used to
// audit a merged dataset: per-pair overlap and discordance, and
// per-source labelled counts and positive-case bias.
package report

import (
	"math"

	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

// Summary is one source's diagonal cell.
type Summary struct {
	// Source is the source name.
	Source string `yaml:"source"`

	// Labelled counts the source's non-ambiguous votes.
	Labelled int `yaml:"labelled"`

	// Ambiguous counts the source's '?' votes.
	Ambiguous int `yaml:"ambiguous,omitempty"`

	// Bias is 100 * positives / (positives + negatives), rounded to
	// one decimal. NaN when the source has no non-ambiguous votes.
	Bias float64 `yaml:"bias"`
}

// Pair is one off-diagonal cell of the lower triangle.
type Pair struct {
	// A is the row source; it appears after B in merge order.
	A string `yaml:"a"`

	// B is the column source.
	B string `yaml:"b"`

	// Shared counts variants where both sources voted non-ambiguously.
	Shared int `yaml:"shared"`

	// Discordant counts shared variants where the two votes differ.
	Discordant int `yaml:"discordant,omitempty"`
}

// Report is the composition summary over a finalized dataset: the
// diagonal per source plus the lower triangle of source pairs, both in
// the dataset's merge order. Recomputing over the same dataset yields
// an identical report.
type Report struct {
	Sources    []string  `yaml:"sources"`
	Records    int       `yaml:"records"`
	Labelled   int       `yaml:"labelled"`
	Discordant int       `yaml:"discordant"`
	Diagonal   []Summary `yaml:"diagonal"`
	Pairs      []Pair    `yaml:"pairs"`
}

// Compute builds the composition report. The dataset must be
// finalized; Compute only reads it.
func Compute(ds *dataset.Dataset) (*Report, error) {
	if !ds.Finalized() {
		return nil, errors.ErrNotFinalized
	}

	names := ds.Sources()
	records := ds.Records()

	r := &Report{
		Sources: names,
		Records: len(records),
	}

	for _, rec := range records {
		if rec.TrueLabel.Known() {
			r.Labelled++
		}
		if dataset.Discordant(rec.Votes) {
			r.Discordant++
		}
	}

	for i, a := range names {
		r.Diagonal = append(r.Diagonal, summarize(a, records))
		for j := 0; j < i; j++ {
			r.Pairs = append(r.Pairs, compare(a, names[j], records))
		}
	}
	return r, nil
}

// summarize builds one source's diagonal cell.
func summarize(source string, records []*dataset.Record) Summary {
	s := Summary{Source: source, Bias: math.NaN()}
	positives, negatives := 0, 0
	for _, rec := range records {
		vote, ok := rec.Votes.Get(source)
		if !ok {
			continue
		}
		switch vote {
		case sav.VoteDeleterious:
			positives++
		case sav.VoteNeutral:
			negatives++
		case sav.VoteAmbiguous:
			s.Ambiguous++
		}
	}
	s.Labelled = positives + negatives
	// Bias stays NaN on a zero denominator rather than dividing.
	if s.Labelled > 0 {
		s.Bias = round1(100 * float64(positives) / float64(s.Labelled))
	}
	return s
}

// compare builds one off-diagonal cell. Overlap is symmetric in the
// two sources; only the lower-triangle orientation is stored.
func compare(a, b string, records []*dataset.Record) Pair {
	p := Pair{A: a, B: b}
	for _, rec := range records {
		va, ok := rec.Votes.Get(a)
		if !ok || va.Ambiguous() {
			continue
		}
		vb, ok := rec.Votes.Get(b)
		if !ok || vb.Ambiguous() {
			continue
		}
		p.Shared++
		if va != vb {
			p.Discordant++
		}
	}
	return p
}

// Pair returns the cell for a source pair in either orientation.
func (r *Report) Pair(a, b string) (Pair, bool) {
	for _, p := range r.Pairs {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return p, true
		}
	}
	return Pair{}, false
}

// Summary returns the diagonal cell for a source.
func (r *Report) Summary(source string) (Summary, bool) {
	for _, s := range r.Diagonal {
		if s.Source == source {
			return s, true
		}
	}
	return Summary{}, false
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
