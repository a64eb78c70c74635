// Package savset curates a labelled dataset of human single amino-acid
// variants from multiple pathogenicity-assessment sources. It merges
// the per-source label tables into one Integrated Dataset with
// deterministic conflict resolution, attaches a review confidence tier
// from the designated authority source, and audits the merge with a
// pairwise composition report.
//
// Example usage:
//
//	cur, err := savset.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := cur.AddSourceFile("clinvar", "data/clinvar.tsv"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cur.AddSourceFile("humvar", "data/humvar.tsv"); err != nil {
//	    log.Fatal(err)
//	}
//	cur.SetAuthority("clinvar")
//
//	if err := cur.Finalize(); err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, err := cur.Report()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rep.RenderTable(os.Stdout)
package savset

import (
	"github.com/rs/zerolog"

	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/logging"
	"github.com/variantlab/savset/pkg/report"
	"github.com/variantlab/savset/pkg/sav"
	"github.com/variantlab/savset/pkg/sources"
)

// Curator builds one Integrated Dataset. It is a batch builder, not a
// live store: add sources, finalize, then read.
type Curator interface {
	// AddSource merges one source table into the dataset.
	AddSource(t *sources.Table) error

	// AddSourceFile parses a label file and merges it.
	AddSourceFile(name, path string) error

	// UseManifest ingests every source a sources.yaml manifest names,
	// in manifest order, honoring its authority marker.
	UseManifest(path string) error

	// SetAuthority designates the review-confidence authority source.
	SetAuthority(name string)

	// Finalize annotates review tiers, resolves every record's label,
	// and seals the dataset.
	Finalize() error

	// Dataset returns the finalized dataset.
	Dataset() (*dataset.Dataset, error)

	// Report computes the composition report over the finalized dataset.
	Report() (*report.Report, error)

	Persistence
}

// curator is the internal implementation of the Curator interface
type curator struct {
	logger    zerolog.Logger
	ds        *dataset.Dataset
	authority string
	tiers     map[string]map[sav.Variant]sav.ReviewTier
}

// New creates a new Curator with the given options.
func New(opts ...Option) (Curator, error) {
	c := &curator{
		logger: *logging.Default(),
		ds:     dataset.New(),
		tiers:  make(map[string]map[sav.Variant]sav.ReviewTier),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.NewConfigError("curator", "applying option", err)
		}
	}

	return c, nil
}

// AddSource merges one source table into the dataset.
func (c *curator) AddSource(t *sources.Table) error {
	if err := c.ds.Merge(t); err != nil {
		return err
	}
	if tiers := t.Tiers(); tiers != nil {
		c.tiers[t.Name()] = tiers
	}

	c.logger.Info().
		Str("source", t.Name()).
		Int("variants", t.Len()).
		Int("total", c.ds.Len()).
		Msg("Merged source")
	return nil
}

// AddSourceFile parses a label file and merges it.
func (c *curator) AddSourceFile(name, path string) error {
	t, err := sources.ParseFile(name, path)
	if err != nil {
		c.logger.Error().Err(err).Str("source", name).Str("path", path).Msg("Rejected source table")
		return err
	}
	return c.AddSource(t)
}

// UseManifest ingests every source the manifest names, in order.
func (c *curator) UseManifest(path string) error {
	m, err := sources.LoadManifest(path)
	if err != nil {
		return err
	}

	tables, err := m.LoadTables()
	if err != nil {
		return err
	}
	for _, t := range tables {
		if err := c.AddSource(t); err != nil {
			return err
		}
	}

	if authority := m.Authority(); authority != "" {
		c.SetAuthority(authority)
	}
	return nil
}

// SetAuthority designates the review-confidence authority source.
func (c *curator) SetAuthority(name string) {
	c.authority = name
}

// Finalize annotates tiers from the authority source, resolves all
// labels, and seals the dataset.
func (c *curator) Finalize() error {
	if c.authority != "" {
		tiers := c.tiers[c.authority]
		if err := c.ds.AnnotateTiers(c.authority, tiers); err != nil {
			return err
		}
	}
	if err := c.ds.Finalize(); err != nil {
		return err
	}

	c.logger.Info().
		Int("records", c.ds.Len()).
		Strs("sources", c.ds.Sources()).
		Str("authority", c.authority).
		Msg("Finalized dataset")
	return nil
}

// Dataset returns the finalized dataset.
func (c *curator) Dataset() (*dataset.Dataset, error) {
	if !c.ds.Finalized() {
		return nil, errors.ErrNotFinalized
	}
	return c.ds, nil
}

// Report computes the composition report over the finalized dataset.
func (c *curator) Report() (*report.Report, error) {
	return report.Compute(c.ds)
}
