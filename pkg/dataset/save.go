package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/variantlab/savset/pkg/errors"
)

// On-disk layout: <dir>/dataset.tsv carries the record table,
// <dir>/dataset.yaml the sidecar manifest (source order, authority,
// counts). Field order in the TSV is fixed and documented by TSVHeader.
const (
	// TableFile is the record table file name.
	TableFile = "dataset.tsv"

	// SidecarFile is the manifest file name.
	SidecarFile = "dataset.yaml"

	// TSVHeader is the record table's fixed column order: the variant
	// coordinate string, the canonical ternary label, the provenance
	// string (sav.VoteSet form, round-trippable), and the review tier
	// with -1 for absent.
	TSVHeader = "variant\ttrue_label\tsource_votes\treview_tier"

	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Sidecar is the YAML manifest persisted alongside the record table.
type Sidecar struct {
	Sources    []string `yaml:"sources"`
	Authority  string   `yaml:"authority,omitempty"`
	Records    int      `yaml:"records"`
	Labelled   int      `yaml:"labelled"`
	Discordant int      `yaml:"discordant"`
}

// Save writes the finalized dataset to dir.
func (d *Dataset) Save(dir string) error {
	if !d.finalized {
		return errors.ErrNotFinalized
	}

	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	if err := d.saveTable(filepath.Join(dir, TableFile)); err != nil {
		return err
	}
	return d.saveSidecar(filepath.Join(dir, SidecarFile))
}

func (d *Dataset) saveTable(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, TSVHeader)
	for _, r := range d.Records() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.Variant, r.TrueLabel, r.Votes, r.ReviewTier)
	}
	if err := w.Flush(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

func (d *Dataset) saveSidecar(path string) error {
	labelled, discordant := 0, 0
	for _, r := range d.Records() {
		if r.TrueLabel.Known() {
			labelled++
		}
		if Discordant(r.Votes) {
			discordant++
		}
	}

	sidecar := Sidecar{
		Sources:    d.Sources(),
		Authority:  d.authority,
		Records:    d.Len(),
		Labelled:   labelled,
		Discordant: discordant,
	}

	data, err := yaml.MarshalWithOptions(sidecar,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// verifySidecar checks a loaded sidecar against the reconstructed
// dataset; a mismatch means the two files drifted apart.
func verifySidecar(d *Dataset, sc *Sidecar) error {
	if sc.Records != d.Len() {
		return errors.NewValidationError("records", sc.Records,
			fmt.Sprintf("sidecar claims %d records, table has %d", sc.Records, d.Len()))
	}
	for _, name := range sc.Sources {
		if name == "" {
			return errors.NewValidationError("sources", name, "empty source name")
		}
	}
	return nil
}
