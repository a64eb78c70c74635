package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

// Load reads a dataset previously written by Save. The loaded dataset
// is finalized: it can be reported on and re-saved, but not merged
// into. Round-tripping preserves coordinates, labels, review tiers,
// and the full per-source vote mapping.
func Load(dir string) (*Dataset, error) {
	sidecar, err := loadSidecar(filepath.Join(dir, SidecarFile))
	if err != nil {
		return nil, err
	}

	d := New()
	d.sources = sidecar.Sources
	d.authority = sidecar.Authority

	if err := d.loadTable(filepath.Join(dir, TableFile)); err != nil {
		return nil, err
	}
	if err := verifySidecar(d, sidecar); err != nil {
		return nil, err
	}

	d.finalized = true
	return d, nil
}

func loadSidecar(path string) (*Sidecar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var sc Sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &sc, nil
}

func (d *Dataset) loadTable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\n")
		if lineNo == 1 {
			if line != TSVHeader {
				return &errors.ParseError{
					Format:  "tsv",
					File:    path,
					Line:    1,
					Message: fmt.Sprintf("unexpected header %q", line),
				}
			}
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return &errors.ParseError{
				Format:  "tsv",
				File:    path,
				Line:    lineNo,
				Message: fmt.Sprintf("want 4 fields, got %d", len(fields)),
			}
		}

		variant, err := sav.ParseVariant(fields[0])
		if err != nil {
			return &errors.ParseError{Format: "tsv", File: path, Line: lineNo, Message: "bad variant", Err: err}
		}
		label, ok := sav.ParseLabel(fields[1])
		if !ok {
			return &errors.ParseError{
				Format:  "tsv",
				File:    path,
				Line:    lineNo,
				Message: fmt.Sprintf("bad label %q", fields[1]),
			}
		}
		votes, err := sav.ParseVoteSet(fields[2])
		if err != nil {
			return &errors.ParseError{Format: "tsv", File: path, Line: lineNo, Message: "bad provenance", Err: err}
		}
		if votes.Len() == 0 {
			return &errors.ParseError{
				Format:  "tsv",
				File:    path,
				Line:    lineNo,
				Message: fmt.Sprintf("variant %s has no source votes", variant),
			}
		}
		tier, err := strconv.Atoi(fields[3])
		if err != nil || !sav.ReviewTier(tier).Valid() {
			return &errors.ParseError{
				Format:  "tsv",
				File:    path,
				Line:    lineNo,
				Message: fmt.Sprintf("bad review tier %q", fields[3]),
				Err:     err,
			}
		}

		if _, exists := d.records[variant]; exists {
			return &errors.DuplicateVariantError{
				Source:  "dataset",
				Variant: variant.String(),
				DupLine: lineNo,
			}
		}
		d.records[variant] = &Record{
			Variant:    variant,
			TrueLabel:  label,
			Votes:      votes,
			ReviewTier: sav.ReviewTier(tier),
		}
		d.order = append(d.order, variant)
	}
	if err := scanner.Err(); err != nil {
		return errors.WrapIO("read", path, err)
	}
	return nil
}
