package features

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/variantlab/savset/pkg/dataset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

// TrainingTable is the joined output handed to the downstream
// classifier: one row per dataset record, dataset columns first, then
// the collaborator's metadata and feature columns.
type TrainingTable struct {
	// Schema is the ordered feature column names.
	Schema []string

	// Rows follow the dataset's record order.
	Rows []TrainingRow
}

// TrainingRow pairs one dataset record with its feature row.
type TrainingRow struct {
	Record   *dataset.Record
	Features Row
}

// Join computes features for every record of a finalized dataset and
// joins them into the training table. Every record survives into the
// output; unmappable variants carry NaN feature values.
func Join(ctx context.Context, ds *dataset.Dataset, computer Computer) (*TrainingTable, error) {
	if !ds.Finalized() {
		return nil, errors.ErrNotFinalized
	}

	records := ds.Records()
	request := make([]sav.Variant, 0, len(records))
	for _, r := range records {
		request = append(request, r.Variant)
	}

	rows, err := computer.Compute(ctx, request)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(records) {
		return nil, errors.NewValidationError("features", len(rows),
			fmt.Sprintf("computer returned %d rows for %d variants", len(rows), len(records)))
	}

	table := &TrainingTable{
		Schema: computer.Schema(),
		Rows:   make([]TrainingRow, 0, len(records)),
	}
	for i, r := range records {
		if rows[i].Variant != r.Variant {
			return nil, errors.NewValidationError("features", rows[i].Variant.String(),
				fmt.Sprintf("computer returned row for %s at position %d, want %s", rows[i].Variant, i, r.Variant))
		}
		table.Rows = append(table.Rows, TrainingRow{Record: r, Features: rows[i]})
	}
	return table, nil
}

// WriteTSV writes the training table. Column order is fixed: the
// variant coordinate string, true_label, review_tier, structure,
// residue_count, then the feature columns. NaN values are written as
// "NaN", which pandas and R both read back natively.
func (t *TrainingTable) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := append([]string{"variant", "true_label", "review_tier", "structure", "residue_count"}, t.Schema...)
	fmt.Fprintln(bw, strings.Join(header, "\t"))

	for _, row := range t.Rows {
		structure := row.Features.Structure
		if !row.Features.Mapped {
			structure = unmappedMarker
		}
		fields := []string{
			row.Record.Variant.String(),
			row.Record.TrueLabel.String(),
			strconv.Itoa(int(row.Record.ReviewTier)),
			structure,
			strconv.Itoa(row.Features.ResidueCount),
		}
		for _, val := range row.Features.Values {
			fields = append(fields, strconv.FormatFloat(val, 'g', -1, 64))
		}
		fmt.Fprintln(bw, strings.Join(fields, "\t"))
	}
	return bw.Flush()
}
