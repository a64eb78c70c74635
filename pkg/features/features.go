// Package features defines the contract with the external
// feature-computation collaborator and joins its output with the
// Integrated Dataset into the training table.
//
// The collaborator computes, per variant, a fixed-schema numeric
// feature row plus structure-mapping metadata. Variants it cannot map
// come back flagged unmapped with NaN numerics; the join keeps them,
// since losing a labelled example is worse than a partially missing
// feature row. Feature values are never inspected or validated here.
package features

import (
	"context"
	"math"

	"github.com/variantlab/savset/pkg/sav"
)

// Row is one variant's feature output.
type Row struct {
	// Variant the row belongs to.
	Variant sav.Variant

	// Mapped is false when the collaborator could not map the variant
	// to structural data. Unmapped rows carry NaN Values.
	Mapped bool

	// Structure is the structure-mapping string (e.g. a PDB chain
	// identifier). Empty for unmapped rows.
	Structure string

	// ResidueCount is the mapped structure's residue count, 0 when
	// unmapped.
	ResidueCount int

	// Values are the numeric features, one per schema column.
	Values []float64
}

// Computer is the external feature-computation collaborator.
type Computer interface {
	// Schema returns the ordered feature column names. Every Row's
	// Values slice has exactly this length.
	Schema() []string

	// Compute returns one Row per requested variant, in request
	// order. Variants the computer cannot map are returned unmapped,
	// never omitted.
	Compute(ctx context.Context, variants []sav.Variant) ([]Row, error)
}

// UnmappedRow builds the sentinel row for a variant the computer
// cannot map: NaN in every numeric field.
func UnmappedRow(v sav.Variant, schema []string) Row {
	values := make([]float64, len(schema))
	for i := range values {
		values[i] = math.NaN()
	}
	return Row{Variant: v, Values: values}
}
