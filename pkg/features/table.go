package features

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

// TableComputer serves feature rows from a precomputed feature table,
// the usual handoff format from the structural feature pipeline. The
// file is TSV with a header row:
//
//	accession	position	wild_type	mutant	structure	residue_count	<feature...>
//
// A structure field of "." marks a variant the pipeline could not map;
// its numeric fields are ignored and served as NaN. Variants absent
// from the file entirely are likewise served unmapped.
type TableComputer struct {
	schema []string
	rows   map[sav.Variant]Row
}

const unmappedMarker = "."

var _ Computer = (*TableComputer)(nil)

// OpenTable reads a precomputed feature table from disk.
func OpenTable(path string) (*TableComputer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	tc, err := ReadTable(f)
	if err != nil {
		if perr, ok := err.(*errors.ParseError); ok && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}
	return tc, nil
}

// ReadTable parses a precomputed feature table.
func ReadTable(r io.Reader) (*TableComputer, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	tc := &TableComputer{rows: make(map[sav.Variant]Row)}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if lineNo == 1 {
			if len(fields) < 7 || fields[0] != "accession" || fields[4] != "structure" || fields[5] != "residue_count" {
				return nil, &errors.ParseError{
					Format:  "tsv",
					Line:    1,
					Message: "feature table header must start with accession, position, wild_type, mutant, structure, residue_count",
				}
			}
			tc.schema = append(tc.schema, fields[6:]...)
			continue
		}

		if len(fields) != 6+len(tc.schema) {
			return nil, &errors.ParseError{
				Format:  "tsv",
				Line:    lineNo,
				Message: fmt.Sprintf("want %d fields, got %d", 6+len(tc.schema), len(fields)),
			}
		}

		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &errors.ParseError{Format: "tsv", Line: lineNo, Message: "malformed position", Err: err}
		}
		v := sav.Variant{Accession: fields[0], Position: pos, WildType: fields[2], Mutant: fields[3]}
		if err := v.Validate(); err != nil {
			return nil, &errors.ParseError{Format: "tsv", Line: lineNo, Message: "invalid variant", Err: err}
		}
		if _, dup := tc.rows[v]; dup {
			return nil, &errors.DuplicateVariantError{Source: "features", Variant: v.String(), DupLine: lineNo}
		}

		if fields[4] == unmappedMarker {
			tc.rows[v] = UnmappedRow(v, tc.schema)
			continue
		}

		residues, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, &errors.ParseError{Format: "tsv", Line: lineNo, Message: "malformed residue count", Err: err}
		}

		row := Row{
			Variant:      v,
			Mapped:       true,
			Structure:    fields[4],
			ResidueCount: residues,
			Values:       make([]float64, len(tc.schema)),
		}
		for i, tok := range fields[6:] {
			val, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &errors.ParseError{
					Format:  "tsv",
					Line:    lineNo,
					Message: fmt.Sprintf("malformed feature value %q in column %s", tok, tc.schema[i]),
					Err:     err,
				}
			}
			row.Values[i] = val
		}
		tc.rows[v] = row
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "", err)
	}
	if tc.schema == nil {
		return nil, &errors.ParseError{Format: "tsv", Message: "feature table has no header row"}
	}

	return tc, nil
}

// Schema returns the feature column names.
func (tc *TableComputer) Schema() []string {
	out := make([]string, len(tc.schema))
	copy(out, tc.schema)
	return out
}

// Compute serves one row per requested variant, in request order.
func (tc *TableComputer) Compute(ctx context.Context, variants []sav.Variant) ([]Row, error) {
	out := make([]Row, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row, ok := tc.rows[v]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, UnmappedRow(v, tc.schema))
	}
	return out, nil
}
