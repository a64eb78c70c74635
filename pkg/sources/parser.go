package sources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sav"
)

// Label-file format, one variant per line, tab separated:
//
//	accession	position	wild_type	mutant	vote[	tier]
//
// vote is one of 0, 1, ?. The optional sixth column carries the
// source's review confidence tier (0-4). Blank lines and lines
// starting with '#' are skipped.

// ParseFile reads a source label file from disk.
func ParseFile(name, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close()

	t, err := Parse(name, f)
	if err != nil {
		// Attach the file path to parse errors for usable diagnostics.
		if perr, ok := err.(*errors.ParseError); ok && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}
	return t, nil
}

// Parse reads a source label table from r. The policy for duplicate
// variants within one source is rejection: the parse fails with a
// DuplicateVariantError naming both line numbers, rather than letting
// the later entry silently win.
func Parse(name string, r io.Reader) (*Table, error) {
	t := NewTable(name)
	lines := make(map[sav.Variant]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, &errors.ParseError{
				Format:  "tsv",
				Line:    lineNo,
				Message: fmt.Sprintf("source %s: want at least 5 tab-separated fields, got %d", name, len(fields)),
			}
		}

		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "tsv",
				Line:    lineNo,
				Message: fmt.Sprintf("source %s: malformed position %q", name, fields[1]),
				Err:     err,
			}
		}

		v := sav.Variant{
			Accession: fields[0],
			Position:  pos,
			WildType:  fields[2],
			Mutant:    fields[3],
		}
		if err := v.Validate(); err != nil {
			return nil, &errors.ParseError{
				Format:  "tsv",
				Line:    lineNo,
				Message: fmt.Sprintf("source %s: invalid variant", name),
				Err:     err,
			}
		}

		vote, ok := sav.ParseVote(fields[4])
		if !ok {
			return nil, errors.NewMalformedVoteError(name, v.String(), fields[4])
		}

		if first, dup := lines[v]; dup {
			return nil, &errors.DuplicateVariantError{
				Source:    name,
				Variant:   v.String(),
				FirstLine: first,
				DupLine:   lineNo,
			}
		}
		lines[v] = lineNo

		if err := t.Add(v, vote); err != nil {
			return nil, err
		}

		if len(fields) >= 6 && fields[5] != "" {
			tier, err := strconv.Atoi(fields[5])
			if err != nil {
				return nil, &errors.ParseError{
					Format:  "tsv",
					Line:    lineNo,
					Message: fmt.Sprintf("source %s: malformed review tier %q", name, fields[5]),
					Err:     err,
				}
			}
			if err := t.SetTier(v, sav.ReviewTier(tier)); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", "", err)
	}

	return t, nil
}
