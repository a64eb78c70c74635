package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"

	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/sources"
)

// Format identifies a report rendering.
type Format string

const (
	// FormatTable renders a text matrix for terminals.
	FormatTable Format = "table"
	// FormatMarkdown renders a markdown document.
	FormatMarkdown Format = "markdown"
	// FormatYAML renders the report structure as YAML.
	FormatYAML Format = "yaml"
)

// Render writes the report to w in the requested format.
func (r *Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatTable, "":
		return r.RenderTable(w)
	case FormatMarkdown:
		return r.RenderMarkdown(w)
	case FormatYAML:
		return r.RenderYAML(w)
	default:
		return errors.NewValidationError("format", string(format), "must be one of: table, markdown, yaml")
	}
}

// RenderTable writes the composition matrix as a text table. Rows and
// columns follow merge order; the upper triangle is left blank.
func (r *Report) RenderTable(w io.Writer) error {
	table := tablewriter.NewTable(w)

	header := make([]any, 0, len(r.Sources)+1)
	header = append(header, "")
	for _, name := range r.Sources {
		header = append(header, sources.DisplayTitle(name))
	}
	table.Header(header...)

	for i, name := range r.Sources {
		row := make([]any, 0, len(r.Sources)+1)
		row = append(row, sources.DisplayTitle(name))
		for j := range r.Sources {
			row = append(row, r.cell(i, j))
		}
		if err := table.Append(row...); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d records, %d labelled, %d discordant\n", r.Records, r.Labelled, r.Discordant)
	return nil
}

// RenderMarkdown writes the report as a markdown document.
func (r *Report) RenderMarkdown(w io.Writer) error {
	doc := md.NewMarkdown(w)

	doc.H1("Dataset composition").
		PlainTextf("%d records across %d sources: %d labelled, %d discordant.",
			r.Records, len(r.Sources), r.Labelled, r.Discordant).
		LF()

	doc.H2("Per-source summary")
	summaryRows := make([][]string, 0, len(r.Diagonal))
	for _, s := range r.Diagonal {
		summaryRows = append(summaryRows, []string{
			sources.DisplayTitle(s.Source),
			strconv.Itoa(s.Labelled),
			strconv.Itoa(s.Ambiguous),
			formatBias(s.Bias),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Source", "Labelled", "Ambiguous", "Bias %"},
		Rows:   summaryRows,
	})

	if len(r.Pairs) > 0 {
		doc.H2("Pairwise agreement")
		pairRows := make([][]string, 0, len(r.Pairs))
		for _, p := range r.Pairs {
			pairRows = append(pairRows, []string{
				sources.DisplayTitle(p.A),
				sources.DisplayTitle(p.B),
				strconv.Itoa(p.Shared),
				strconv.Itoa(p.Discordant),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Source", "Source", "Shared", "Discordant"},
			Rows:   pairRows,
		})
	}

	return doc.Build()
}

// RenderYAML writes the report structure as YAML.
func (r *Report) RenderYAML(w io.Writer) error {
	data, err := yaml.MarshalWithOptions(r,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// cell formats the matrix cell for row i, column j.
func (r *Report) cell(i, j int) string {
	switch {
	case i == j:
		s := r.Diagonal[i]
		out := strconv.Itoa(s.Labelled)
		if s.Ambiguous > 0 {
			out += fmt.Sprintf(" (%d ?)", s.Ambiguous)
		}
		bias := formatBias(s.Bias)
		if !math.IsNaN(s.Bias) {
			bias += "%"
		}
		return out + " | " + bias
	case j < i:
		p, _ := r.Pair(r.Sources[i], r.Sources[j])
		if p.Discordant == 0 {
			return strconv.Itoa(p.Shared)
		}
		return fmt.Sprintf("%d (%d disc.)", p.Shared, p.Discordant)
	default:
		return ""
	}
}

// formatBias renders a bias value, with NaN shown as n/a.
func formatBias(bias float64) string {
	if math.IsNaN(bias) {
		return "n/a"
	}
	return strconv.FormatFloat(bias, 'f', 1, 64)
}
