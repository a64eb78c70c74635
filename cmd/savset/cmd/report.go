package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/variantlab/savset"
	"github.com/variantlab/savset/pkg/report"
)

var (
	reportDir    string
	reportFormat string
)

// reportCmd computes the composition report over a saved dataset.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report pairwise agreement and bias over a saved dataset",
	Long: `Report loads a saved dataset and prints its composition summary:
per-source labelled counts, ambiguous counts, and positive-case bias
on the diagonal, and shared-variant overlap with discordance counts
for every source pair.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		ds, err := savset.Open(reportDir)
		if err != nil {
			return err
		}

		rep, err := report.Compute(ds)
		if err != nil {
			return err
		}
		return rep.Render(os.Stdout, report.Format(reportFormat))
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportDir, "dataset", "d", "dataset", "directory of a saved dataset")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "table", "output format (table, markdown, yaml)")
	rootCmd.AddCommand(reportCmd)
}
