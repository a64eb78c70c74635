package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/variantlab/savset"
	"github.com/variantlab/savset/pkg/errors"
	"github.com/variantlab/savset/pkg/features"
	"github.com/variantlab/savset/pkg/logging"
)

var (
	exportDir      string
	exportFeatures string
	exportOut      string
)

// exportCmd joins a saved dataset with precomputed features into the
// training table.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the training table for the downstream classifier",
	Long: `Export joins a saved dataset with a precomputed feature table and
writes the training table. Every dataset record survives the join;
variants the feature pipeline could not map to structural data get
NaN-filled numeric fields rather than being dropped.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := savset.Open(exportDir)
		if err != nil {
			return err
		}

		computer, err := features.OpenTable(exportFeatures)
		if err != nil {
			return err
		}

		table, err := features.Join(cmd.Context(), ds, computer)
		if err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return errors.WrapIO("create", exportOut, err)
		}
		defer f.Close()

		if err := table.WriteTSV(f); err != nil {
			return errors.WrapIO("write", exportOut, err)
		}

		unmapped := 0
		for _, row := range table.Rows {
			if !row.Features.Mapped {
				unmapped++
			}
		}
		logging.Info().
			Int("rows", len(table.Rows)).
			Int("unmapped", unmapped).
			Str("out", exportOut).
			Msg("Exported training table")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "dataset", "d", "dataset", "directory of a saved dataset")
	exportCmd.Flags().StringVar(&exportFeatures, "features", "features.tsv", "precomputed feature table")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "training.tsv", "output training table")
	rootCmd.AddCommand(exportCmd)
}
