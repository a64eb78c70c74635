package cmd

import (
	"github.com/spf13/cobra"

	"github.com/variantlab/savset"
	"github.com/variantlab/savset/pkg/logging"
)

var (
	buildManifest string
	buildOut      string
)

// buildCmd merges the manifest's sources into a finalized dataset.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the integrated dataset from a source manifest",
	Long: `Build merges every source listed in the manifest, resolves each
variant's canonical label, annotates review confidence tiers from the
authority source, and writes the finalized dataset.

A malformed vote or a duplicate variant within one source aborts the
whole build; no partial dataset is written.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cur, err := savset.New(savset.WithLogger(*logging.Default()))
		if err != nil {
			return err
		}

		if err := cur.UseManifest(buildManifest); err != nil {
			return err
		}
		if err := cur.Finalize(); err != nil {
			return err
		}
		return cur.Save(buildOut)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildManifest, "manifest", "m", "sources.yaml", "source manifest file")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dataset", "output directory for the dataset")
	rootCmd.AddCommand(buildCmd)
}
