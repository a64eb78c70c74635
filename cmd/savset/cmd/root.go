// Package cmd implements the savset CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/variantlab/savset/cmd/savset/app"
	"github.com/variantlab/savset/pkg/logging"
)

var (
	configFile string
	verbose    bool
	quiet      bool
	logLevel   string

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "savset",
	Short: "Curated SAV dataset builder",
	Long: `Savset builds a labelled dataset of human single amino-acid variants
from multiple pathogenicity-assessment sources.

It merges per-source label tables into one integrated dataset with
deterministic conflict resolution, attaches review confidence tiers
from the designated authority source, reports pairwise agreement
statistics over the merge, and joins precomputed structural features
into a training table for a downstream classifier.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.savset.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (warnings and errors only)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	// Bind flags to viper
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("Failed to bind verbose flag: %v", err))
	}
	if err := viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet")); err != nil {
		panic(fmt.Sprintf("Failed to bind quiet flag: %v", err))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.Set("config", configFile)
	}
}

// setupCommand loads configuration and installs the logger before any
// subcommand runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	config, err := app.LoadConfig()
	if err != nil {
		return err
	}
	config.UpdateFromFlags(verbose, quiet, logLevel)

	logger := app.NewLogger(config)
	logging.SetDefault(logger)
	return nil
}
