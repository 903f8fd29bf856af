package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// NewRootCmd creates the root command for streamtool.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streamtool",
		Short: "Summarize and subsample CrystFEL stream files",
		Long: `streamtool reads CrystFEL stream files (plain, .zst or .gz) and reports their
indexing statistics, writes random subsets of the indexed images or of the single
crystals to new stream files, and plots histograms of the unit cell axes.

Default values can be set in a YAML file: --config, ./.streamtool.yaml or
$XDG_CONFIG_HOME/streamtool/config.yaml, in that order. Flags override it.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "", "Configuration file (YAML)")

	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewImagesCmd())
	cmd.AddCommand(NewCrystalsCmd())
	cmd.AddCommand(NewPlotCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
