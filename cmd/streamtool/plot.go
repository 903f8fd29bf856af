package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	stream "github.com/sxtoolbox/gostream"
	"github.com/sxtoolbox/gostream/histo"
	"github.com/sxtoolbox/gostream/streamplot"
)

type plotOptions struct {
	input  string
	output string
	bins   int
}

// NewPlotCmd creates the plot subcommand.
func NewPlotCmd() *cobra.Command {
	opts := &plotOptions{}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot histograms of the unit cell parameters",
		Long: `Write one PNG histogram per unit cell parameter of all the crystals in a stream
file: <prefix>_a.png, <prefix>_b.png, <prefix>_c.png for the axes and
<prefix>_alpha.png, <prefix>_beta.png, <prefix>_gamma.png for the angles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlot(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input stream file (plain, .zst or .gz)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Prefix of the output files (default: the input name)")
	cmd.Flags().IntVar(&opts.bins, "bins", 0, "Number of histogram bins (default from the configuration)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runPlot(cmd *cobra.Command, opts *plotOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	bins := e.cfg.Bins
	if cmd.Flags().Changed("bins") {
		if opts.bins <= 0 {
			return fmt.Errorf("invalid number of bins %d: must be positive", opts.bins)
		}
		bins = opts.bins
	}
	S, err := e.read(opts.input)
	if err != nil {
		return err
	}
	crystals := stream.FlattenCrystals(S.Frames)
	if len(crystals) == 0 {
		return fmt.Errorf("%s: no crystals to plot", opts.input)
	}
	if err := e.outputDir(); err != nil {
		return err
	}
	hs := histo.CellHistograms(crystals, bins)
	prefix := e.prefix(opts.output, opts.input)
	size := vg.Length(e.cfg.PlotSize) * vg.Inch
	names, err := streamplot.SaveCellHistograms(hs, stream.PrefixFromPath(opts.input), prefix, size)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "Saving histogram to %s\n", n)
	}
	return nil
}
