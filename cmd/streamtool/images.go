package main

import (
	"fmt"

	"github.com/spf13/cobra"

	stream "github.com/sxtoolbox/gostream"
)

// exportOptions are the flags shared by the images and crystals subcommands.
type exportOptions struct {
	input  string
	output string
	number int
	seed   uint64
}

func (o *exportOptions) addFlags(cmd *cobra.Command, what string) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "Input stream file (plain, .zst or .gz)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Prefix of the output file (default: the input name)")
	cmd.Flags().IntVarP(&o.number, "number", "n", 0, fmt.Sprintf("Number of random %s to write, 0 for all of them", what))
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "Seed for a reproducible selection")
	_ = cmd.MarkFlagRequired("input")
}

// NewImagesCmd creates the images subcommand.
func NewImagesCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "images",
		Short: "Write random indexed images to a new stream file",
		Long: `Write a random selection of the indexed images of a stream file, with all their
crystals, to <prefix>_<n>indexed_images.stream. Images indexed by any method are
candidates; the images keep the order they have in the input file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImages(cmd, opts)
		},
	}
	opts.addFlags(cmd, "images")
	return cmd
}

func runImages(cmd *cobra.Command, opts *exportOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	S, err := e.read(opts.input)
	if err != nil {
		return err
	}
	frames, _ := stream.FilterByMethods(S, S.Methods)
	n := e.number("number", opts.number, len(frames))
	selection, clamped := stream.Sample(frames, n, e.rng("seed", opts.seed))
	if clamped && n > len(frames) {
		e.sampleWarning(stream.ImageKind, n, len(frames))
	}
	data, err := stream.ExportFrames(S, selection)
	if err != nil {
		return err
	}
	name := stream.OutputName(e.prefix(opts.output, opts.input), len(selection), stream.ImageKind)
	if err := e.write(name, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saving %d indexed images to %s\n", len(selection), name)
	return nil
}
