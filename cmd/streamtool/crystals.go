package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	stream "github.com/sxtoolbox/gostream"
)

type crystalsOptions struct {
	exportOptions
	methods []string
}

// NewCrystalsCmd creates the crystals subcommand.
func NewCrystalsCmd() *cobra.Command {
	opts := &crystalsOptions{}
	cmd := &cobra.Command{
		Use:   "crystals",
		Short: "Write random crystals to a new stream file, one per chunk",
		Long: `Write a random selection of the crystals of a stream file to
<prefix>_<n>indexed_crystals.stream. Each crystal is written as a chunk of its own,
with the head of the image it was found on.

Use -m (repeatable) to take only crystals from images indexed with the given methods,
written exactly as they appear in the stream, e.g. "xgandalf-nolatt-cell".
Without -m, the methods of the configuration file are used, or all of them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCrystals(cmd, opts)
		},
	}
	opts.addFlags(cmd, "crystals")
	cmd.Flags().StringArrayVarP(&opts.methods, "method", "m", nil, "Indexing method to include (repeatable)")
	return cmd
}

func runCrystals(cmd *cobra.Command, opts *crystalsOptions) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	S, err := e.read(opts.input)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	methods := opts.methods
	if len(methods) == 0 {
		methods = e.cfg.Methods
	}
	if len(methods) == 0 {
		methods = S.Methods
	}
	frames, missing := stream.FilterByMethods(S, methods)
	for _, m := range missing {
		e.logger.Warn("requested indexing method not found", "method", m, "available", strings.Join(S.Methods, ","))
	}
	if len(missing) == len(methods) && len(methods) > 0 {
		fmt.Fprintf(out, "None of the requested indexing methods found in %s, nothing written. Possible methods are:\n%s\n",
			opts.input, strings.Join(S.Methods, "\n"))
		return nil
	}
	e.logger.Debug("indexing methods used", "methods", methods, "frames", len(frames))

	stream.PropagateHead(frames)
	crystals := stream.FlattenCrystals(frames)
	n := e.number("number", opts.number, len(crystals))
	selection, clamped := stream.Sample(crystals, n, e.rng("seed", opts.seed))
	if clamped && n > len(crystals) {
		e.sampleWarning(stream.CrystalKind, n, len(crystals))
	}
	data, err := stream.ExportCrystals(S, selection)
	if err != nil {
		return err
	}
	name := stream.OutputName(e.prefix(opts.output, opts.input), len(selection), stream.CrystalKind)
	if err := e.write(name, data); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saving %d crystals to %s\n", len(selection), name)
	return nil
}
