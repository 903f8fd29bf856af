package main

import (
	"errors"

	"github.com/spf13/cobra"

	stream "github.com/sxtoolbox/gostream"
	"github.com/sxtoolbox/gostream/histo"
	"github.com/sxtoolbox/gostream/report"
)

// ErrConflictingFormats is returned when more than one report format is requested.
var ErrConflictingFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

type statsOptions struct {
	input    string
	markdown bool
	json     bool
	cells    bool
}

// NewStatsCmd creates the stats subcommand.
func NewStatsCmd() *cobra.Command {
	opts := &statsOptions{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the indexing statistics of a stream file",
		Long: `Print the number of processed and indexed images, the images indexed by each
method, the indexing rate and the number of crystals of a stream file.

With --cells, also the mean and standard deviation of the unit cell axes and the
score: indexing rate / (std(a) * std(b) * std(c)).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Input stream file (plain, .zst or .gz)")
	cmd.Flags().BoolVar(&opts.markdown, "markdown", false, "Write the report as markdown")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Write the report as JSON")
	cmd.Flags().BoolVar(&opts.cells, "cells", false, "Add unit cell statistics and the score")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runStats(cmd *cobra.Command, opts *statsOptions) error {
	if opts.markdown && opts.json {
		return ErrConflictingFormats
	}
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	S, err := e.read(opts.input)
	if err != nil {
		return err
	}
	var cells *report.Cells
	if opts.cells {
		crystals := stream.FlattenCrystals(S.Frames)
		cells = report.NewCells(S, crystals)
		if opts.json {
			cells.Histograms = histo.CellHistograms(crystals, e.cfg.Bins)
		}
		if cells.ScoreErr != nil {
			e.logger.Debug("score not available", "error", cells.ScoreErr)
		}
	}
	sum := stream.Summarize(S)
	out := cmd.OutOrStdout()
	switch {
	case opts.markdown:
		return report.WriteMarkdown(out, sum, cells)
	case opts.json:
		return report.WriteJSON(out, sum, cells)
	default:
		return report.WriteText(out, sum, cells)
	}
}
