package main

import (
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	stream "github.com/sxtoolbox/gostream"
	"github.com/sxtoolbox/gostream/internal/config"
	"github.com/sxtoolbox/gostream/internal/diag"
)

// env is what every subcommand needs before doing its work.
type env struct {
	cmd    *cobra.Command
	cfg    *config.Config
	logger *slog.Logger
}

// setup reads the global flags, the configuration file and creates the logger.
func setup(cmd *cobra.Command) (*env, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose = false
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath = ""
	}
	logger := diag.NewLogger(cmd.ErrOrStderr(), verbose)
	cfg, path, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("configuration loaded", "path", path)
	}
	return &env{cmd: cmd, cfg: cfg, logger: logger}, nil
}

// read parses a stream file, showing the progress on a terminal.
func (e *env) read(path string) (*stream.Stream, error) {
	progress := diag.NewProgressReporter(e.cmd.ErrOrStderr(), path)
	e.logger.Debug("reading stream", "path", path)
	S, err := stream.ReadFile(path, stream.WithProgress(e.cfg.ProgressEvery, progress.Update))
	if err != nil {
		return nil, err
	}
	progress.Done(S.TotalShots, S.IndexedShots)
	e.logger.Debug("stream read", "path", path, "images", S.TotalShots, "indexed", S.IndexedShots, "methods", S.Methods)
	return S, nil
}

// number returns the sample size from the flag if given, from the configuration otherwise.
// 0 means the whole population.
func (e *env) number(flag string, value, population int) int {
	n := e.cfg.Number
	if e.cmd.Flags().Changed(flag) {
		n = value
	}
	if n <= 0 {
		return population
	}
	return n
}

// rng returns a seeded source when a seed is given by flag or configuration, nil otherwise.
func (e *env) rng(flag string, value uint64) *rand.Rand {
	if e.cmd.Flags().Changed(flag) {
		return stream.NewRand(value)
	}
	if e.cfg.Seed != nil {
		return stream.NewRand(*e.cfg.Seed)
	}
	return nil
}

// prefix returns the output prefix: the flag if given, the input name otherwise,
// inside the configured output directory.
func (e *env) prefix(output, input string) string {
	if output == "" {
		output = stream.PrefixFromPath(input)
	}
	return e.cfg.OutputPrefix(output)
}

// sampleWarning logs that fewer records than requested are available.
func (e *env) sampleWarning(kind stream.Kind, requested, available int) {
	e.logger.Warn("number of requested records larger than available, all of them will be written",
		"kind", kind.String(), "requested", requested, "available", available)
}

// outputDir creates the configured output directory, if any.
func (e *env) outputDir() error {
	if e.cfg.OutputDir == "" {
		return nil
	}
	return os.MkdirAll(e.cfg.OutputDir, 0o755)
}

// write writes an exported stream, creating the output directory if needed.
func (e *env) write(name string, data []byte) error {
	if err := e.outputDir(); err != nil {
		return err
	}
	return stream.WriteFile(name, data)
}
