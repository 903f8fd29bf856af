// Package config holds the settings of the streamtool command, read from an
// optional YAML file and then overridden by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "streamtool"

	// DefaultConfigFile is looked for in the current directory.
	DefaultConfigFile = ".streamtool.yaml"

	// DefaultBins is the number of bins of the cell parameter histograms.
	DefaultBins = 20

	// DefaultPlotSize is the side of each plot, in inches.
	DefaultPlotSize = 4.0

	// DefaultProgressEvery is the number of chunks between two progress updates.
	DefaultProgressEvery = 500
)

var (
	// ErrConfigNotFound is returned when an explicitly requested configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidBins is returned when the number of histogram bins is not positive.
	ErrInvalidBins = errors.New("invalid number of bins: must be positive")

	// ErrInvalidPlotSize is returned when the plot size is not positive.
	ErrInvalidPlotSize = errors.New("invalid plot size: must be positive")

	// ErrInvalidNumber is returned when the sample size is negative.
	ErrInvalidNumber = errors.New("invalid sample size: must be non-negative")
)

// Config holds the settings shared by the streamtool subcommands.
// The zero value is not usable, use New or Load.
type Config struct {
	// OutputDir is the directory where exported streams and plots are written.
	// Empty means next to the input file's name, in the current directory.
	OutputDir string `yaml:"output_dir"`

	// Number is the default sample size. 0 means every record.
	Number int `yaml:"number"`

	// Seed makes the sampling reproducible. nil means a random seed.
	Seed *uint64 `yaml:"seed"`

	// Methods are the indexing methods used by the crystals subcommand when
	// none is given on the command line. Empty means every method in the file.
	Methods []string `yaml:"methods"`

	// Bins is the number of histogram bins for the plot subcommand.
	Bins int `yaml:"bins"`

	// PlotSize is the side of each plot in inches.
	PlotSize float64 `yaml:"plot_size"`

	// ProgressEvery is the number of chunks between progress updates. 0 disables them.
	ProgressEvery int `yaml:"progress_every"`
}

// New returns a Config with the default values.
func New() *Config {
	return &Config{
		Bins:          DefaultBins,
		PlotSize:      DefaultPlotSize,
		ProgressEvery: DefaultProgressEvery,
	}
}

// XDGConfigFile returns the path of the per-user configuration file.
// On Linux: ~/.config/streamtool/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Validate checks the values that would make a subcommand fail later.
func (c *Config) Validate() error {
	if c.Bins <= 0 {
		return ErrInvalidBins
	}
	if c.PlotSize <= 0 {
		return ErrInvalidPlotSize
	}
	if c.Number < 0 {
		return ErrInvalidNumber
	}
	if c.ProgressEvery < 0 {
		c.ProgressEvery = 0
	}
	return nil
}

// OutputPrefix joins OutputDir and prefix.
func (c *Config) OutputPrefix(prefix string) string {
	if c.OutputDir == "" {
		return prefix
	}
	return filepath.Join(c.OutputDir, prefix)
}

// LoadConfigFile reads a YAML file on top of the default values.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .streamtool.yaml in the current directory
// 3. Look for streamtool/config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	if xdgConfig := XDGConfigFile(); xdgConfig != "" {
		if _, err := os.Stat(xdgConfig); err == nil {
			return xdgConfig
		}
	}

	return ""
}

// Load finds and reads the configuration file, and returns it together with the
// path it was read from. Without any file, the defaults are returned and the path
// is empty. A missing explicit file is an error.
func Load(configPath string) (*Config, string, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return New(), "", nil
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}
