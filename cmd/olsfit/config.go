package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/YuminosukeSato/olsgo/pkg/errors"
	"github.com/YuminosukeSato/olsgo/pkg/log"
)

// Config holds the command line configuration of olsfit.
type Config struct {
	TrainPath   string
	PredictPath string
	Header      bool

	// Features is the feature count the model is constructed with.
	// Zero means the count is taken from the training CSV.
	Features int

	LogLevel   string
	LogBackend string
	LogConsole bool

	PlotPath   string
	WeightsOut string

	Profile    string
	ProfileDir string
}

const (
	backendZerolog = "zerolog"
	backendSlog    = "slog"

	profileCPU = "cpu"
	profileMem = "mem"
)

// plot.Save で扱える拡張子
var plotFormats = map[string]bool{
	".eps": true, ".jpg": true, ".jpeg": true, ".pdf": true,
	".png": true, ".svg": true, ".tex": true, ".tif": true, ".tiff": true,
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() *Config {
	return &Config{
		Header:     true,
		LogLevel:   "info",
		LogBackend: backendZerolog,
		ProfileDir: ".",
	}
}

// ParseConfig parses args (without the program name). Usage and flag errors
// are written to output.
func ParseConfig(args []string, output io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	flags := flag.NewFlagSet("olsfit", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&cfg.TrainPath, "train", cfg.TrainPath, "training CSV `file`; the last column is the target")
	flags.StringVar(&cfg.PredictPath, "predict", cfg.PredictPath, "feature-only CSV `file` to predict after fitting")
	flags.BoolVar(&cfg.Header, "header", cfg.Header, "CSV files start with a header row")
	flags.IntVar(&cfg.Features, "features", cfg.Features, "expected number of feature columns (0 = from the training CSV)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log `level`: debug, info, warn or error")
	flags.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "logging `backend`: zerolog or slog")
	flags.BoolVar(&cfg.LogConsole, "log-console", cfg.LogConsole, "human readable zerolog output instead of JSON")
	flags.StringVar(&cfg.PlotPath, "plot", cfg.PlotPath, "write a predicted-vs-actual plot of the training data to `file` (.png, .svg, .pdf, ...)")
	flags.StringVar(&cfg.WeightsOut, "weights-out", cfg.WeightsOut, "write the fitted weights as JSON to `file`")
	flags.StringVar(&cfg.Profile, "profile", cfg.Profile, "profile the run: cpu or mem")
	flags.StringVar(&cfg.ProfileDir, "profile-dir", cfg.ProfileDir, "`directory` for profile output")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: olsfit -train data.csv [flags]\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() != 0 {
		flags.Usage()
		return nil, errors.Newf("unexpected arguments: %s", strings.Join(flags.Args(), " "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.TrainPath == "" {
		return errors.NewValidationError("train", "a training CSV is required", c.TrainPath)
	}
	if c.Features < 0 {
		return errors.NewValidationError("features", "must be non-negative", c.Features)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.NewValidationError("log-level", "must be debug, info, warn or error", c.LogLevel)
	}
	switch c.LogBackend {
	case backendZerolog, backendSlog:
	default:
		return errors.NewValidationError("log-backend", "must be zerolog or slog", c.LogBackend)
	}
	switch c.Profile {
	case "", profileCPU, profileMem:
	default:
		return errors.NewValidationError("profile", "must be cpu or mem", c.Profile)
	}
	if c.PlotPath != "" && !plotFormats[strings.ToLower(filepath.Ext(c.PlotPath))] {
		return errors.NewValidationError("plot", "unsupported image format", filepath.Ext(c.PlotPath))
	}
	return nil
}
