package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rtissier/specbump/internal/config"
	"github.com/rtissier/specbump/internal/engine"
	"github.com/rtissier/specbump/internal/fetch"
	"github.com/rtissier/specbump/internal/header"
	"github.com/rtissier/specbump/internal/run"
	"github.com/rtissier/specbump/internal/vcs"
)

// loadConfig reads the config file, layering it over the defaults.
// Command-line verbosity wins over the configured one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose > 0 {
		cfg.Verbosity = verbose
	}
	return cfg, nil
}

// newLogger maps the verbosity level onto the trace logger.
func newLogger(cfg *config.Config) *log.Logger {
	if quiet {
		return log.New(io.Discard)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "specbump"})
	switch {
	case cfg.Verbosity >= 2:
		logger.SetLevel(log.DebugLevel)
	case cfg.Verbosity == 1:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// newEngine wires the update engine with the default collaborators.
func newEngine(cfg *config.Config) *engine.UpdateEngine {
	runner := run.ExecRunner{}
	return &engine.UpdateEngine{
		Config:   cfg,
		Parser:   &header.RPMParser{Runner: runner},
		Fetcher:  &fetch.Client{Runner: runner, Timeout: time.Duration(cfg.FetchTimeout)},
		Exporter: &vcs.SVNExporter{Runner: runner},
		Runner:   runner,
		Logger:   newLogger(cfg),
	}
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
