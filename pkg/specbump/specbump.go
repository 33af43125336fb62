// Package specbump provides the public Go library API for specbump.
//
// It wraps the update engine so other tools can drive spec updates
// programmatically:
//
//	client, err := specbump.New(specbump.Options{ConfigPath: "specbump.yaml"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Update(ctx, "dictd.spec", specbump.UpdateOptions{
//	    NewVersion: "0.60",
//	})
package specbump

import (
	"context"
	"time"

	"github.com/rtissier/specbump/internal/config"
	"github.com/rtissier/specbump/internal/engine"
	"github.com/rtissier/specbump/internal/fetch"
	"github.com/rtissier/specbump/internal/header"
	"github.com/rtissier/specbump/internal/run"
	"github.com/rtissier/specbump/internal/vcs"
)

// Options configures a Client.
type Options struct {
	// ConfigPath locates specbump.yaml; a missing file means defaults.
	ConfigPath string

	// Config, when non-nil, is used directly and ConfigPath is ignored.
	Config *Config

	// Parser overrides the default rpmspec-based header parser.
	Parser header.Parser

	// Fetcher overrides the default HTTP/curl fetcher.
	Fetcher fetch.Fetcher

	// Exporter overrides the default svn exporter.
	Exporter vcs.Exporter

	// Runner overrides the default exec-based process runner.
	Runner run.Runner
}

// Client performs spec updates with a fixed configuration.
type Client struct {
	engine *engine.UpdateEngine
}

// New builds a Client, wiring default collaborators for any not
// supplied in opts.
func New(opts Options) (*Client, error) {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	runner := opts.Runner
	if runner == nil {
		runner = run.ExecRunner{}
	}

	eng := &engine.UpdateEngine{
		Config:   cfg,
		Parser:   opts.Parser,
		Fetcher:  opts.Fetcher,
		Exporter: opts.Exporter,
		Runner:   runner,
	}
	if eng.Parser == nil {
		eng.Parser = &header.RPMParser{Runner: runner}
	}
	if eng.Fetcher == nil {
		eng.Fetcher = &fetch.Client{Runner: runner, Timeout: time.Duration(cfg.FetchTimeout)}
	}
	if eng.Exporter == nil {
		eng.Exporter = &vcs.SVNExporter{Runner: runner}
	}

	return &Client{engine: eng}, nil
}

// Update rewrites the spec at specPath and reconciles its sources.
func (c *Client) Update(ctx context.Context, specPath string, opts UpdateOptions) (*UpdateResult, error) {
	return c.engine.Update(ctx, specPath, opts)
}
