package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/rtissier/specbump/internal/config"
	"github.com/rtissier/specbump/internal/fetch"
	"github.com/rtissier/specbump/internal/header"
	"github.com/rtissier/specbump/internal/run"
	"github.com/rtissier/specbump/internal/source"
	"github.com/rtissier/specbump/internal/spec"
	"github.com/rtissier/specbump/internal/vcs"
)

// UpdateEngine drives one spec update end to end: header parse, text
// rewrite, atomic write-back, source reconciliation and (optionally)
// the download loop. All collaborators are injected; every field except
// Config and Parser may be nil when the corresponding step is not used.
type UpdateEngine struct {
	Config   *config.Config
	Parser   header.Parser
	Fetcher  fetch.Fetcher
	Exporter vcs.Exporter
	Runner   run.Runner
	Logger   *log.Logger
}

// Update rewrites the spec at specPath and reconciles its sources.
// The document is replaced in one piece after the whole rewrite
// succeeded in memory; any error before that leaves the file untouched.
func (e *UpdateEngine) Update(ctx context.Context, specPath string, opts UpdateOptions) (*UpdateResult, error) {
	logger := e.logger()

	before, err := e.Parser.Parse(ctx, specPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed header", "name", before.Name, "version", before.Version, "release", before.Release)

	raw, err := os.ReadFile(specPath)
	if err != nil {
		return nil, &SpecIOError{Path: specPath, Op: "reading", Err: err}
	}

	messages := e.Config.ChangelogMessages
	if len(opts.Messages) > 0 {
		messages = opts.Messages
	}

	rewriter := &spec.Rewriter{
		ReleaseSuffix: e.Config.ReleaseSuffix,
		Packager:      e.Config.Packager,
		Messages:      messages,
	}

	res, err := rewriter.Rewrite(string(raw), spec.Options{
		NewVersion:      opts.NewVersion,
		ExplicitRelease: opts.ExplicitRelease,
		CurrentVersion:  before.Version,
		CurrentRelease:  before.Release,
		Epoch:           before.Epoch,
		UpdateVersion:   !opts.NoVersion,
		UpdateRelease:   !opts.NoRelease,
		UpdateChangelog: !opts.NoChangelog,
		Filter:          opts.Filter,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("rewrote spec", "version", res.Version, "release", res.Release)

	// The rewritten text goes to a sibling temp file first. That gives
	// the header parser something on disk to expand, and commit is a
	// single rename.
	tmpPath, err := writeSibling(specPath, res.Text)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	after, err := e.Parser.Parse(ctx, tmpPath)
	if err != nil {
		return nil, err
	}

	resolver, err := e.resolver()
	if err != nil {
		return nil, err
	}
	resolution, err := resolver.Resolve(before, after)
	if err != nil {
		return nil, err
	}
	for _, added := range resolution.Added {
		logger.Info("source added", "url", added.URL, "candidates", len(added.Steps))
	}
	for _, removed := range resolution.Removed {
		logger.Info("source removed", "url", removed)
	}

	result := &UpdateResult{
		Name:         before.Name,
		FinalVersion: res.Version,
		FinalRelease: res.Release,
		Added:        resolution.Added,
		Removed:      resolution.Removed,
	}

	if opts.DryRun {
		return result, nil
	}

	if err := commitSibling(tmpPath, specPath); err != nil {
		return nil, err
	}

	if opts.Download {
		downloaded, err := e.download(ctx, resolution.Added, opts, specPath)
		if err != nil {
			return nil, err
		}
		result.Downloaded = downloaded
	}

	return result, nil
}

// download walks each added source's fetch plan in order, stopping at
// the first candidate that works. Version-controlled references are
// exported instead of downloaded.
func (e *UpdateEngine) download(ctx context.Context, added []source.PlannedSource, opts UpdateOptions, specPath string) ([]DownloadedSource, error) {
	logger := e.logger()

	destDir := opts.DownloadDir
	if destDir == "" {
		destDir = filepath.Dir(specPath)
	}

	var downloaded []DownloadedSource
	for _, src := range added {
		if source.IsVersionControlled(src.URL) {
			path, err := e.Exporter.Export(ctx, src.URL, opts.Revision, destDir)
			if err != nil {
				return nil, err
			}
			downloaded = append(downloaded, DownloadedSource{URL: src.URL, Path: path})
			continue
		}

		var (
			got      *fetch.Result
			lastErr  error
			attempts []string
			step     source.FetchPlanStep
		)
		for _, step = range src.Steps {
			attempts = append(attempts, step.URL)
			logger.Debug("trying candidate", "url", step.URL)

			got, lastErr = e.Fetcher.Fetch(ctx, step.URL, destDir)
			if lastErr != nil {
				continue
			}
			if strings.HasPrefix(got.ContentType, "text/html") {
				os.Remove(got.Path)
				got, lastErr = nil, fmt.Errorf("%s served HTML instead of an archive", step.URL)
				continue
			}
			break
		}
		if got == nil {
			return nil, &fetch.DownloadError{Source: src.URL, Attempts: attempts, Err: lastErr}
		}

		ds := DownloadedSource{URL: src.URL, Path: got.Path}
		if step.ReencodeRequired {
			if err := e.reencode(ctx, got.Path); err != nil {
				return nil, err
			}
			ds.Reencoded = true
		}
		logger.Info("downloaded", "url", step.URL, "path", got.Path)
		downloaded = append(downloaded, ds)
	}

	return downloaded, nil
}

// reencode recompresses a downloaded archive with the configured
// command, appending the file path to its fixed arguments.
func (e *UpdateEngine) reencode(ctx context.Context, path string) error {
	cmd := e.Config.ReencodeCommand
	if len(cmd) == 0 {
		return fmt.Errorf("reencode required for %s but no reencode command configured", path)
	}
	args := append(append([]string{}, cmd[1:]...), path)
	if _, err := e.Runner.Run(ctx, cmd[0], args...); err != nil {
		return fmt.Errorf("reencoding %s: %w", path, err)
	}
	return nil
}

func (e *UpdateEngine) resolver() (*source.Resolver, error) {
	rules, err := source.NewRuleEngine(e.Config.RewriteRules)
	if err != nil {
		return nil, err
	}
	return &source.Resolver{
		Rules: rules,
		Planner: &source.Planner{
			Mirrors:    e.Config.SourceforgeMirrors,
			Extensions: e.Config.AlternateExtensions,
		},
	}, nil
}

func (e *UpdateEngine) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.New(io.Discard)
}

// writeSibling writes text to a fresh temp file next to path, matching
// the original file's permissions.
func writeSibling(path, text string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", &SpecIOError{Path: path, Op: "writing", Err: err}
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", &SpecIOError{Path: path, Op: "writing", Err: err}
	}
	tmpPath := f.Name()

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", &SpecIOError{Path: path, Op: "writing", Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", &SpecIOError{Path: path, Op: "writing", Err: err}
	}
	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		os.Remove(tmpPath)
		return "", &SpecIOError{Path: path, Op: "writing", Err: err}
	}

	return tmpPath, nil
}

func commitSibling(tmpPath, path string) error {
	if err := os.Rename(tmpPath, path); err != nil {
		return &SpecIOError{Path: path, Op: "writing", Err: err}
	}
	return nil
}
