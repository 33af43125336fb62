// Package vcs exports version-controlled source trees. Only Subversion
// is supported; svn and svn+ssh source references route here instead of
// through the archive fetch plan.
package vcs

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/rtissier/specbump/internal/run"
)

// Exporter exports a repository at a pinned revision into destDir and
// returns the local path of the exported tree.
type Exporter interface {
	Export(ctx context.Context, repoURL, revision, destDir string) (string, error)
}

// ExportError reports a failed repository export.
type ExportError struct {
	Repo string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("exporting %s: %s", e.Repo, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// SVNExporter exports through the svn client. The svn+ssh scheme passes
// through unchanged; svn understands it natively.
type SVNExporter struct {
	Runner run.Runner
}

func (s *SVNExporter) Export(ctx context.Context, repoURL, revision, destDir string) (string, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", &ExportError{Repo: repoURL, Err: err}
	}
	if u.Scheme != "svn" && u.Scheme != "svn+ssh" {
		return "", &ExportError{Repo: repoURL, Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}

	name := path.Base(strings.TrimRight(u.Path, "/"))
	if name == "" || name == "." || name == "/" {
		name = "export"
	}
	dest := filepath.Join(destDir, name)

	args := []string{"export", "--non-interactive"}
	if revision != "" {
		args = append(args, "--revision", revision)
	}
	args = append(args, repoURL, dest)

	if _, err := s.Runner.Run(ctx, "svn", args...); err != nil {
		return "", &ExportError{Repo: repoURL, Err: err}
	}
	return dest, nil
}
