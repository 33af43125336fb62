package engine

import (
	"fmt"

	"github.com/rtissier/specbump/internal/source"
	"github.com/rtissier/specbump/internal/spec"
)

// UpdateOptions configures one spec update.
type UpdateOptions struct {
	// NewVersion is the requested upstream version; empty means a
	// rebuild (release increment only).
	NewVersion string

	// ExplicitRelease, when set, is used verbatim instead of computing
	// the next release.
	ExplicitRelease string

	// Messages overrides the configured changelog message templates.
	Messages []string

	// Filter, when non-nil, is applied to every line of the document.
	Filter spec.LineFilter

	NoVersion   bool
	NoRelease   bool
	NoChangelog bool

	// DryRun computes everything but leaves the spec file untouched.
	DryRun bool

	// Download fetches each added source into DownloadDir after the
	// rewrite.
	Download bool

	// DownloadDir receives fetched archives; defaults to the spec's
	// directory.
	DownloadDir string

	// Revision pins version-controlled sources on export.
	Revision string
}

// DownloadedSource records one successfully retrieved source.
type DownloadedSource struct {
	URL       string
	Path      string
	Reencoded bool
}

// UpdateResult is the structured outcome of one update.
type UpdateResult struct {
	Name         string
	FinalVersion string
	FinalRelease string
	Added        []source.PlannedSource
	Removed      []string
	Downloaded   []DownloadedSource
}

// SpecIOError reports a spec document that could not be read or written
// back.
type SpecIOError struct {
	Path string
	Op   string
	Err  error
}

func (e *SpecIOError) Error() string {
	return fmt.Sprintf("%s spec %s: %s", e.Op, e.Path, e.Err)
}

func (e *SpecIOError) Unwrap() error {
	return e.Err
}
