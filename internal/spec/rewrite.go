package spec

import (
	"strings"
	"time"
)

// changelogMarker opens the changelog section of a spec document.
const changelogMarker = "%changelog"

// LineFilter is a caller-supplied per-line hook applied to every output
// line. It must be a pure function of its input line.
type LineFilter func(line string) string

// Rewriter rewrites version, release and changelog fields of a spec
// document. Configuration is fixed at construction; a Rewriter is safe
// for concurrent use on distinct documents.
type Rewriter struct {
	// ReleaseSuffix is the exact-literal suffix recognized at the tail
	// of release values (may be empty).
	ReleaseSuffix string

	// Packager is the identity written into changelog entry titles.
	Packager string

	// Messages are the changelog message templates; empty means a
	// per-operation default.
	Messages []string

	// Now supplies the changelog date; nil means time.Now.
	Now func() time.Time
}

// Options selects what a single Rewrite pass changes.
type Options struct {
	// NewVersion is the requested upstream version; empty requests a
	// rebuild (release increment only).
	NewVersion string

	// ExplicitRelease overrides release computation verbatim.
	ExplicitRelease string

	// CurrentVersion and CurrentRelease are the header values before
	// the rewrite; they are returned unchanged when the document has no
	// matching directive line.
	CurrentVersion string
	CurrentRelease string

	// Epoch, when non-empty, is prepended ("epoch:") to the
	// version-release in the changelog entry title.
	Epoch string

	UpdateVersion   bool
	UpdateRelease   bool
	UpdateChangelog bool

	// Filter, when non-nil, is applied to every line after any
	// directive rewrite.
	Filter LineFilter
}

// Result is the outcome of one Rewrite pass.
type Result struct {
	// Text is the complete rewritten document.
	Text string

	// Version and Release are the final field values, whether rewritten
	// or carried through.
	Version string
	Release string
}

// Rewrite streams the document once, rewriting the first matching
// version line, the first matching release line, and inserting at most
// one changelog entry. Lines that match nothing pass through untouched.
// On error no partial text is returned.
func (r *Rewriter) Rewrite(text string, opts Options) (*Result, error) {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines)+8)

	versionBump := opts.NewVersion != ""

	result := &Result{
		Version: opts.CurrentVersion,
		Release: opts.CurrentRelease,
	}
	if versionBump {
		result.Version = opts.NewVersion
	}

	versionDone := false
	releaseDone := false
	entryPending := false
	entryInserted := false

	for _, line := range lines {
		if opts.UpdateVersion && versionBump && !versionDone {
			if d, ok := ScanDirective(line, KindVersion); ok {
				line = d.Prefix + opts.NewVersion
				versionDone = true
			}
		}
		if opts.UpdateRelease && !releaseDone {
			if d, ok := ScanDirective(line, KindRelease); ok {
				next, err := ComputeRelease(d.Value, versionBump, opts.ExplicitRelease, r.ReleaseSuffix)
				if err != nil {
					return nil, err
				}
				line = d.Prefix + next
				result.Release = next
				releaseDone = true
			}
		}

		if opts.Filter != nil {
			line = opts.Filter(line)
		}

		if entryPending && strings.HasPrefix(line, "*") {
			out = append(out, r.entryLines(result, opts)...)
			entryPending = false
			entryInserted = true
		}

		if opts.UpdateChangelog && !entryInserted && !entryPending &&
			strings.HasPrefix(line, changelogMarker) {
			entryPending = true
		}

		out = append(out, line)
	}

	// Marker present but no existing entry after it.
	if entryPending {
		out = append(out, r.entryLines(result, opts)...)
	}

	result.Text = strings.Join(out, "\n")
	return result, nil
}

// entryLines renders the new changelog entry as document lines. Render
// ends with a blank separator line, so the trailing empty split element
// is dropped to avoid doubling it.
func (r *Rewriter) entryLines(result *Result, opts Options) []string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	messages := r.Messages
	if len(messages) == 0 {
		messages = []string{DefaultMessage(opts.NewVersion != "")}
	}

	entry := Entry{
		Date:     now(),
		Packager: r.Packager,
		Epoch:    opts.Epoch,
		Version:  result.Version,
		Release:  result.Release,
		Messages: messages,
	}

	rendered := strings.Split(entry.Render(), "\n")
	return rendered[:len(rendered)-1]
}
