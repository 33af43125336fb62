package source

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/rtissier/specbump/internal/header"
)

// remoteSchemes are the URL schemes treated as fetchable upstream
// locations. Bare filenames and local paths are not remote sources.
var remoteSchemes = map[string]bool{
	"ftp":     true,
	"svn":     true,
	"svn+ssh": true,
	"http":    true,
	"https":   true,
}

// IsRemote reports whether ref is a remote-scheme source reference.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return remoteSchemes[u.Scheme]
}

// IsVersionControlled reports whether ref points at a version-control
// repository rather than an archive.
func IsVersionControlled(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return u.Scheme == "svn" || u.Scheme == "svn+ssh"
}

// UnresolvableURLError reports a package whose remote source location
// cannot be determined even via the homepage fallback.
type UnresolvableURLError struct {
	Name string
}

func (e *UnresolvableURLError) Error() string {
	return fmt.Sprintf("%s: no remote source and no usable homepage to derive one from", e.Name)
}

// PlannedSource couples one added source reference with its ordered
// fetch plan.
type PlannedSource struct {
	URL   string
	Steps []FetchPlanStep
}

// Resolution is the reconciled source state between two header
// snapshots: what to fetch and what became obsolete.
type Resolution struct {
	Added   []PlannedSource
	Removed []string
}

// Resolver computes canonical source references for a package header
// and reconciles before/after source sets.
type Resolver struct {
	Rules   *RuleEngine
	Planner *Planner
}

// Remote returns the remote source references a snapshot declares. With
// none declared, exactly one fallback reference is derived by rewriting
// the homepage and appending the first declared source's bare filename.
func (r *Resolver) Remote(snap *header.Snapshot) ([]string, error) {
	var refs []string
	for _, src := range snap.Sources {
		if IsRemote(src) {
			refs = append(refs, src)
		}
	}
	if len(refs) > 0 {
		return refs, nil
	}

	if len(snap.Sources) == 0 || snap.URL == "" {
		return nil, &UnresolvableURLError{Name: snap.Name}
	}

	base := r.Rules.Apply(snap.URL)
	filename := path.Base(snap.Sources[0])
	if base == "" || filename == "" || filename == "." || filename == "/" {
		return nil, &UnresolvableURLError{Name: snap.Name}
	}

	return []string{strings.TrimRight(base, "/") + "/" + filename}, nil
}

// Resolve computes the source delta between the old and new header
// snapshots and attaches a fetch plan to every added reference. The
// version substitution in each plan maps the old header version to the
// new one.
func (r *Resolver) Resolve(before, after *header.Snapshot) (*Resolution, error) {
	oldRefs, err := r.Remote(before)
	if err != nil {
		return nil, err
	}
	newRefs, err := r.Remote(after)
	if err != nil {
		return nil, err
	}

	res := &Resolution{}

	oldSet := make(map[string]bool, len(oldRefs))
	for _, ref := range oldRefs {
		oldSet[ref] = true
	}
	newSet := make(map[string]bool, len(newRefs))
	for _, ref := range newRefs {
		newSet[ref] = true
	}

	for _, ref := range newRefs {
		if oldSet[ref] {
			continue
		}
		res.Added = append(res.Added, PlannedSource{
			URL:   ref,
			Steps: r.Planner.Plan(ref, before.Version, after.Version),
		})
	}
	for _, ref := range oldRefs {
		if !newSet[ref] {
			res.Removed = append(res.Removed, ref)
		}
	}

	return res, nil
}
