package source

import (
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
)

// FetchPlanStep is one candidate download to attempt for a logical
// source. ReencodeRequired marks candidates whose archive format was
// normalized away from the one the spec declares; the caller must
// recompress after a successful download.
type FetchPlanStep struct {
	URL              string
	ReencodeRequired bool
}

// Planner turns a canonical source URL into an ordered list of download
// candidates, applying the host-specific conventions of the big archive
// networks. The planner performs no I/O.
type Planner struct {
	// Mirrors are SourceForge mirror identifiers, in preference order.
	Mirrors []string

	// Extensions are the archive extensions recognized when normalizing
	// filenames.
	Extensions []string
}

var (
	sourceforgeHostRE = regexp.MustCompile(`(?i)^prdownloads\.sourceforge\.net$`)
	gnomeHostRE       = regexp.MustCompile(`(?i)(^|\.)gnome\.org$`)
	cpanHostRE        = regexp.MustCompile(`(?i)(^|\.)cpan\.org$`)
	pearHostRE        = regexp.MustCompile(`(?i)(^|\.)pear\.php\.net$`)
)

// Plan produces the fetch plan for one source. The old version token is
// first replaced with the new one (literal, all occurrences); the
// candidates are then derived from the hosting convention the URL's
// host follows. An unrecognized host yields the URL itself as the only
// candidate.
func (p *Planner) Plan(rawURL, oldVersion, newVersion string) []FetchPlanStep {
	if oldVersion != "" && newVersion != "" && oldVersion != newVersion {
		rawURL = strings.ReplaceAll(rawURL, oldVersion, newVersion)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return []FetchPlanStep{{URL: rawURL}}
	}

	switch {
	case sourceforgeHostRE.MatchString(u.Host):
		return p.sourceforgePlan(u)
	case gnomeHostRE.MatchString(u.Host):
		return gnomePlan(u, newVersion)
	case cpanHostRE.MatchString(u.Host):
		return p.perlArchivePlan(u, cpanCanonicalize, ".tar.gz")
	case pearHostRE.MatchString(u.Host):
		return p.perlArchivePlan(u, nil, ".tgz")
	default:
		return []FetchPlanStep{{URL: rawURL}}
	}
}

// sourceforgePlan expands the prdownloads redirector into one candidate
// per configured mirror. The redirector itself is never fetched; it
// answers with an HTML chooser page.
func (p *Planner) sourceforgePlan(u *url.URL) []FetchPlanStep {
	steps := make([]FetchPlanStep, 0, len(p.Mirrors))
	for _, mirror := range p.Mirrors {
		steps = append(steps, FetchPlanStep{
			URL: "http://" + mirror + ".dl.sourceforge.net/sourceforge" + u.Path,
		})
	}
	if len(steps) == 0 {
		return []FetchPlanStep{{URL: u.String()}}
	}
	return steps
}

// gnomePlan inserts the version's major.minor pair as a directory right
// before the filename; GNOME archives every series under such a path.
func gnomePlan(u *url.URL, version string) []FetchPlanStep {
	dir, file := path.Split(u.Path)
	if series := majorMinor(version); series != "" && file != "" {
		u.Path = dir + series + "/" + file
	}
	return []FetchPlanStep{{URL: u.String()}}
}

// perlArchivePlan canonicalizes a CPAN or PEAR URL and normalizes the
// archive extension to the one the network actually serves. A changed
// extension flags the candidate for re-encoding.
func (p *Planner) perlArchivePlan(u *url.URL, canonicalize func(*url.URL), wantExt string) []FetchPlanStep {
	if canonicalize != nil {
		canonicalize(u)
	}

	reencode := false
	if ext := p.recognizedExt(path.Base(u.Path)); ext != "" && ext != wantExt {
		u.Path = strings.TrimSuffix(u.Path, ext) + wantExt
		reencode = true
	}

	return []FetchPlanStep{{URL: u.String(), ReencodeRequired: reencode}}
}

// cpanCanonicalize points a CPAN URL at the canonical www mirror over
// plain HTTP, dropping the FTP-era /pub/CPAN path prefix.
func cpanCanonicalize(u *url.URL) {
	u.Scheme = "http"
	u.Host = "www.cpan.org"
	u.Path = strings.TrimPrefix(u.Path, "/pub/CPAN")
}

// recognizedExt returns the longest configured extension the filename
// carries, or "".
func (p *Planner) recognizedExt(filename string) string {
	exts := make([]string, len(p.Extensions))
	copy(exts, p.Extensions)
	sort.Slice(exts, func(i, j int) bool { return len(exts[i]) > len(exts[j]) })

	for _, ext := range exts {
		if strings.HasSuffix(filename, ext) {
			return ext
		}
	}
	return ""
}

// majorMinor reduces a version to its first two dot-separated
// components: "2.10.0" -> "2.10". Shorter versions pass through.
func majorMinor(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}
