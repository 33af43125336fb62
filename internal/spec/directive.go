package spec

import "regexp"

// Kind identifies which field a directive line declares.
type Kind int

const (
	KindVersion Kind = iota
	KindRelease
)

func (k Kind) String() string {
	if k == KindVersion {
		return "version"
	}
	return "release"
}

// Form identifies the textual shape of a directive line.
type Form int

const (
	// FormMacro is a "%define version 1.2" style definition.
	FormMacro Form = iota
	// FormTag is a "Version: 1.2" style tag assignment.
	FormTag
)

// Directive is one recognized version or release declaration line, split
// into the prefix to preserve verbatim on rewrite and the current value.
type Directive struct {
	Kind   Kind
	Form   Form
	Prefix string
	Value  string
}

// Only two shapes are recognized per field: the macro definition and the
// tag assignment. Tokens may be separated by any run of spaces and tabs;
// the value is everything up to trailing horizontal whitespace. The tag
// name is case-insensitive, the macro name is not. "rel" is accepted as
// an alias for the release macro.
var directivePatterns = []struct {
	kind Kind
	form Form
	re   *regexp.Regexp
}{
	{KindVersion, FormMacro, regexp.MustCompile(`^(%define[ \t]+version[ \t]+)(.*?)[ \t]*$`)},
	{KindVersion, FormTag, regexp.MustCompile(`^((?i:version)[ \t]*:[ \t]*)(.*?)[ \t]*$`)},
	{KindRelease, FormMacro, regexp.MustCompile(`^(%define[ \t]+(?:release|rel)[ \t]+)(.*?)[ \t]*$`)},
	{KindRelease, FormTag, regexp.MustCompile(`^((?i:release)[ \t]*:[ \t]*)(.*?)[ \t]*$`)},
}

// ScanDirective reports whether line declares the given field, returning
// the split directive on a match. Pure function of the line.
func ScanDirective(line string, kind Kind) (Directive, bool) {
	for _, p := range directivePatterns {
		if p.kind != kind {
			continue
		}
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[2] == "" {
			continue // a directive with no value is left alone
		}
		return Directive{Kind: p.kind, Form: p.form, Prefix: m[1], Value: m[2]}, true
	}
	return Directive{}, false
}
