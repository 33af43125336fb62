package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "30s" style values decode from yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Config represents the specbump.yaml configuration file.
type Config struct {
	// Packager is the identity written into changelog entry titles,
	// e.g. "Jane Doe <jane@example.org>".
	Packager string `yaml:"packager"`

	// ReleaseSuffix is a fixed literal trailing the numeric release
	// component, e.g. a distribution tag like "mdv2007.0". Matched
	// exactly, never as a pattern.
	ReleaseSuffix string `yaml:"release_suffix,omitempty"`

	// ChangelogMessages are the message templates used for new changelog
	// entries. "{version}" in a template is replaced with the new version.
	// When empty, a default message is chosen per operation.
	ChangelogMessages []string `yaml:"changelog_messages,omitempty"`

	// RewriteRules map homepage URLs to download locations. Rules are
	// tried in order; the first matching pattern wins.
	RewriteRules []RewriteRule `yaml:"rewrite_rules,omitempty"`

	// SourceforgeMirrors are mirror identifiers substituted into the
	// SourceForge download host, in preference order.
	SourceforgeMirrors []string `yaml:"sourceforge_mirrors,omitempty"`

	// AlternateExtensions are the archive extensions recognized when
	// normalizing a source filename, in preference order.
	AlternateExtensions []string `yaml:"alternate_extensions,omitempty"`

	// ReencodeCommand is the program (plus fixed arguments) invoked to
	// recompress a downloaded archive into the wanted format. The
	// downloaded file path is appended as the final argument.
	ReencodeCommand []string `yaml:"reencode_command,omitempty"`

	// FetchTimeout bounds a single download attempt. Zero means no
	// timeout beyond the caller's context.
	FetchTimeout Duration `yaml:"fetch_timeout,omitempty"`

	// Verbosity controls the progress trace: 0 = errors only,
	// 1 = per-operation summary, 2 = per-candidate detail.
	Verbosity int `yaml:"verbosity,omitempty"`
}

// RewriteRule rewrites a homepage URL into a download base URL.
// Pattern is a regular expression; Template may reference capture
// groups positionally ($1, $2, ...).
type RewriteRule struct {
	Pattern  string `yaml:"pattern"`
	Template string `yaml:"template"`
}
