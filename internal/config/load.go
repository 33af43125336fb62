package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Default returns the built-in configuration. The tool is usable with no
// config file at all; a file only overrides these values.
func Default() *Config {
	return &Config{
		Packager: defaultPackager(),
		RewriteRules: []RewriteRule{
			{Pattern: `^https?://([\w-]+)\.sourceforge\.net/?`, Template: `http://prdownloads.sourceforge.net/$1`},
			{Pattern: `^https?://sourceforge\.net/projects/([\w-]+)/?`, Template: `http://prdownloads.sourceforge.net/$1`},
			{Pattern: `^https?://savannah\.nongnu\.org/projects/([\w-]+)/?`, Template: `http://download.savannah.nongnu.org/releases/$1`},
			{Pattern: `^https?://search\.cpan\.org/dist/([\w-]+)/?`, Template: `http://www.cpan.org/modules/by-dist/$1`},
		},
		SourceforgeMirrors:  []string{"heanet", "surfnet", "ovh", "mesh", "switch"},
		AlternateExtensions: []string{".tar.bz2", ".tar.gz", ".tgz", ".zip"},
		ReencodeCommand:     []string{"bzme", "-F"},
	}
}

// Load reads specbump.yaml, layered over the defaults. A missing file is
// not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	for i, rule := range cfg.RewriteRules {
		prefix := fmt.Sprintf("rewrite_rule[%d]", i)

		if rule.Pattern == "" {
			errs = append(errs, fmt.Sprintf("%s: 'pattern' is required", prefix))
		} else if _, err := regexp.Compile(rule.Pattern); err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid pattern: %v", prefix, err))
		}
		if rule.Template == "" {
			errs = append(errs, fmt.Sprintf("%s: 'template' is required", prefix))
		}
	}

	for i, ext := range cfg.AlternateExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Sprintf("alternate_extension[%d]: '%s' must start with '.'", i, ext))
		}
	}

	for i, m := range cfg.SourceforgeMirrors {
		if strings.ContainsAny(m, "./ ") {
			errs = append(errs, fmt.Sprintf("sourceforge_mirror[%d]: '%s' must be a bare mirror identifier", i, m))
		}
	}

	if cfg.FetchTimeout < 0 {
		errs = append(errs, "fetch_timeout must not be negative")
	}
	if cfg.Verbosity < 0 {
		errs = append(errs, "verbosity must not be negative")
	}

	return errs
}

// defaultPackager derives a packager identity from the environment so a
// bare run still produces attributable changelog entries. The ambient
// lookup happens once here; everything downstream receives the value as
// plain configuration.
func defaultPackager() string {
	name := os.Getenv("RPM_PACKAGER")
	if name != "" {
		return name
	}
	user := os.Getenv("USER")
	if user == "" {
		user = "unknown"
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("%s <%s@%s>", user, user, host)
}
