package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const exampleConfig = `packager: "Jane Doe <jane@example.org>"
release_suffix: mdv2007.0
changelog_messages:
  - "New version {version}"
rewrite_rules:
  - pattern: '^https?://example\.org/([\w-]+)/?'
    template: 'http://dl.example.org/$1'
sourceforge_mirrors: [heanet, ovh]
alternate_extensions: [".tar.bz2", ".tar.gz"]
fetch_timeout: 30s
verbosity: 1
`

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specbump.yaml")
	if err := os.WriteFile(path, []byte(exampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Packager != "Jane Doe <jane@example.org>" {
		t.Errorf("packager = %q", cfg.Packager)
	}
	if cfg.ReleaseSuffix != "mdv2007.0" {
		t.Errorf("release_suffix = %q", cfg.ReleaseSuffix)
	}
	if len(cfg.RewriteRules) != 1 {
		t.Errorf("rewrite_rules = %d, want 1 (file replaces defaults)", len(cfg.RewriteRules))
	}
	if cfg.FetchTimeout != Duration(30*time.Second) {
		t.Errorf("fetch_timeout = %v", cfg.FetchTimeout)
	}
	if len(cfg.SourceforgeMirrors) != 2 {
		t.Errorf("mirrors = %v", cfg.SourceforgeMirrors)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.RewriteRules) == 0 {
		t.Error("expected default rewrite rules")
	}
	if len(cfg.SourceforgeMirrors) == 0 {
		t.Error("expected default mirrors")
	}
	if cfg.Packager == "" {
		t.Error("expected derived packager identity")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specbump.yaml")
	if err := os.WriteFile(path, []byte("packager: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestValidateBadPattern(t *testing.T) {
	cfg := Default()
	cfg.RewriteRules = []RewriteRule{{Pattern: "(unclosed", Template: "x"}}
	errs := Validate(cfg)
	if !containsSubstring(errs, "invalid pattern") {
		t.Errorf("expected pattern error, got: %v", errs)
	}
}

func TestValidateMissingTemplate(t *testing.T) {
	cfg := Default()
	cfg.RewriteRules = []RewriteRule{{Pattern: "^x$"}}
	errs := Validate(cfg)
	if !containsSubstring(errs, "'template' is required") {
		t.Errorf("expected template error, got: %v", errs)
	}
}

func TestValidateExtensionWithoutDot(t *testing.T) {
	cfg := Default()
	cfg.AlternateExtensions = []string{"tar.gz"}
	errs := Validate(cfg)
	if !containsSubstring(errs, "must start with '.'") {
		t.Errorf("expected extension error, got: %v", errs)
	}
}

func TestValidateMirrorWithHostParts(t *testing.T) {
	cfg := Default()
	cfg.SourceforgeMirrors = []string{"heanet.dl.sourceforge.net"}
	errs := Validate(cfg)
	if !containsSubstring(errs, "bare mirror identifier") {
		t.Errorf("expected mirror error, got: %v", errs)
	}
}

func TestValidateDefaultsClean(t *testing.T) {
	if errs := Validate(Default()); len(errs) != 0 {
		t.Errorf("default config should validate, got: %v", errs)
	}
}

func containsSubstring(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
