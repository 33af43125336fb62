package source

import (
	"fmt"
	"regexp"

	"github.com/rtissier/specbump/internal/config"
)

// RuleEngine rewrites homepage URLs into download base URLs using an
// ordered rule table. The table is compiled once at construction and
// immutable afterwards.
type RuleEngine struct {
	rules []compiledRule
}

type compiledRule struct {
	pattern  *regexp.Regexp
	template string
}

// NewRuleEngine compiles the configured rewrite rules, preserving their
// order.
func NewRuleEngine(rules []config.RewriteRule) (*RuleEngine, error) {
	e := &RuleEngine{rules: make([]compiledRule, 0, len(rules))}
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rewrite rule %d: %w", i, err)
		}
		e.rules = append(e.rules, compiledRule{pattern: re, template: r.Template})
	}
	return e, nil
}

// Apply rewrites url using the first matching rule, expanding $1-style
// capture references in its template. With no matching rule the URL is
// returned unchanged.
func (e *RuleEngine) Apply(url string) string {
	for _, r := range e.rules {
		idx := r.pattern.FindStringSubmatchIndex(url)
		if idx == nil {
			continue
		}
		return string(r.pattern.ExpandString(nil, r.template, url, idx))
	}
	return url
}
