// Package header exposes the parsed preamble of a spec document. The
// heavy lifting of macro expansion is delegated to rpmspec; this package
// only snapshots the fields the updater needs.
package header

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rtissier/specbump/internal/run"
)

// Snapshot holds the declared header state of a spec document at one
// point in time. Snapshots are immutable value objects; the updater
// takes one before and one after the rewrite and diffs them.
type Snapshot struct {
	Name          string
	Version       string
	Release       string
	Epoch         string
	URL           string
	Sources       []string
	BuildRequires []string
}

// Parser turns a spec file into a header Snapshot.
type Parser interface {
	Parse(ctx context.Context, specPath string) (*Snapshot, error)
}

// ParseError reports a spec file whose header could not be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing spec %s: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RPMParser parses spec headers by running rpmspec and scanning the
// macro-expanded output.
type RPMParser struct {
	Runner run.Runner
}

var headerTagRE = regexp.MustCompile(`^(\w+?)(\d*)[ \t]*:[ \t]*(.*?)[ \t]*$`)

func (p *RPMParser) Parse(ctx context.Context, specPath string) (*Snapshot, error) {
	out, err := p.Runner.Run(ctx, "rpmspec", "--parse", specPath)
	if err != nil {
		return nil, &ParseError{Path: specPath, Err: err}
	}

	snap := &Snapshot{}
	for _, line := range strings.Split(string(out), "\n") {
		m := headerTagRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		tag, value := strings.ToLower(m[1]), m[3]
		if value == "" {
			continue
		}

		switch tag {
		case "name":
			if snap.Name == "" {
				snap.Name = value
			}
		case "version":
			if snap.Version == "" {
				snap.Version = value
			}
		case "release":
			if snap.Release == "" {
				snap.Release = value
			}
		case "epoch":
			if snap.Epoch == "" {
				snap.Epoch = value
			}
		case "url":
			if snap.URL == "" {
				snap.URL = value
			}
		case "source":
			snap.Sources = append(snap.Sources, value)
		case "buildrequires":
			snap.BuildRequires = append(snap.BuildRequires, splitRequires(value)...)
		}
	}

	if snap.Name == "" || snap.Version == "" {
		return nil, &ParseError{Path: specPath, Err: fmt.Errorf("no package header found")}
	}
	return snap, nil
}

// splitRequires breaks a BuildRequires value into individual
// dependencies, keeping version constraints attached to their package.
func splitRequires(value string) []string {
	fields := strings.Split(value, ",")
	var reqs []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			reqs = append(reqs, f)
		}
	}
	return reqs
}
