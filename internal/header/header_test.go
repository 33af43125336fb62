package header

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeRunner returns canned output for the single command it expects.
type fakeRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.output, f.err
}

const parsedSpec = `Name: dictd
Version: 0.58
Release: 1mdv2007.0
Epoch: 1
URL: http://www.dict.org/
Source0: ftp://ftp.dict.org/pub/dict/dictd-0.58.tar.gz
Source1: dictd.init
BuildRequires: flex, bison >= 1.875
BuildRequires: libtool

%description
A dictionary server.
`

func TestRPMParserFields(t *testing.T) {
	r := &fakeRunner{output: []byte(parsedSpec)}
	p := &RPMParser{Runner: r}

	snap, err := p.Parse(context.Background(), "/specs/dictd.spec")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if snap.Name != "dictd" {
		t.Errorf("name = %q", snap.Name)
	}
	if snap.Version != "0.58" {
		t.Errorf("version = %q", snap.Version)
	}
	if snap.Release != "1mdv2007.0" {
		t.Errorf("release = %q", snap.Release)
	}
	if snap.Epoch != "1" {
		t.Errorf("epoch = %q", snap.Epoch)
	}
	if snap.URL != "http://www.dict.org/" {
		t.Errorf("url = %q", snap.URL)
	}
	if len(snap.Sources) != 2 {
		t.Fatalf("sources = %v", snap.Sources)
	}
	if snap.Sources[0] != "ftp://ftp.dict.org/pub/dict/dictd-0.58.tar.gz" {
		t.Errorf("source0 = %q", snap.Sources[0])
	}
	want := []string{"flex", "bison >= 1.875", "libtool"}
	if fmt.Sprint(snap.BuildRequires) != fmt.Sprint(want) {
		t.Errorf("buildrequires = %v, want %v", snap.BuildRequires, want)
	}
}

func TestRPMParserInvokesRpmspec(t *testing.T) {
	r := &fakeRunner{output: []byte("Name: x\nVersion: 1\n")}
	p := &RPMParser{Runner: r}

	if _, err := p.Parse(context.Background(), "x.spec"); err != nil {
		t.Fatal(err)
	}
	if len(r.calls) != 1 {
		t.Fatalf("calls = %d", len(r.calls))
	}
	got := fmt.Sprint(r.calls[0])
	if got != fmt.Sprint([]string{"rpmspec", "--parse", "x.spec"}) {
		t.Errorf("argv = %v", r.calls[0])
	}
}

func TestRPMParserCommandFailure(t *testing.T) {
	r := &fakeRunner{err: errors.New("exit status 1")}
	p := &RPMParser{Runner: r}

	_, err := p.Parse(context.Background(), "bad.spec")
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T", err)
	}
	if pe.Path != "bad.spec" {
		t.Errorf("path = %q", pe.Path)
	}
}

func TestRPMParserNoHeader(t *testing.T) {
	r := &fakeRunner{output: []byte("%description\nnothing here\n")}
	p := &RPMParser{Runner: r}

	if _, err := p.Parse(context.Background(), "empty.spec"); err == nil {
		t.Fatal("expected error for missing header")
	}
}

func TestRPMParserFirstSubpackageWins(t *testing.T) {
	out := "Name: pkg\nVersion: 2.0\nRelease: 3\nName: pkg-devel\nVersion: 9.9\n"
	r := &fakeRunner{output: []byte(out)}
	p := &RPMParser{Runner: r}

	snap, err := p.Parse(context.Background(), "pkg.spec")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Name != "pkg" || snap.Version != "2.0" {
		t.Errorf("snapshot = %+v", snap)
	}
}
