package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFetchHTTPWritesFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-bzip2")
		w.Write([]byte("archive bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := &Client{}
	res, err := c.Fetch(context.Background(), srv.URL+"/pub/dictd-0.60.tar.bz2", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if res.Path != filepath.Join(dir, "dictd-0.60.tar.bz2") {
		t.Errorf("path = %q", res.Path)
	}
	if res.ContentType != "application/x-bzip2" {
		t.Errorf("content type = %q", res.ContentType)
	}
	data, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "archive bytes" {
		t.Errorf("content = %q", string(data))
	}
}

func TestFetchHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{}
	if _, err := c.Fetch(context.Background(), srv.URL+"/missing.tar.gz", t.TempDir()); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestFetchUnsupportedScheme(t *testing.T) {
	c := &Client{}
	if _, err := c.Fetch(context.Background(), "gopher://example.org/x", t.TempDir()); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

// fakeRunner simulates curl by writing the destination file itself.
type fakeRunner struct {
	fail  bool
	calls [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.fail {
		return nil, errors.New("curl: (9) server denied")
	}
	// curl's --output argument is the value after the flag.
	for i, a := range args {
		if a == "--output" && i+1 < len(args) {
			if err := os.WriteFile(args[i+1], []byte("ftp bytes"), 0644); err != nil {
				return nil, err
			}
		}
	}
	return nil, nil
}

func TestFetchFTPViaCurl(t *testing.T) {
	r := &fakeRunner{}
	c := &Client{Runner: r}
	dir := t.TempDir()

	res, err := c.Fetch(context.Background(), "ftp://ftp.dict.org/pub/dict/dictd-0.60.tar.gz", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Path != filepath.Join(dir, "dictd-0.60.tar.gz") {
		t.Errorf("path = %q", res.Path)
	}
	if len(r.calls) != 1 || r.calls[0][0] != "curl" {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestFetchFTPFailure(t *testing.T) {
	c := &Client{Runner: &fakeRunner{fail: true}}
	if _, err := c.Fetch(context.Background(), "ftp://example.org/a.tar.gz", t.TempDir()); err == nil {
		t.Fatal("expected error")
	}
}

func TestDownloadErrorMessage(t *testing.T) {
	err := &DownloadError{
		Source:   "http://example.org/a.tar.gz",
		Attempts: []string{"http://m1/a.tar.gz", "http://m2/a.tar.gz"},
		Err:      fmt.Errorf("HTTP 404"),
	}
	var de *DownloadError
	if !errors.As(error(err), &de) {
		t.Fatal("errors.As failed")
	}
	if de.Error() == "" || len(de.Attempts) != 2 {
		t.Errorf("error = %q", de.Error())
	}
}

func TestDestFilenameSanitized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := &Client{}
	res, err := c.Fetch(context.Background(), srv.URL+"/", dir)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if filepath.Dir(res.Path) != dir {
		t.Errorf("download escaped destDir: %q", res.Path)
	}
}
