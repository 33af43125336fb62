// Package fetch downloads source archives. It is a collaborator of the
// update engine: the engine decides which candidates to try and in what
// order, this package only performs single downloads.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rtissier/specbump/internal/run"
)

// Result describes one completed download. ContentType is the server's
// claim where the transport provides one; callers may use it to reject
// HTML error pages served with a 200.
type Result struct {
	Path        string
	ContentType string
}

// Fetcher downloads one URL into destDir.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, destDir string) (*Result, error)
}

// HTTPClient abstracts HTTP operations for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DownloadError reports an exhausted fetch plan: every candidate for a
// logical source failed.
type DownloadError struct {
	Source   string
	Attempts []string
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("%s: all %d download candidate(s) failed: %s",
		e.Source, len(e.Attempts), e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Client fetches over HTTP(S) directly and over FTP through curl. The
// timeout bounds one attempt; zero means no bound beyond the context.
type Client struct {
	HTTP    HTTPClient
	Runner  run.Runner
	Timeout time.Duration
}

func (c *Client) Fetch(ctx context.Context, rawURL, destDir string) (*Result, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	dest := filepath.Join(destDir, destFilename(u))

	switch u.Scheme {
	case "http", "https":
		return c.fetchHTTP(ctx, rawURL, dest)
	case "ftp":
		return c.fetchCurl(ctx, rawURL, dest)
	default:
		return nil, fmt.Errorf("unsupported scheme %q in %s", u.Scheme, rawURL)
	}
}

func (c *Client) fetchHTTP(ctx context.Context, rawURL, dest string) (*Result, error) {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("writing %s: %w", dest, err)
	}

	return &Result{Path: dest, ContentType: resp.Header.Get("Content-Type")}, nil
}

func (c *Client) fetchCurl(ctx context.Context, rawURL, dest string) (*Result, error) {
	runner := c.Runner
	if runner == nil {
		runner = run.ExecRunner{}
	}

	if _, err := runner.Run(ctx, "curl", "--silent", "--fail", "--output", dest, rawURL); err != nil {
		os.Remove(dest)
		return nil, err
	}

	if _, err := os.Stat(dest); err != nil {
		return nil, fmt.Errorf("curl produced no file for %s: %w", rawURL, err)
	}
	return &Result{Path: dest}, nil
}

// destFilename strips any directory part a URL path carries; downloads
// always land directly in destDir.
func destFilename(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" || strings.Contains(name, "..") {
		return "download"
	}
	return name
}
