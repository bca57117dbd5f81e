package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
)

// UserAgent is sent with every outbound request. Some hosts refuse
// requests without one.
const UserAgent = "pwa2native/1.0 (+https://github.com/Ismailco/PWA2Native)"

// DefaultTimeout bounds a single request, body included.
const DefaultTimeout = 30 * time.Second

// Client is a shared HTTP client with a 30-second timeout, used for
// manifest, page and icon retrieval. The transport transparently
// negotiates gzip and zstd.
var Client = NewClient(DefaultTimeout)

// NewClient returns a client with the given overall timeout and the
// compressing transport.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: gzhttp.Transport(http.DefaultTransport),
	}
}

// Get issues a GET with ctx using c (or the shared Client when c is nil).
// The caller owns the response body.
func Get(ctx context.Context, c *http.Client, url string) (*http.Response, error) {
	if c == nil {
		c = Client
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	return c.Do(req)
}

// Post issues a POST of body with the given content type.
func Post(ctx context.Context, c *http.Client, url, contentType string, body io.Reader) (*http.Response, error) {
	if c == nil {
		c = Client
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", UserAgent)
	return c.Do(req)
}

// PostForm issues a POST with form-encoded values.
func PostForm(ctx context.Context, c *http.Client, url string, values neturl.Values) (*http.Response, error) {
	return Post(ctx, c, url, "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

// CheckStatus returns an error if the response status code is not 2xx.
// The prefix is included in the error message for context (e.g. "manifest: fetch").
func CheckStatus(resp *http.Response, prefix string) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Prefix: prefix, Code: resp.StatusCode, Snippet: ReadSnippet(resp.Body)}
	}
	return nil
}

// StatusError is returned by CheckStatus for non-2xx responses.
type StatusError struct {
	Prefix  string
	Code    int
	Snippet string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Prefix, e.Code, e.Snippet)
}

// ReadSnippet reads up to 200 bytes from r for inclusion in error messages.
func ReadSnippet(r io.Reader) string {
	buf := make([]byte, 200)
	n, _ := io.ReadFull(r, buf)
	if n == 0 {
		return "(empty body)"
	}
	s := string(buf[:n])
	if n == 200 {
		s += "..."
	}
	return s
}
