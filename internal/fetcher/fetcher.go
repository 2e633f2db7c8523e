package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nao1215/pagecrawl/internal/model"
	"golang.org/x/net/html/charset"
)

// Default fetcher settings.
const (
	// DefaultUserAgent is a current desktop browser identifier. Many sites
	// refuse or degrade responses for unknown clients.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultTimeout bounds one request including reading the body.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// HeaderFunc returns extra request headers for a host.
// It may return nil.
type HeaderFunc func(host string) http.Header

// HTTPFetcher fetches pages over HTTP and extracts their links.
// It never retries; a failed request is reported to the caller as is.
type HTTPFetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	headers     HeaderFunc
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes to read.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithHeaders sets a function that supplies extra headers per host,
// such as cookies or authorization from the site configuration.
func WithHeaders(fn HeaderFunc) Option {
	return func(f *HTTPFetcher) {
		f.headers = fn
	}
}

// New creates an HTTPFetcher. If client is nil, a client with
// DefaultTimeout and no proxy is used.
func New(client *http.Client, opts ...Option) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	f := &HTTPFetcher{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch performs a GET request for pageURL and returns the document with
// its outbound links. Non-2xx responses are returned as *FetchError.
// Links are only extracted from HTML responses.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL string) (*model.Document, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if f.headers != nil {
		for key, values := range f.headers(u.Hostname()) {
			req.Header.Del(key)
			for _, v := range values {
				req.Header.Add(key, v)
			}
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096) //nolint:errcheck // best effort
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: ErrUnexpectedStatus}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	doc := &model.Document{
		URL:         pageURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
		Links:       make([]string, 0),
	}

	if doc.IsHTML() {
		body, err := decodeBody(raw, doc.ContentType)
		if err == nil {
			doc.Body = body
		}

		parser, err := NewParser(pageURL)
		if err != nil {
			return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: err}
		}
		result, err := parser.Parse(bytes.NewReader(doc.Body))
		if err != nil {
			return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("malformed HTML: %w", err)}
		}
		doc.Title = result.Title
		doc.Links = result.Links
	}

	doc.ComputeHash()
	return doc, nil
}

// decodeBody converts body from the charset declared in the content type
// or the document itself to UTF-8.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}
