package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/moamenhredeen/oasprobe/internal/models"
)

const (
	// DefaultFetchTimeout bounds a single document download
	DefaultFetchTimeout = 30 * time.Second
	// DefaultMaxDocumentSize bounds the bytes read from a document response
	DefaultMaxDocumentSize int64 = 10 << 20
)

// FetchError reports a document that could not be retrieved or parsed
type FetchError struct {
	URL   string
	Cause error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching spec from %s: %v", e.URL, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Fetcher downloads and parses Swagger/OpenAPI documents
type Fetcher struct {
	client  *http.Client
	maxSize int64
}

// NewFetcher creates a fetcher using a client bounded by timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, maxSize: DefaultMaxDocumentSize}
}

// NewFetcherWithClient creates a fetcher on top of an existing client
func NewFetcherWithClient(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &Fetcher{client: client, maxSize: DefaultMaxDocumentSize}
}

// SetMaxSize caps the document size; n <= 0 restores the default
func (f *Fetcher) SetMaxSize(n int64) *Fetcher {
	if n <= 0 {
		n = DefaultMaxDocumentSize
	}
	f.maxSize = n
	return f
}

// Fetch issues an unauthenticated GET to url and parses the body.
// Every failure is returned as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.SpecDocument, error) {
	data, err := f.download(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}

	doc, err := Parse(data, url)
	if err != nil {
		return nil, &FetchError{URL: url, Cause: err}
	}
	return doc, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	// One extra byte tells an oversized document from one that fits exactly
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading spec: %w", err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("document exceeds %d bytes", f.maxSize)
	}
	return data, nil
}
