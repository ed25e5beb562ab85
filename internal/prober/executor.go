package prober

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/moamenhredeen/oasprobe/internal/models"
)

const (
	// DefaultTimeout bounds a single endpoint probe
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodySize bounds the bytes kept from a response body
	DefaultMaxBodySize int64 = 1 << 20
)

// RequestError reports a probe that got no usable response
type RequestError struct {
	Method string
	URL    string
	Cause  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Executor issues unauthenticated requests, one attempt each
type Executor struct {
	client  *http.Client
	maxBody int64
}

// NewExecutor creates an executor whose requests are bounded by timeout
func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{client: &http.Client{Timeout: timeout}, maxBody: DefaultMaxBodySize}
}

// NewExecutorWithClient creates an executor on top of an existing client
func NewExecutorWithClient(client *http.Client) *Executor {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Executor{client: client, maxBody: DefaultMaxBodySize}
}

// SetMaxBodySize caps the recorded body; longer bodies are truncated.
// n <= 0 restores the default.
func (e *Executor) SetMaxBodySize(n int64) *Executor {
	if n <= 0 {
		n = DefaultMaxBodySize
	}
	e.maxBody = n
	return e
}

// Do sends method to url without a body, headers or credentials and returns
// the status code and the body, truncated to the size cap. Failures are *RequestError.
func (e *Executor) Do(ctx context.Context, method, url string) (int, string, error) {
	method = strings.ToUpper(method)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, "", &RequestError{Method: method, URL: url, Cause: err}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, "", &RequestError{Method: method, URL: url, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBody))
	if err != nil {
		return 0, "", &RequestError{Method: method, URL: url, Cause: fmt.Errorf("reading response: %w", err)}
	}

	return resp.StatusCode, string(body), nil
}

// Issue probes url and records the outcome. A failed request yields the
// Error sentinel status with the failure description as body.
func (e *Executor) Issue(ctx context.Context, method, url string) models.ExecutionResult {
	result := models.ExecutionResult{
		Method: strings.ToUpper(method),
		URL:    url,
	}

	code, body, err := e.Do(ctx, method, url)
	if err != nil {
		result.Status = models.StatusError()
		result.Body = err.Error()
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			result.Body = reqErr.Cause.Error()
		}
		return result
	}

	result.Status = models.StatusCode(code)
	result.Body = body
	return result
}
