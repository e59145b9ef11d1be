package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a user or repository doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// URLEncode percent-encodes a string for use in URL paths and queries.
// This is a convenience wrapper around [url.PathEscape].
func URLEncode(s string) string { return url.PathEscape(s) }
