package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/gitlevel/pkg/buildinfo"
	"github.com/matzehuels/gitlevel/pkg/cache"
	"github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/httputil"
	"github.com/matzehuels/gitlevel/pkg/observability"
)

// Client provides shared HTTP functionality for API clients.
// It handles caching, retry logic, and common request headers.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
	policy    httputil.Policy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) ClientOption { return func(c *Client) { c.http = h } }

// WithKeyer replaces the default cache keyer.
func WithKeyer(k cache.Keyer) ClientOption { return func(c *Client) { c.keyer = k } }

// WithRetryPolicy replaces [httputil.DefaultPolicy].
func WithRetryPolicy(p httputil.Policy) ClientOption { return func(c *Client) { c.policy = p } }

// NewClient creates a Client that caches responses under namespace for ttl.
// Headers are applied to all requests made through this client; pass nil if
// none are needed. A nil cache disables caching.
func NewClient(c cache.Cache, namespace string, ttl time.Duration, headers map[string]string, opts ...ClientOption) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	client := &Client{
		http:      NewHTTPClient(),
		cache:     c,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		policy:    httputil.DefaultPolicy,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; on success, v is stored in the cache.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	fullKey := c.keyer.HTTPKey(c.namespace, key)
	hooks := observability.Cache()

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, fullKey); ok {
			if json.Unmarshal(data, v) == nil {
				hooks.OnCacheHit(ctx, c.namespace)
				return nil
			}
		}
		hooks.OnCacheMiss(ctx, c.namespace)
	}

	if err := c.policy.Do(ctx, fetch); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, fullKey, data, c.ttl) == nil {
			hooks.OnCacheSet(ctx, c.namespace, len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := requestTarget(req.URL)
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func requestTarget(u *url.URL) (host, path string) {
	return u.Host, u.Path
}

// checkResponse reports exhausted rate limits before falling back to
// checkStatus. GitHub answers 403 (primary limit) or 429 (secondary limit).
func checkResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0") {
		return &errors.RateLimitedError{
			RetryAfter: retryAfter(resp.Header, time.Now()),
			Message:    fmt.Sprintf("%s %s", resp.Request.Method, resp.Request.URL.Path),
		}
	}
	return checkStatus(resp.StatusCode)
}

// retryAfter reads Retry-After, or derives the wait from X-RateLimit-Reset.
func retryAfter(h http.Header, now time.Time) int {
	if s, err := strconv.Atoi(h.Get("Retry-After")); err == nil && s > 0 {
		return s
	}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		if d := time.Unix(reset, 0).Sub(now); d > 0 {
			return int(d.Round(time.Second).Seconds())
		}
	}
	return 0
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
