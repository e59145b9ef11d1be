package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/gitlevel/pkg/cache"
	gerrors "github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/httputil"
)

var fastRetry = httputil.Policy{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

func newTestClient(t *testing.T, server *httptest.Server, headers map[string]string) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	client := NewClient(c, "test", time.Hour, headers, WithRetryPolicy(fastRetry))
	if server != nil {
		client.http = server.Client()
	}
	return client
}

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test", time.Hour, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test", time.Hour, nil)
	if client.cache == nil {
		t.Fatal("NewClient(nil) should fall back to a null cache")
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		ua = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if !strings.HasPrefix(ua, "gitlevel/") {
		t.Errorf("User-Agent = %q, want gitlevel/ prefix", ua)
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var custom, override string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		custom = r.Header.Get("X-Custom")
		override = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := newTestClient(t, server, map[string]string{"X-Override": "default"})

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL,
		map[string]string{"X-Custom": "custom", "X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if custom != "custom" {
		t.Errorf("custom header = %q, want %q", custom, "custom")
	}
	if override != "overridden" {
		t.Errorf("override header = %q, want %q", override, "overridden")
	}
}

func TestClientGetStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		header    map[string]string
		wantErr   error
		retryable bool
		limited   bool
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrNetwork, retryable: true},
		{name: "plain forbidden", status: http.StatusForbidden, wantErr: ErrNetwork},
		{name: "exhausted limit", status: http.StatusForbidden, header: map[string]string{"X-RateLimit-Remaining": "0"}, limited: true},
		{name: "too many requests", status: http.StatusTooManyRequests, header: map[string]string{"Retry-After": "30"}, limited: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.header {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server, nil)
			var resp map[string]string
			err := client.Get(context.Background(), server.URL, &resp)
			if err == nil {
				t.Fatal("Get() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
			var retryErr *httputil.RetryableError
			if got := errors.As(err, &retryErr); got != tt.retryable {
				t.Errorf("retryable = %v, want %v", got, tt.retryable)
			}
			if got := gerrors.GetCode(err) == gerrors.ErrCodeRateLimited; got != tt.limited {
				t.Errorf("rate limited = %v, want %v (err %v)", got, tt.limited, err)
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		name   string
		header http.Header
		want   int
	}{
		{"retry-after", http.Header{"Retry-After": {"12"}}, 12},
		{"reset", http.Header{"X-Ratelimit-Reset": {strconv.FormatInt(now.Unix()+90, 10)}}, 90},
		{"reset in past", http.Header{"X-Ratelimit-Reset": {strconv.FormatInt(now.Unix()-5, 10)}}, 0},
		{"none", http.Header{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryAfter(tt.header, now); got != tt.want {
				t.Errorf("retryAfter() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClientCached(t *testing.T) {
	client := newTestClient(t, nil, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second testData
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}

	var third testData
	if err := client.Cached(context.Background(), "key", true, &third, fetch(&third)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 2 {
		t.Errorf("refresh should bypass cache, fetch count = %d", fetchCount)
	}
}

func TestClientCachedRetriesTransientErrors(t *testing.T) {
	client := newTestClient(t, nil, nil)

	attempts := 0
	var value string
	err := client.Cached(context.Background(), "flaky", false, &value, func() error {
		attempts++
		if attempts < 3 {
			return &httputil.RetryableError{Err: ErrNetwork}
		}
		value = "ok"
		return nil
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := newTestClient(t, nil, nil)

	fetchCount := 0
	var value string
	err := client.Cached(context.Background(), "missing", false, &value, func() error {
		fetchCount++
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if fetchCount != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", fetchCount)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantErr   bool
		wantType  error
		retryable bool
	}{
		{name: "200 OK", code: 200},
		{name: "404 Not Found", code: 404, wantErr: true, wantType: ErrNotFound},
		{name: "500 Internal Server Error", code: 500, wantErr: true, retryable: true},
		{name: "502 Bad Gateway", code: 502, wantErr: true, retryable: true},
		{name: "503 Service Unavailable", code: 503, wantErr: true, retryable: true},
		{name: "400 Bad Request", code: 400, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("checkStatus() should return error")
			}
			if tt.wantType != nil && !errors.Is(err, tt.wantType) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantType)
			}
			var retryErr *httputil.RetryableError
			if errors.As(err, &retryErr) != tt.retryable {
				t.Errorf("checkStatus() retryable = %v, want %v", !tt.retryable, tt.retryable)
			}
		})
	}
}

func TestURLEncode(t *testing.T) {
	if got := URLEncode("a b/c"); got != "a%20b%2Fc" {
		t.Errorf("URLEncode() = %q", got)
	}
}
