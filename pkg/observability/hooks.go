// Package observability lets the binary observe the stats pipeline, the
// response cache and outgoing HTTP calls without those packages importing a
// metrics backend.
//
// Library code reads the current hooks and calls them unconditionally:
//
//	observability.Pipeline().OnFetchStart(ctx, user)
//
// The server installs its Prometheus collectors once at startup:
//
//	observability.Register(observability.Hooks{Pipeline: m, Cache: m, HTTP: m})
//
// Until then every hook is a no-op.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the stats pipeline.
type PipelineHooks interface {
	OnFetchStart(ctx context.Context, user string)
	OnFetchComplete(ctx context.Context, user string, repoCount int, duration time.Duration, err error)

	// OnAnalyzed reports the evaluated level for a user.
	OnAnalyzed(ctx context.Context, user string, totalBytes int64, level int)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is the key
// namespace, e.g. "github" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives outgoing requests to upstream APIs. OnError covers
// transport failures only; HTTP error statuses arrive through OnResponse.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// Hooks bundles one receiver per event source. Nil fields are left as they
// were when passed to Register.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFetchStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnFetchComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnAnalyzed(context.Context, string, int64, int)                     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                            {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)   {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every outgoing request.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

func noop() *Hooks {
	return &Hooks{Pipeline: NoopPipelineHooks{}, Cache: NoopCacheHooks{}, HTTP: NoopHTTPHooks{}}
}

var current atomic.Pointer[Hooks]

func init() { current.Store(noop()) }

// Register replaces the non-nil hooks in h.
func Register(h Hooks) {
	for {
		old := current.Load()
		next := *old
		if h.Pipeline != nil {
			next.Pipeline = h.Pipeline
		}
		if h.Cache != nil {
			next.Cache = h.Cache
		}
		if h.HTTP != nil {
			next.HTTP = h.HTTP
		}
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Reset restores the no-op hooks.
func Reset() { current.Store(noop()) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().Pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().HTTP }
