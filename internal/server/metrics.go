package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/gitlevel/pkg/observability"
)

// Metrics records server, pipeline, cache and upstream activity in a
// dedicated Prometheus registry. It implements the observability hook
// interfaces; [Metrics.Install] registers it globally.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fetches         *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	repos           prometheus.Histogram
	levels          prometheus.Histogram
	renders         *prometheus.CounterVec
	cacheOps        *prometheus.CounterVec
	upstream        *prometheus.CounterVec
	upstreamLatency prometheus.Histogram
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitlevel_http_requests_total",
			Help: "Requests served, by route and status code.",
		}, []string{"route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gitlevel_http_request_duration_seconds",
			Help:    "Request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitlevel_fetches_total",
			Help: "Contribution fetches, by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gitlevel_fetch_duration_seconds",
			Help:    "Time to list repositories and their languages.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		repos: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gitlevel_fetched_repositories",
			Help:    "Counted repositories per fetch.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		levels: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gitlevel_evaluated_level",
			Help:    "Levels handed out.",
			Buckets: prometheus.LinearBuckets(1, 3, 10),
		}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitlevel_renders_total",
			Help: "Card renders, by result.",
		}, []string{"result"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitlevel_cache_operations_total",
			Help: "Cache lookups and writes, by namespace and operation.",
		}, []string{"namespace", "op"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gitlevel_upstream_requests_total",
			Help: "Outgoing API requests, by host and status code.",
		}, []string{"host", "status"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gitlevel_upstream_request_duration_seconds",
			Help:    "Outgoing API request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.requests, m.requestDuration,
		m.fetches, m.fetchDuration, m.repos, m.levels, m.renders,
		m.cacheOps, m.upstream, m.upstreamLatency,
	)
	return m
}

// Install registers m as the process-wide pipeline, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.Register(observability.Hooks{Pipeline: m, Cache: m, HTTP: m})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) observeRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) OnFetchStart(context.Context, string) {}

func (m *Metrics) OnFetchComplete(_ context.Context, _ string, repos int, d time.Duration, err error) {
	if err != nil {
		m.fetches.WithLabelValues("error").Inc()
		return
	}
	m.fetches.WithLabelValues("ok").Inc()
	m.fetchDuration.Observe(d.Seconds())
	m.repos.Observe(float64(repos))
}

func (m *Metrics) OnAnalyzed(_ context.Context, _ string, _ int64, level int) {
	m.levels.Observe(float64(level))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.renders.WithLabelValues(result).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, ns string) {
	m.cacheOps.WithLabelValues(ns, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, ns string) {
	m.cacheOps.WithLabelValues(ns, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, ns string, _ int) {
	m.cacheOps.WithLabelValues(ns, "set").Inc()
}

func (m *Metrics) OnRequest(context.Context, string, string, string) {}

func (m *Metrics) OnResponse(_ context.Context, _, host, _ string, status int, d time.Duration) {
	m.upstream.WithLabelValues(host, strconv.Itoa(status)).Inc()
	m.upstreamLatency.Observe(d.Seconds())
}

func (m *Metrics) OnError(_ context.Context, _, host, _ string, _ error) {
	m.upstream.WithLabelValues(host, "error").Inc()
}
