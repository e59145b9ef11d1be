package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitlevel/pkg/cache"
	"github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/integrations/github"
	"github.com/matzehuels/gitlevel/pkg/observability"
	"github.com/matzehuels/gitlevel/pkg/progression"
)

// Fetcher supplies a user's counted repositories.
// *github.Client implements it.
type Fetcher interface {
	FetchContributions(ctx context.Context, user string, refresh bool) ([]progression.Repository, error)
}

// FetcherFactory builds a Fetcher for one run's token.
type FetcherFactory func(token string) Fetcher

// Runner encapsulates pipeline execution with caching.
//
// The Runner doesn't store pipeline results, so multiple goroutines can
// safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Engine evaluates totals. Defaults to [progression.Default].
	Engine *progression.Engine

	// NewFetcher builds the contribution source. Defaults to a GitHub
	// client sharing the runner's cache.
	NewFetcher FetcherFactory

	// HTTPTTL and ArtifactTTL override [cache.TTLHTTP] and [cache.TTLArtifact].
	HTTPTTL     time.Duration
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		Engine:      progression.Default(),
		HTTPTTL:     cache.TTLHTTP,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Analysis is the cached outcome of the fetch and analyze stages.
type Analysis struct {
	Repos     []progression.Repository    `json:"repos"`
	Stats     progression.Result          `json:"stats"`
	Languages []progression.LanguageShare `json:"languages"`
}

// Execute runs the complete fetch → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("user", opts.Username)

	result := &Result{Username: opts.Username}

	start := time.Now()
	a, hit, err := r.Analyze(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Repos = a.Repos
	result.Stats = a.Stats
	result.Languages = a.Languages
	result.CacheInfo.AnalysisHit = hit
	result.Timing.Fetch = time.Since(start)

	logger.Info("analyzed contributions",
		"repos", len(a.Repos),
		"bytes", a.Stats.TotalExperience,
		"level", a.Stats.Level,
		"cached", hit,
		"duration", result.Timing.Fetch)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Timing.Render = time.Since(renderStart)

	logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Timing.Render)

	return result, nil
}

// Analyze fetches and evaluates the user's contributions, reusing a cached
// analysis unless opts.Refresh is set. The bool reports a cache hit.
func (r *Runner) Analyze(ctx context.Context, opts Options) (Analysis, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Analysis{}, false, err
	}
	keyOpts := engineKeyOpts(r.engine())
	keyOpts.Format = "analysis"
	key := r.Keyer.ArtifactKey(opts.Username, keyOpts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var a Analysis
			if json.Unmarshal(data, &a) == nil {
				return a, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, opts.Username)
	fetchStart := time.Now()
	repos, err := r.fetcher(opts.GitHubToken).FetchContributions(ctx, opts.Username, opts.Refresh)
	hooks.OnFetchComplete(ctx, opts.Username, len(repos), time.Since(fetchStart), err)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeNetwork, err, "fetch contributions for %s", opts.Username)
		}
		return Analysis{}, false, err
	}

	a := Analysis{
		Repos:     repos,
		Stats:     r.engine().Analyze(repos),
		Languages: progression.Languages(repos, 0),
	}
	hooks.OnAnalyzed(ctx, opts.Username, a.Stats.TotalExperience, a.Stats.Level)

	if data, err := json.Marshal(a); err == nil {
		_ = r.Cache.Set(ctx, key, data, r.ArtifactTTL)
	}
	return a, false, nil
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts when all of them are present. The bool reports a full cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	engine := r.engine()

	// A fresh analysis may differ from the one the cached cards show.
	if !opts.Refresh && res.CacheInfo.AnalysisHit {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(opts.Username, opts.ArtifactKeyOpts(format, engine)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderArtifacts(ctx, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(opts.Username, opts.ArtifactKeyOpts(format, engine))
		_ = r.Cache.Set(ctx, key, data, r.ArtifactTTL)
	}
	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) engine() *progression.Engine {
	if r.Engine == nil {
		return progression.Default()
	}
	return r.Engine
}

func (r *Runner) fetcher(token string) Fetcher {
	if r.NewFetcher != nil {
		return r.NewFetcher(token)
	}
	ttl := r.HTTPTTL
	if ttl == 0 {
		ttl = cache.TTLHTTP
	}
	return github.NewClient(r.Cache, token, ttl)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
