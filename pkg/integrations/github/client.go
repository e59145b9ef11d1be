package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gitlevel/pkg/cache"
	gerrors "github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/integrations"
	"github.com/matzehuels/gitlevel/pkg/progression"
)

const (
	// DefaultBaseURL is the public GitHub REST API.
	DefaultBaseURL = "https://api.github.com"

	// DefaultConcurrency bounds parallel language requests per user.
	DefaultConcurrency = 8

	perPage = 100
)

// Client fetches public repositories and their language breakdowns.
// It embeds [integrations.Client] for caching, retries and rate-limit
// detection.
type Client struct {
	*integrations.Client
	baseURL     string
	concurrency int
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	baseURL     string
	concurrency int
	httpOpts    []integrations.ClientOption
}

// WithBaseURL points the client at a different API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithConcurrency sets how many language requests run at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithHTTPOptions forwards options to the underlying [integrations.Client].
func WithHTTPOptions(opts ...integrations.ClientOption) Option {
	return func(c *clientConfig) { c.httpOpts = append(c.httpOpts, opts...) }
}

// NewClient creates a GitHub API client. Pass an empty token for
// unauthenticated requests (60 requests/hour instead of 5000).
// Responses are cached in c for ttl; a nil cache disables caching.
func NewClient(c cache.Cache, token string, ttl time.Duration, opts ...Option) *Client {
	cfg := clientConfig{baseURL: DefaultBaseURL, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&cfg)
	}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}

	return &Client{
		Client:      integrations.NewClient(c, "github", ttl, headers, cfg.httpOpts...),
		baseURL:     cfg.baseURL,
		concurrency: cfg.concurrency,
	}
}

// ListRepos returns every repository owned by user, most recently updated
// first. Pages are requested until GitHub returns an empty one.
func (c *Client) ListRepos(ctx context.Context, user string, refresh bool) ([]Repo, error) {
	key := "repos:" + strings.ToLower(user)

	var repos []Repo
	err := c.Cached(ctx, key, refresh, &repos, func() error {
		repos = repos[:0]
		for page := 1; ; page++ {
			var batch []Repo
			if err := c.Get(ctx, c.reposURL(user, page), &batch); err != nil {
				return err
			}
			if len(batch) == 0 {
				return nil
			}
			repos = append(repos, batch...)
		}
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return nil, gerrors.Wrap(gerrors.ErrCodeUserNotFound, err, "github user %s", user)
		}
		return nil, gerrors.Wrap(gerrors.ErrCodeNetwork, err, "list repositories for %s", user)
	}
	return repos, nil
}

// Languages returns the byte count per language for one repository.
func (c *Client) Languages(ctx context.Context, owner, repo string, refresh bool) (Languages, error) {
	key := "languages:" + strings.ToLower(owner+"/"+repo)

	var langs Languages
	err := c.Cached(ctx, key, refresh, &langs, func() error {
		langs = Languages{}
		u := fmt.Sprintf("%s/repos/%s/%s/languages", c.baseURL,
			integrations.URLEncode(owner), integrations.URLEncode(repo))
		return c.Get(ctx, u, &langs)
	})
	if err != nil {
		return nil, fmt.Errorf("languages for %s/%s: %w", owner, repo, err)
	}
	return langs, nil
}

// FetchContributions lists user's repositories, drops private ones and
// forks, and fetches the language breakdown of the rest concurrently.
// The result keeps the listing order. Any failed request fails the whole
// fetch; a partial total would understate the level.
func (c *Client) FetchContributions(ctx context.Context, user string, refresh bool) ([]progression.Repository, error) {
	listed, err := c.ListRepos(ctx, user, refresh)
	if err != nil {
		return nil, err
	}

	var counted []Repo
	for _, r := range listed {
		if r.Counted() {
			counted = append(counted, r)
		}
	}

	out := make([]progression.Repository, len(counted))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, r := range counted {
		g.Go(func() error {
			owner := r.Owner.Login
			if owner == "" {
				owner = user
			}
			langs, err := c.Languages(gctx, owner, r.Name, refresh)
			if err != nil {
				return err
			}
			out[i] = progression.Repository{Name: r.Name, FullName: r.FullName, Languages: langs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if gerrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, gerrors.Wrap(gerrors.ErrCodeNetwork, err, "fetch languages for %s", user)
	}
	return out, nil
}

func (c *Client) reposURL(user string, page int) string {
	q := url.Values{}
	q.Set("type", "owner")
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("page", strconv.Itoa(page))
	return fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, integrations.URLEncode(user), q.Encode())
}
