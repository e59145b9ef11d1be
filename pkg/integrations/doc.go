// Package integrations provides the HTTP plumbing shared by API clients.
//
// [Client] wraps an *http.Client with:
//
//   - response caching through any [cache.Cache], keyed by a [cache.Keyer]
//   - retries of transient failures via [httputil.Policy]
//   - default headers and a gitlevel User-Agent
//   - observability hooks for every request and cache lookup
//
// Status handling is uniform: 404 becomes [ErrNotFound], 5xx and transport
// failures become retryable [ErrNetwork], and exhausted rate limits become
// an [errors.RateLimitedError].
//
// The [github] subpackage builds on Client to collect a user's per-language
// byte counts.
//
// [cache.Cache]: github.com/matzehuels/gitlevel/pkg/cache.Cache
// [cache.Keyer]: github.com/matzehuels/gitlevel/pkg/cache.Keyer
// [httputil.Policy]: github.com/matzehuels/gitlevel/pkg/httputil.Policy
// [errors.RateLimitedError]: github.com/matzehuels/gitlevel/pkg/errors.RateLimitedError
// [github]: github.com/matzehuels/gitlevel/pkg/integrations/github
package integrations
