// Package github fetches a user's public code volume from the GitHub API.
//
// # Usage
//
//	client := github.NewClient(cache, token, 24*time.Hour)
//
//	repos, err := client.FetchContributions(ctx, "octocat", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(progression.TotalExperience(repos))
//
// # What counts
//
// [Client.FetchContributions] lists the repositories the user owns
// (type=owner, most recently updated first, 100 per page) and skips private
// repositories and forks. For each remaining repository it fetches
// GET /repos/{owner}/{repo}/languages, at most [DefaultConcurrency] at a time.
//
// # Authentication
//
// A personal access token is optional but recommended. Without one GitHub
// allows 60 requests/hour, which a user with many repositories exhausts in a
// single run. With a token the limit is 5000 requests/hour.
//
// # Errors
//
// An unknown user yields an error with code USER_NOT_FOUND. An exhausted
// rate limit yields an [errors.RateLimitedError] carrying the wait time.
// Other failures are reported as NETWORK_ERROR.
//
// # Caching
//
// The listing and each language map are cached separately for the TTL given
// to [NewClient]. Pass refresh=true to bypass the cache.
//
// [errors.RateLimitedError]: github.com/matzehuels/gitlevel/pkg/errors.RateLimitedError
package github
