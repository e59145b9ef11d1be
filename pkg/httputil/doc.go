// Package httputil provides the retry policy shared by API clients.
//
// [Policy.Do] re-runs an operation while it fails with a [RetryableError]:
//
//	err := httputil.DefaultPolicy.Do(ctx, func() error {
//	    return fetch(ctx)
//	})
//
// Wrap transient failures (network errors, 5xx responses) in RetryableError;
// anything else is returned immediately. The delay doubles after each failed
// attempt up to MaxDelay, and the wait is abandoned as soon as ctx is
// cancelled. [DefaultPolicy] is 3 attempts starting at 1 second.
package httputil
