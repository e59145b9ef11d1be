package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Policy.Do] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	Attempts int           // total attempts, at least 1
	Delay    time.Duration // wait before the second attempt
	MaxDelay time.Duration // cap for the doubled delay; 0 means uncapped

	// OnRetry, if set, is called before each wait with the attempt that
	// just failed (1-based) and its error.
	OnRetry func(attempt int, err error)
}

// DefaultPolicy is 3 attempts with 1 second initial delay, doubling up to
// 10 seconds.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 10 * time.Second}

// Do executes fn under the policy. Only errors wrapped with
// [RetryableError] are retried; other errors are returned immediately.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled
// while waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(i+1, lastErr)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
			if p.MaxDelay > 0 && delay > p.MaxDelay {
				delay = p.MaxDelay
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
