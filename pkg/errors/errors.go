// Package errors defines the coded errors shared by the pipeline, the CLI
// and the card server.
//
// A [Code] names a failure category. The server maps codes to HTTP statuses
// and the CLI uses them to print hints, so callers never match on text:
//
//	if errors.Is(err, errors.ErrCodeUserNotFound) {
//	    // 404
//	}
//
// GitHub rate limiting is reported as a [RateLimitedError], which carries
// the wait time and counts as [ErrCodeRateLimited].
package errors

import (
	"errors"
	"fmt"
	"regexp"
)

// Code is a machine-readable failure category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidUsername Code = "INVALID_USERNAME"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidTheme    Code = "INVALID_THEME"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUserNotFound Code = "USER_NOT_FOUND"

	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an *Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// RateLimitedError reports that GitHub refused a request until its quota
// resets.
type RateLimitedError struct {
	RetryAfter int // seconds, 0 when unknown
	Message    string
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter <= 0 {
		return "rate limited"
	}
	return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
}

// Code always returns ErrCodeRateLimited.
func (e *RateLimitedError) Code() Code { return ErrCodeRateLimited }

// GetCode returns the code of err, or "" if err carries none. A
// *RateLimitedError anywhere in the chain takes precedence over the
// outermost *Error.
func GetCode(err error) Code {
	if rl := (*RateLimitedError)(nil); errors.As(err, &rl) {
		return rl.Code()
	}
	if e := (*Error)(nil); errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether err carries code. Rate limiting matches anywhere in the
// chain; other codes match the outermost *Error.
func Is(err error, code Code) bool {
	if code == ErrCodeRateLimited {
		var rl *RateLimitedError
		if errors.As(err, &rl) {
			return true
		}
	}
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// UserMessage returns the message of the outermost *Error without its code,
// or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

const maxUsernameLen = 39

// GitHub logins: alphanumerics and single inner hyphens.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-[A-Za-z0-9])*$`)

// ValidateUsername rejects names that cannot be GitHub logins. Usernames
// become API paths and cache keys, so they are checked before any request.
func ValidateUsername(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidUsername, "username cannot be empty")
	case len(name) > maxUsernameLen, !usernamePattern.MatchString(name):
		return New(ErrCodeInvalidUsername, "invalid GitHub username: %q", name)
	}
	return nil
}
