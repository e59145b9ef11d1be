// Package cli implements the gitlevel command-line interface.
//
// The CLI fetches a user's public repositories from GitHub, evaluates the
// level their code earns and writes the result as a card. It is built on
// cobra, with charmbracelet/log for diagnostics and lipgloss for output.
//
// # Commands
//
//   - stats: compute a user's level and write output/git-level.svg
//   - levels: print the level thresholds and rank titles
//   - serve: run the card server
//   - history: show recorded snapshots and growth
//   - cache: manage the response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to the pipeline.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level with "15:04:05.00"
// timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logElapsed logs msg at info level with the time since start.
func logElapsed(l *log.Logger, start time.Time, msg string, keyvals ...any) {
	l.Info(msg, append(keyvals, "took", time.Since(start).Round(time.Millisecond))...)
}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return log.WithContext(ctx, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	return log.FromContext(ctx)
}
