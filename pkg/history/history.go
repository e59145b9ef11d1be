// Package history records level snapshots over time.
//
// Each [Record] captures one evaluation of a user. A [Store] appends records
// and lists them newest first:
//
//   - [FileStore]: one JSON-lines file per user, the CLI default
//   - [SQLiteStore]: a single local database file
//   - [MongoStore]: a shared "snapshots" collection for server deployments
//
// [Growth] compares two records to show how far a user climbed between them.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gitlevel/pkg/progression"
)

// Record is one snapshot of a user's level.
type Record struct {
	ID        string                      `json:"id" bson:"_id"`
	Username  string                      `json:"username" bson:"username"`
	TakenAt   time.Time                   `json:"taken_at" bson:"taken_at"`
	Repos     int                         `json:"repos" bson:"repos"`
	Stats     progression.Result          `json:"stats" bson:"stats"`
	Languages []progression.LanguageShare `json:"languages,omitempty" bson:"languages,omitempty"`
}

// NewRecord stamps a snapshot with a fresh ID and the current time.
// Usernames are stored lowercased since GitHub logins are case-insensitive.
func NewRecord(username string, repos int, stats progression.Result, langs []progression.LanguageShare) Record {
	return Record{
		ID:        uuid.NewString(),
		Username:  normalize(username),
		TakenAt:   time.Now().UTC(),
		Repos:     repos,
		Stats:     stats,
		Languages: langs,
	}
}

// Store persists records.
// Implementations must be safe for concurrent use.
type Store interface {
	// Append adds a record.
	Append(ctx context.Context, r Record) error

	// List returns the user's records, newest first. A limit <= 0 returns
	// all of them. An unknown user yields an empty list.
	List(ctx context.Context, username string, limit int) ([]Record, error)

	// Close releases backend resources.
	Close() error
}

// Change describes the progress between two snapshots.
type Change struct {
	Bytes  int64         `json:"bytes"`
	Levels int           `json:"levels"`
	Since  time.Duration `json:"since"`
}

// Growth returns how far cur is ahead of prev.
func Growth(prev, cur Record) Change {
	return Change{
		Bytes:  cur.Stats.TotalExperience - prev.Stats.TotalExperience,
		Levels: cur.Stats.Level - prev.Stats.Level,
		Since:  cur.TakenAt.Sub(prev.TakenAt),
	}
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
