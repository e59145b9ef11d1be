package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps records in a single SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and creates the
// snapshots table.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := "file:" + filepath.ToSlash(path) +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			taken_at INTEGER NOT NULL,
			repos INTEGER NOT NULL,
			stats TEXT NOT NULL,
			languages TEXT NOT NULL DEFAULT '[]'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_user_time ON snapshots (username, taken_at DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// Append inserts r. Timestamps are stored as Unix nanoseconds.
func (s *SQLiteStore) Append(ctx context.Context, r Record) error {
	stats, err := json.Marshal(r.Stats)
	if err != nil {
		return err
	}
	langs, err := json.Marshal(r.Languages)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, username, taken_at, repos, stats, languages) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, normalize(r.Username), r.TakenAt.UnixNano(), r.Repos, string(stats), string(langs))
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// List queries the user's records, newest first.
func (s *SQLiteStore) List(ctx context.Context, username string, limit int) ([]Record, error) {
	query := `SELECT id, username, taken_at, repos, stats, languages FROM snapshots
		WHERE username = ? ORDER BY taken_at DESC`
	args := []any{normalize(username)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r            Record
			takenAt      int64
			stats, langs string
		)
		if err := rows.Scan(&r.ID, &r.Username, &takenAt, &r.Repos, &stats, &langs); err != nil {
			return nil, err
		}
		r.TakenAt = time.Unix(0, takenAt).UTC()
		if err := json.Unmarshal([]byte(stats), &r.Stats); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(langs), &r.Languages); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
