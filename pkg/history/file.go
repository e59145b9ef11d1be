package history

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/gitlevel/pkg/errors"
)

// FileStore keeps one JSON-lines file per user under a directory.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory holding the history files.
func (s *FileStore) Dir() string { return s.dir }

// Append writes r as one line at the end of the user's file.
func (s *FileStore) Append(_ context.Context, r Record) error {
	if err := errors.ValidateUsername(r.Username); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path(r.Username), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List reads the user's file. Lines that fail to parse are skipped.
func (s *FileStore) List(_ context.Context, username string, limit int) ([]Record, error) {
	if err := errors.ValidateUsername(username); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path(username))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []Record
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var r Record
		if json.Unmarshal(sc.Bytes(), &r) == nil {
			records = append(records, r)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	slices.Reverse(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Close is a no-op; files are opened per call.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(username string) string {
	return filepath.Join(s.dir, normalize(username)+".jsonl")
}
