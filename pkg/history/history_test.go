package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/progression"
)

func record(user string, total int64, at time.Time) Record {
	r := NewRecord(user, 3, progression.Default().Evaluate(total), nil)
	r.TakenAt = at
	return r
}

func TestNewRecord(t *testing.T) {
	a := NewRecord("OctoCat", 2, progression.Default().Evaluate(39500), nil)
	b := NewRecord("octocat", 2, progression.Default().Evaluate(39500), nil)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs should be unique and non-empty: %q %q", a.ID, b.ID)
	}
	if a.Username != "octocat" {
		t.Errorf("Username = %q, want lowercased", a.Username)
	}
	if a.TakenAt.IsZero() || a.TakenAt.Location() != time.UTC {
		t.Errorf("TakenAt = %v, want current UTC time", a.TakenAt)
	}
}

func TestFileStoreAppendList(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, total := range []int64{1000, 12500, 39500} {
		if err := s.Append(ctx, record("alice", total, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}
	if err := s.Append(ctx, record("bob", 5, base)); err != nil {
		t.Fatal(err)
	}

	got, err := s.List(ctx, "Alice", 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	if got[0].Stats.TotalExperience != 39500 || got[2].Stats.TotalExperience != 1000 {
		t.Errorf("records not newest first: %d .. %d", got[0].Stats.TotalExperience, got[2].Stats.TotalExperience)
	}
	if got[0].Stats.Level != 4 {
		t.Errorf("Stats did not round-trip: %+v", got[0].Stats)
	}

	limited, err := s.List(ctx, "alice", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 || limited[0].Stats.TotalExperience != 39500 {
		t.Errorf("List(limit=2) = %+v", limited)
	}
}

func TestFileStoreUnknownUser(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	got, err := s.List(context.Background(), "nobody", 0)
	if err != nil || len(got) != 0 {
		t.Errorf("List(unknown) = %v, %v; want empty, nil", got, err)
	}
}

func TestFileStoreRejectsBadUsername(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	err := s.Append(context.Background(), record("../etc", 1, time.Now()))
	if !errors.Is(err, errors.ErrCodeInvalidUsername) {
		t.Errorf("Append() error = %v, want INVALID_USERNAME", err)
	}
	if _, err := s.List(context.Background(), "a/b", 0); err == nil {
		t.Error("List() should reject path-like usernames")
	}
}

func TestFileStoreSkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewFileStore(dir)
	ctx := context.Background()
	if err := s.Append(ctx, record("alice", 10, time.Now())); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "alice.jsonl"), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("{not json\n")
	f.Close()

	got, err := s.List(ctx, "alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d records, want 1", len(got))
	}
}

func TestFileStoreConcurrentAppend(t *testing.T) {
	s, _ := NewFileStore(t.TempDir())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Append(ctx, record("alice", int64(i), time.Now())); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, err := s.List(ctx, "alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 20 {
		t.Errorf("got %d records, want 20", len(got))
	}
}

func TestGrowth(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := record("alice", 4000, base)
	cur := record("alice", 39500, base.Add(48*time.Hour))

	got := Growth(prev, cur)
	if got.Bytes != 35500 || got.Levels != 3 || got.Since != 48*time.Hour {
		t.Errorf("Growth() = %+v", got)
	}
}

func TestChangeJSON(t *testing.T) {
	data, err := json.Marshal(Change{Bytes: 1125, Levels: 1, Since: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"bytes":1125,"levels":1,"since":3600000000000}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("GITLEVEL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("GITLEVEL_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, uri, "gitlevel_test_"+time.Now().Format("150405"))
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
	}
	defer func() {
		s.coll.Database().Drop(context.Background())
		s.Close()
	}()

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, total := range []int64{100, 5000} {
		if err := s.Append(ctx, record("Alice", total, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	got, err := s.List(ctx, "alice", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Stats.TotalExperience != 5000 {
		t.Errorf("List() = %+v", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error: %v", err)
	}
	defer s.Close()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	langs := []progression.LanguageShare{{Language: "Go", Bytes: 39500, Share: 1}}
	for i, total := range []int64{1000, 12500, 39500} {
		r := record("Alice", total, base.Add(time.Duration(i)*time.Hour))
		r.Languages = langs
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	got, err := s.List(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	want := record("alice", 39500, base.Add(2*time.Hour))
	want.ID = got[0].ID
	want.Languages = langs
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Errorf("newest record mismatch (-want +got):\n%s", diff)
	}

	empty, err := s.List(ctx, "nobody", 0)
	if err != nil || len(empty) != 0 {
		t.Errorf("List(unknown) = %v, %v; want empty, nil", empty, err)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), " "); err == nil {
		t.Error("OpenSQLite(\"\") should fail")
	}
}
