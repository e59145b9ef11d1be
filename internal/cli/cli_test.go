package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gitlevel/pkg/progression"
)

// testEnv isolates config, cache and history directories and points the
// GitHub client at a fake API.
func testEnv(t *testing.T) (api *httptest.Server, root string) {
	t.Helper()
	root = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("GITLEVEL_CACHE_DIR", filepath.Join(root, "cache"))
	t.Setenv("GITLEVEL_HISTORY_DIR", filepath.Join(root, "history"))
	t.Setenv("GITLEVEL_REDIS_ADDR", "")
	t.Setenv("GITLEVEL_MONGO_URI", "")
	t.Setenv("GITLEVEL_HISTORY_SQLITE", "")
	t.Setenv("GITHUB_TOKEN", "")

	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") != "1" {
			io.WriteString(w, `[]`)
			return
		}
		io.WriteString(w, `[
			{"id":1,"name":"api","full_name":"alice/api","owner":{"login":"alice"}},
			{"id":2,"name":"fork","full_name":"alice/fork","fork":true,"owner":{"login":"alice"}}
		]`)
	})
	mux.HandleFunc("/repos/alice/api/languages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"Go":30000,"Makefile":9500}`)
	})
	api = httptest.NewServer(mux)
	t.Cleanup(api.Close)
	t.Setenv("GITLEVEL_GITHUB_API", api.URL)
	return api, root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,json", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, log.InfoLevel).RootCommand()
	for _, name := range []string{"stats", "levels", "serve", "history", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestStatsCommand(t *testing.T) {
	_, root := testEnv(t)
	outDir := filepath.Join(root, "out")

	if _, err := execute(t, "stats", "alice", "--output", outDir, "--format", "svg,json", "--record"); err != nil {
		t.Fatalf("stats: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(outDir, "git-level.svg"))
	if err != nil {
		t.Fatal(err)
	}
	// 39,500 bytes from the one counted repository is level 4.
	if !bytes.Contains(svg, []byte("alice")) || !bytes.Contains(svg, []byte("39,500")) {
		t.Errorf("card is missing username or total:\n%s", svg)
	}
	if _, err := os.Stat(filepath.Join(outDir, "git-level.json")); err != nil {
		t.Errorf("json output not written: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "history"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("history entries = %v, err = %v; want one file", entries, err)
	}
}

func TestStatsCommandInvalidInput(t *testing.T) {
	_, root := testEnv(t)
	out := filepath.Join(root, "out")

	tests := []struct {
		name string
		args []string
	}{
		{"bad username", []string{"stats", "-bad-", "--output", out}},
		{"bad format", []string{"stats", "alice", "--format", "gif", "--output", out}},
		{"bad theme", []string{"stats", "alice", "--theme", "neon", "--output", out}},
		{"missing username", []string{"stats"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestStatsCommandUnknownUser(t *testing.T) {
	_, root := testEnv(t)
	_, err := execute(t, "stats", "nobody", "--no-cache", "--output", filepath.Join(root, "out"))
	if err == nil || !strings.Contains(err.Error(), "nobody") {
		t.Errorf("err = %v, want user not found", err)
	}
}

func TestLevelsCommand(t *testing.T) {
	testEnv(t)
	out, err := execute(t, "levels", "--max", "5")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"40,625", "23,750", "Hello World Habitants", "Binary God"} {
		if !strings.Contains(out, want) {
			t.Errorf("levels output missing %q:\n%s", want, out)
		}
	}
	if _, err := execute(t, "levels", "--max", "0"); err == nil {
		t.Error("--max 0 should fail")
	}
}

func TestLevelRowsStartInsideTheirLevel(t *testing.T) {
	gentle, err := progression.NewCurve(5000, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	engines := map[string]*progression.Engine{
		"default": progression.Default(),
		"gentle":  progression.NewEngine(gentle, progression.DefaultTiers()),
	}
	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			curve := engine.Curve()
			for _, r := range levelRows(engine, 25) {
				if got := curve.Level(float64(r.Start)); got != r.Level {
					t.Errorf("row %d starts at %d, which is level %d", r.Level, r.Start, got)
				}
				if r.Level > 1 {
					if got := curve.Level(float64(r.Start - 1)); got != r.Level-1 {
						t.Errorf("row %d: %d bytes is level %d, want %d", r.Level, r.Start-1, got, r.Level-1)
					}
				}
				if want := engine.Tiers().Title(r.Start); r.Title != want {
					t.Errorf("row %d title = %q, want %q", r.Level, r.Title, want)
				}
			}
		})
	}
}

func TestLevelsTableRoundsFractionalThresholds(t *testing.T) {
	// Level 6 starts at 65,937.5 bytes on the default curve.
	out := levelsTable(progression.Default(), 7).String()
	if !strings.Contains(out, "65,938") || strings.Contains(out, "65,937") {
		t.Errorf("level 6 should start at 65,938:\n%s", out)
	}
}

func TestLevelsCommandCustomCurve(t *testing.T) {
	testEnv(t)
	t.Setenv("GITLEVEL_CURVE_GROWTH", "1.2")
	out, err := execute(t, "levels", "--max", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "11,000") {
		t.Errorf("levels output missing 11,000 for growth 1.2:\n%s", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	_, root := testEnv(t)
	out := filepath.Join(root, "out")
	for range 2 {
		if _, err := execute(t, "stats", "alice", "--output", out, "--record", "--refresh"); err != nil {
			t.Fatal(err)
		}
	}

	got, err := execute(t, "history", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(got, "39,500") != 2 {
		t.Errorf("history should list two snapshots:\n%s", got)
	}
}

func TestHistoryCommandSQLite(t *testing.T) {
	_, root := testEnv(t)
	db := filepath.Join(root, "history.db")
	t.Setenv("GITLEVEL_HISTORY_SQLITE", db)

	if _, err := execute(t, "stats", "alice", "--output", filepath.Join(root, "out"), "--record"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(db); err != nil {
		t.Fatalf("sqlite database not created: %v", err)
	}
	got, err := execute(t, "history", "alice")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "39,500") {
		t.Errorf("history output missing snapshot:\n%s", got)
	}
}

func TestCachePathCommand(t *testing.T) {
	_, root := testEnv(t)
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(root, "cache"); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	_, root := testEnv(t)
	if _, err := execute(t, "stats", "alice", "--output", filepath.Join(root, "out")); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "cache"))
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("%s completion does not mention %s", shell, appName)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8080"); got != "localhost:8080" {
		t.Errorf("displayAddr(:8080) = %q", got)
	}
	if got := displayAddr("0.0.0.0:9000"); got != "0.0.0.0:9000" {
		t.Errorf("displayAddr(0.0.0.0:9000) = %q", got)
	}
}
