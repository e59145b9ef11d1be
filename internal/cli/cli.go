package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlevel/internal/config"
	"github.com/matzehuels/gitlevel/pkg/buildinfo"
	"github.com/matzehuels/gitlevel/pkg/cache"
	"github.com/matzehuels/gitlevel/pkg/history"
	"github.com/matzehuels/gitlevel/pkg/integrations/github"
	"github.com/matzehuels/gitlevel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// outputBase is the file name, without extension, of written cards.
	outputBase = "git-level"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "gitlevel turns your GitHub code into a developer level",
		Long:         `gitlevel sums the bytes of code in a GitHub user's public repositories, places the total on a level curve and renders the result as an SVG card.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.statsCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "authenticated", cfg.HasToken())
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		store.Close()
		return nil, err
	}

	var keyer cache.Keyer
	if cfg.Cache.KeyPrefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.KeyPrefix)
	}

	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.Engine = engine
	r.HTTPTTL = cfg.Cache.TTL
	r.ArtifactTTL = cfg.Cache.ArtifactTTL
	r.NewFetcher = func(token string) pipeline.Fetcher {
		return github.NewClient(store, token, cfg.Cache.TTL,
			github.WithBaseURL(cfg.GitHub.BaseURL),
			github.WithConcurrency(cfg.GitHub.Concurrency))
	}
	return r, nil
}

// newCache picks Redis when an address is configured, otherwise the file
// cache under the cache directory.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// openHistory opens MongoDB or SQLite when configured, otherwise the
// per-user files under the data directory.
func openHistory(ctx context.Context, cfg config.Config) (history.Store, error) {
	switch {
	case cfg.History.MongoURI != "":
		return history.NewMongoStore(ctx, cfg.History.MongoURI, cfg.History.Database)
	case cfg.History.SQLitePath != "":
		return history.OpenSQLite(ctx, cfg.History.SQLitePath)
	}
	dir, err := cfg.HistoryDir()
	if err != nil {
		return nil, err
	}
	return history.NewFileStore(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
