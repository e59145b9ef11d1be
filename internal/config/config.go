// Package config loads gitlevel settings.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file, $XDG_CONFIG_HOME/gitlevel/config.toml by default
//  3. environment variables (GITHUB_TOKEN, GITLEVEL_*)
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/gitlevel/pkg/cache"
	"github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/integrations/github"
	"github.com/matzehuels/gitlevel/pkg/pipeline"
	"github.com/matzehuels/gitlevel/pkg/progression"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// AppName names the config, cache and data directories.
const AppName = "gitlevel"

// Config is the complete gitlevel configuration.
type Config struct {
	GitHub  GitHub  `toml:"github"`
	Cache   Cache   `toml:"cache"`
	Output  Output  `toml:"output"`
	Server  Server  `toml:"server"`
	History History `toml:"history"`
	Curve   Curve   `toml:"curve"`

	// Tiers replaces the title table when non-empty.
	Tiers []progression.Tier `toml:"tiers"`
}

// GitHub configures the contribution source.
type GitHub struct {
	Token       string `toml:"token" env:"GITHUB_TOKEN"`
	BaseURL     string `toml:"base_url" env:"GITLEVEL_GITHUB_API"`
	Concurrency int    `toml:"concurrency" env:"GITLEVEL_CONCURRENCY"`
}

// Cache configures response and artifact caching.
type Cache struct {
	Dir         string        `toml:"dir" env:"GITLEVEL_CACHE_DIR"`
	TTL         time.Duration `toml:"ttl" env:"GITLEVEL_CACHE_TTL"`
	ArtifactTTL time.Duration `toml:"artifact_ttl" env:"GITLEVEL_ARTIFACT_TTL"`

	RedisAddr     string `toml:"redis_addr" env:"GITLEVEL_REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"GITLEVEL_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"GITLEVEL_REDIS_DB"`
	KeyPrefix     string `toml:"key_prefix" env:"GITLEVEL_CACHE_PREFIX"`
}

// Output configures written cards.
type Output struct {
	Dir          string `toml:"dir" env:"GITLEVEL_OUTPUT_DIR"`
	Theme        string `toml:"theme" env:"GITLEVEL_THEME"`
	TopLanguages int    `toml:"top_languages" env:"GITLEVEL_TOP_LANGUAGES"`
}

// Server configures the card server.
type Server struct {
	Listen       string        `toml:"listen" env:"GITLEVEL_LISTEN"`
	CacheMaxAge  time.Duration `toml:"cache_max_age" env:"GITLEVEL_CACHE_MAX_AGE"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// History configures snapshot storage. A MongoURI selects MongoDB, then an
// SQLitePath selects SQLite; otherwise snapshots go to Dir.
type History struct {
	Dir        string `toml:"dir" env:"GITLEVEL_HISTORY_DIR"`
	SQLitePath string `toml:"sqlite_path" env:"GITLEVEL_HISTORY_SQLITE"`
	MongoURI   string `toml:"mongo_uri" env:"GITLEVEL_MONGO_URI"`
	Database   string `toml:"database" env:"GITLEVEL_MONGO_DB"`
}

// Curve holds the level curve parameters.
type Curve struct {
	Base   float64 `toml:"base" env:"GITLEVEL_CURVE_BASE"`
	Growth float64 `toml:"growth" env:"GITLEVEL_CURVE_GROWTH"`
}

// Default returns the built-in configuration. Directory fields are left
// empty and resolved by [Config.CacheDir] and [Config.HistoryDir].
func Default() Config {
	return Config{
		GitHub: GitHub{BaseURL: github.DefaultBaseURL, Concurrency: github.DefaultConcurrency},
		Cache:  Cache{TTL: cache.TTLHTTP, ArtifactTTL: cache.TTLArtifact},
		Output: Output{Dir: "output", Theme: card.DefaultTheme, TopLanguages: pipeline.DefaultTopLanguages},
		Server: Server{
			Listen:       ":8080",
			CacheMaxAge:  30 * time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		History: History{Database: "gitlevel"},
		Curve:   Curve{Base: progression.DefaultBase, Growth: progression.DefaultGrowth},
	}
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. An empty path uses [DefaultPath], where a missing file is
// not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and that the curve and tiers are usable.
func (c Config) Validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if _, err := card.ThemeByName(c.Output.Theme); err != nil {
		return err
	}
	switch {
	case c.Output.TopLanguages < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "output.top_languages must be >= 0")
	case c.Cache.TTL < 0 || c.Cache.ArtifactTTL < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "cache TTLs must be >= 0")
	case c.GitHub.Concurrency < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "github.concurrency must be >= 1")
	}
	return nil
}

// Engine builds the progression engine from the curve and tier settings.
func (c Config) Engine() (*progression.Engine, error) {
	curve, err := progression.NewCurve(c.Curve.Base, c.Curve.Growth)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "curve")
	}
	tiers := progression.DefaultTiers()
	if len(c.Tiers) > 0 {
		if tiers, err = progression.NewTiers(c.Tiers); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "tiers")
		}
	}
	return progression.NewEngine(curve, tiers), nil
}

// HasToken reports whether GitHub requests will be authenticated.
func (c Config) HasToken() bool { return c.GitHub.Token != "" }

// CacheDir returns the configured cache directory or the XDG default
// (~/.cache/gitlevel/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// HistoryDir returns the configured history directory or the XDG default
// (~/.local/share/gitlevel/history/).
func (c Config) HistoryDir() (string, error) {
	if c.History.Dir != "" {
		return c.History.Dir, nil
	}
	dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/gitlevel/config.toml, falling back to
// ~/.config/gitlevel/config.toml. It returns "" if no home directory exists.
func DefaultPath() string {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

func xdgDir(envVar, fallback string) (string, error) {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, fallback, AppName), nil
}
