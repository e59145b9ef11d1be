// Package pipeline runs the fetch → analyze → render flow shared by the CLI
// and the card server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: list the user's public repositories and their language bytes
//  2. Analyze: total the bytes and place them on the level curve
//  3. Render: produce the card in each requested format (SVG, JSON, PNG, PDF)
//
// Analyses and rendered cards are cached per user and per render options, so
// repeated requests within [cache.TTLArtifact] skip the GitHub API entirely.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Username: "octocat",
//	    Formats:  []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// [cache.TTLArtifact]: github.com/matzehuels/gitlevel/pkg/cache.TTLArtifact
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitlevel/pkg/cache"
	"github.com/matzehuels/gitlevel/pkg/errors"
	"github.com/matzehuels/gitlevel/pkg/progression"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatJSON, FormatPNG, FormatPDF}

const (
	// DefaultPNGScale renders PNG cards at 2x resolution.
	DefaultPNGScale = 2.0

	// DefaultTopLanguages is the number of languages shown on the card when
	// the caller does not choose.
	DefaultTopLanguages = 3
)

// Options configures one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Username string   `json:"username"`
	Formats  []string `json:"formats,omitempty"`
	Theme    string   `json:"theme,omitempty"`

	// TopLanguages is how many languages the card lists. Zero hides the
	// language line.
	TopLanguages  int     `json:"top_languages,omitempty"`
	NoProgressBar bool    `json:"no_progress_bar,omitempty"`
	Scale         float64 `json:"scale,omitempty"` // PNG only
	Refresh       bool    `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger      *log.Logger `json:"-"`
	GitHubToken string      `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Username string

	// Repos are the counted repositories in listing order.
	Repos []progression.Repository

	// Stats is the level evaluation.
	Stats progression.Result

	// Languages is the full language breakdown, largest first.
	Languages []progression.LanguageShare

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Timing    Timing
	CacheInfo CacheInfo
}

// Timing records how long each stage took.
type Timing struct {
	Fetch   time.Duration
	Analyze time.Duration
	Render  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	AnalysisHit bool // repositories and stats came from cache
	RenderHit   bool // every artifact came from cache
}

// ValidateFormat checks that a format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateUsername(o.Username); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	theme, err := card.ThemeByName(o.Theme)
	if err != nil {
		return err
	}
	o.Theme = theme.Name
	if o.TopLanguages < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "top languages must be >= 0, got %d", o.TopLanguages)
	}
	if o.Scale <= 0 {
		o.Scale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format under
// engine's curve and title table.
func (o *Options) ArtifactKeyOpts(format string, engine *progression.Engine) cache.ArtifactKeyOpts {
	k := engineKeyOpts(engine)
	k.Format = format
	k.Theme = o.Theme
	k.TopLanguages = o.TopLanguages
	k.ProgressBar = !o.NoProgressBar
	k.Scale = o.Scale
	return k
}

// engineKeyOpts keys everything the engine contributes to a result, so a
// changed curve or [tiers] table misses the cache.
func engineKeyOpts(engine *progression.Engine) cache.ArtifactKeyOpts {
	curve := engine.Curve()
	tiers, _ := json.Marshal(engine.Tiers().All())
	return cache.ArtifactKeyOpts{
		CurveBase:   curve.Base(),
		CurveGrowth: curve.Growth(),
		Tiers:       cache.Hash(tiers),
	}
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.TrimSpace(f)
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
