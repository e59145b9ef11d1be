package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlevel/internal/config"
	"github.com/matzehuels/gitlevel/pkg/history"
	"github.com/matzehuels/gitlevel/pkg/pipeline"
)

// statsOptions holds the flags of the stats command.
type statsOptions struct {
	output  string
	formats string
	theme   string
	langs   int
	noBar   bool
	scale   float64
	tui     bool
	noCache bool
	refresh bool
	record  bool
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var o statsOptions

	cmd := &cobra.Command{
		Use:   "stats <username>",
		Short: "Compute a GitHub user's level and write the card",
		Long: `Fetch the public, non-fork repositories of a GitHub user, total their
bytes of code and write the level card to <output>/git-level.<format>.

Set GITHUB_TOKEN to raise the GitHub rate limit from 60 to 5000 requests per hour.`,
		Example: `  gitlevel stats octocat
  gitlevel stats octocat --format svg,json --theme light
  gitlevel stats octocat --tui --record`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				o.output = cfg.Output.Dir
			}
			if !cmd.Flags().Changed("theme") {
				o.theme = cfg.Output.Theme
			}
			if !cmd.Flags().Changed("langs") {
				o.langs = cfg.Output.TopLanguages
			}
			return c.runStats(cmd.Context(), cfg, args[0], o)
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "output", "output directory")
	cmd.Flags().StringVarP(&o.formats, "format", "f", pipeline.FormatSVG, "output formats: svg, json, png, pdf (comma-separated)")
	cmd.Flags().StringVar(&o.theme, "theme", "", "card theme: dracula, light")
	cmd.Flags().IntVar(&o.langs, "langs", pipeline.DefaultTopLanguages, "languages listed on the card (0 hides the line)")
	cmd.Flags().BoolVar(&o.noBar, "no-bar", false, "omit the progress bar")
	cmd.Flags().Float64Var(&o.scale, "scale", pipeline.DefaultPNGScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&o.tui, "tui", false, "show the result in an interactive view")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached responses and re-fetch")
	cmd.Flags().BoolVar(&o.record, "record", false, "append the result to the user's history")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, cfg config.Config, username string, o statsOptions) error {
	ctx = withLogger(ctx, c.Logger)

	opts := pipeline.Options{
		Username:      username,
		Formats:       parseFormats(o.formats),
		Theme:         o.theme,
		TopLanguages:  o.langs,
		NoProgressBar: o.noBar,
		Scale:         o.scale,
		Refresh:       o.refresh,
		Logger:        c.Logger,
		GitHubToken:   cfg.GitHub.Token,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if !cfg.HasToken() {
		printWarning("GITHUB_TOKEN is not set; GitHub allows 60 unauthenticated requests per hour")
	}

	runner, err := c.newRunner(ctx, cfg, o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := startSpinner(ctx, fmt.Sprintf("Fetching repositories for %s...", username))
	result, err := runner.Execute(ctx, opts)
	spin.stop()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	printSuccess("%s is level %d", username, result.Stats.Level)
	printStats(len(result.Repos), len(result.Languages), result.CacheInfo.AnalysisHit)
	printNewline()
	printLevel(result.Stats)
	printNewline()

	paths, err := writeArtifacts(ctx, o.output, result, opts.Formats)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}

	if o.record {
		if err := c.record(ctx, cfg, result); err != nil {
			return err
		}
	}

	if o.tui {
		return runCardView(ctx, result)
	}
	if !o.record {
		printNewline()
		printNextStep("Track progress over time", fmt.Sprintf("%s stats %s --record", appName, username))
	}
	return nil
}

// writeArtifacts writes each rendered format to dir/git-level.<format> and
// returns the paths in format order.
func writeArtifacts(ctx context.Context, dir string, result *pipeline.Result, formats []string) ([]string, error) {
	start := time.Now()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, outputBase+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	logElapsed(loggerFromContext(ctx), start, "Wrote artifacts", "files", len(paths), "dir", dir)
	return paths, nil
}

// record appends the result to the user's history.
func (c *CLI) record(ctx context.Context, cfg config.Config, result *pipeline.Result) error {
	store, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := history.NewRecord(result.Username, len(result.Repos), result.Stats, result.Languages)
	if err := store.Append(ctx, rec); err != nil {
		return fmt.Errorf("record snapshot: %w", err)
	}
	printDetail("Recorded snapshot %s", rec.ID)
	return nil
}
