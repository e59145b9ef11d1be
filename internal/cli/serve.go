package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlevel/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve level cards over HTTP",
		Long: `Start the card server. Embed a card in a README with

  ![level](http://<host>/api/users/<username>/card.svg)

Prometheus metrics are served at /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Listen
			}
			if !cfg.HasToken() {
				printWarning("GITHUB_TOKEN is not set; GitHub allows 60 unauthenticated requests per hour")
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			metrics := server.NewMetrics()
			metrics.Install()

			srv := server.New(runner, c.Logger, metrics, server.Options{
				GitHubToken:  cfg.GitHub.Token,
				Theme:        cfg.Output.Theme,
				TopLanguages: cfg.Output.TopLanguages,
				CacheMaxAge:  cfg.Server.CacheMaxAge,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			})

			printInfo("Serving cards on %s", StyleLink.Render("http://"+displayAddr(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
