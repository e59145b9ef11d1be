package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlevel/pkg/history"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <username>",
		Short: "Show recorded level snapshots",
		Long:  `Show the snapshots recorded with "gitlevel stats --record", newest first, and how far the user climbed since the oldest one listed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := openHistory(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(ctx, args[0], limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No snapshots for %s", args[0])
				printNextStep("Record one", fmt.Sprintf("%s stats %s --record", appName, args[0]))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), historyTable(records))
			if len(records) > 1 {
				printNewline()
				printGrowth(history.Growth(records[len(records)-1], records[0]))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "snapshots to show (0 for all)")
	return cmd
}

func historyTable(records []history.Record) fmt.Stringer {
	t := newTable("Taken", "Level", "Rank", "Total", "Repos")
	for _, r := range records {
		t.Row(
			r.TakenAt.Local().Format("2006-01-02 15:04"),
			strconv.Itoa(r.Stats.Level),
			r.Stats.Title,
			card.FormatBytes(r.Stats.TotalExperience)+" Bytes",
			strconv.Itoa(r.Repos),
		)
	}
	return t
}

func printGrowth(ch history.Change) {
	sign := "+"
	if ch.Bytes < 0 {
		sign = "-"
	}
	printKeyValue("Growth", StyleHighlight.Render(fmt.Sprintf("%s%s Bytes", sign, card.FormatBytes(abs(ch.Bytes)))))
	printKeyValue("Levels", StyleHighlight.Render(fmt.Sprintf("%+d", ch.Levels)))
	printKeyValue("Over", ch.Since.Round(time.Minute).String())
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
