package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitlevel/pkg/progression"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// Table styles
var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// levelsCommand creates the levels command.
func (c *CLI) levelsCommand() *cobra.Command {
	var maxLevel int

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Show level thresholds and rank titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxLevel < 1 {
				return fmt.Errorf("--max must be at least 1, got %d", maxLevel)
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			engine, err := cfg.Engine()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, levelsTable(engine, maxLevel))
			fmt.Fprintln(out)
			fmt.Fprintln(out, tiersTable(engine.Tiers()))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLevel, "max", 20, "highest level to list")
	return cmd
}

// levelRow is one line of the levels table. Start is the smallest whole byte
// total at the level; thresholds on the curve are usually fractional.
type levelRow struct {
	Level int
	Start int64
	Span  int64
	Title string
}

func levelRows(engine *progression.Engine, maxLevel int) []levelRow {
	thresholds := engine.Curve().Thresholds(maxLevel + 1)
	rows := make([]levelRow, maxLevel)
	for i := range rows {
		start := card.WholeBytes(thresholds[i])
		rows[i] = levelRow{
			Level: i + 1,
			Start: start,
			Span:  card.WholeBytes(thresholds[i+1]) - start,
			Title: engine.Tiers().Title(start),
		}
	}
	return rows
}

// levelsTable lists where each level starts, how many bytes it spans and the
// rank earned at its threshold.
func levelsTable(engine *progression.Engine, maxLevel int) *table.Table {
	t := newTable("Level", "Starts at", "Bytes to next", "Rank")
	for _, r := range levelRows(engine, maxLevel) {
		t.Row(strconv.Itoa(r.Level), card.FormatBytes(r.Start), card.FormatBytes(r.Span), r.Title)
	}
	return t
}

// tiersTable lists the rank titles and the totals that unlock them.
func tiersTable(tiers progression.Tiers) *table.Table {
	t := newTable("Rank", "From")
	for _, tier := range tiers.All() {
		t.Row(tier.Title, card.FormatBytes(tier.Threshold)+" Bytes")
	}
	return t
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}
