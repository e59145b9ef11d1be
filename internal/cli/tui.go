package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gitlevel/pkg/pipeline"
	"github.com/matzehuels/gitlevel/pkg/progression"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// Card view styles
var (
	cardBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan).Padding(1, 2)
	cardLevelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	barWidth       = 36
	langNameWidth  = 14
	shortLanguages = 5
	minBarWidth    = 10
)

// cardModel is the bubbletea model for the interactive level card.
type cardModel struct {
	username  string
	stats     progression.Result
	languages []progression.LanguageShare
	repos     int
	showAll   bool

	levelBar progress.Model
	langBar  progress.Model
}

func newCardModel(res *pipeline.Result) cardModel {
	return cardModel{
		username:  res.Username,
		stats:     res.Stats,
		languages: res.Languages,
		repos:     len(res.Repos),
		levelBar:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth), progress.WithoutPercentage()),
		langBar:   progress.New(progress.WithSolidFill(string(colorCyan)), progress.WithWidth(barWidth-langNameWidth), progress.WithoutPercentage()),
	}
}

func (m cardModel) Init() tea.Cmd {
	return nil
}

func (m cardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "l", "tab":
			m.showAll = !m.showAll
		}
	case tea.WindowSizeMsg:
		// Border, padding and the percentage column.
		w := min(max(msg.Width-16, minBarWidth+langNameWidth), barWidth)
		m.levelBar.Width = w
		m.langBar.Width = w - langNameWidth
	}
	return m, nil
}

func (m cardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.username))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d repositories", m.repos)))
	b.WriteString("\n\n")

	b.WriteString("Level " + cardLevelStyle.Render(strconv.Itoa(m.stats.Level)))
	b.WriteString("  " + StyleValue.Render(m.stats.Title) + "\n\n")

	b.WriteString(m.levelBar.ViewAs(m.stats.Progress()))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" %3.0f%%", m.stats.Progress()*100)) + "\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("Total %s Bytes · Next level in %s Bytes",
		card.FormatBytes(m.stats.TotalExperience),
		card.FormatBytes(card.WholeBytes(m.stats.ExperienceToNextLevel)))))
	b.WriteString("\n")

	langs := m.languages
	if !m.showAll && len(langs) > shortLanguages {
		langs = langs[:shortLanguages]
	}
	if len(langs) > 0 {
		b.WriteString("\n")
	}
	for _, l := range langs {
		name := lipgloss.NewStyle().Width(langNameWidth).Render(l.Language)
		b.WriteString(name + m.langBar.ViewAs(l.Share))
		b.WriteString(StyleDim.Render(fmt.Sprintf(" %5.1f%%", l.Share*100)) + "\n")
	}

	help := "q quit"
	if len(m.languages) > shortLanguages {
		help = "l all languages · " + help
	}
	return cardBoxStyle.Render(b.String()) + "\n" + listDimStyle.Render(help) + "\n"
}

// runCardView shows the result until the user quits.
func runCardView(ctx context.Context, res *pipeline.Result) error {
	_, err := tea.NewProgram(newCardModel(res), tea.WithContext(ctx)).Run()
	return err
}
