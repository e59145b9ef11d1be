package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gitlevel/pkg/pipeline"
	"github.com/matzehuels/gitlevel/pkg/progression"
)

func sampleResult() *pipeline.Result {
	repos := []progression.Repository{
		{Name: "api", Languages: map[string]int64{"Go": 20000, "Shell": 500, "Makefile": 500}},
		{Name: "web", Languages: map[string]int64{"TypeScript": 15000, "CSS": 2000, "HTML": 1000, "JavaScript": 500}},
	}
	return &pipeline.Result{
		Username:  "alice",
		Repos:     repos,
		Stats:     progression.Default().Analyze(repos),
		Languages: progression.Languages(repos, 0),
	}
}

func TestCardModelView(t *testing.T) {
	m := newCardModel(sampleResult())
	view := m.View()
	for _, want := range []string{"alice", "Aspiring Developer", "39,500", "1,125", "Go", "l all languages"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Shell") {
		t.Error("collapsed view should list only the top languages")
	}
}

func TestCardModelUpdate(t *testing.T) {
	m := newCardModel(sampleResult())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if !strings.Contains(next.View(), "Shell") {
		t.Error("expanded view should list every language")
	}

	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestCardModelResize(t *testing.T) {
	m := newCardModel(sampleResult())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	cm := next.(cardModel)
	if cm.levelBar.Width != 24 || cm.langBar.Width != 10 {
		t.Errorf("bar widths = %d, %d; want 24, 10", cm.levelBar.Width, cm.langBar.Width)
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 200, Height: 20})
	if got := next.(cardModel).levelBar.Width; got != barWidth {
		t.Errorf("level bar width = %d, want capped at %d", got, barWidth)
	}
}
