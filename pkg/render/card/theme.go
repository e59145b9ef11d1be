package card

import (
	"slices"
	"strings"

	"github.com/matzehuels/gitlevel/pkg/errors"
)

// Theme is a card color palette.
type Theme struct {
	Name string

	BackgroundFrom string // gradient start (top left)
	BackgroundTo   string // gradient end (bottom right)
	Border         string

	Username   string
	LevelLabel string
	LevelValue string
	Title      string
	NextLevel  string
	Total      string
	Languages  string

	BarTrack string
	BarFill  string
}

// Dracula is the default dark palette.
var Dracula = Theme{
	Name:           "dracula",
	BackgroundFrom: "#44475a",
	BackgroundTo:   "#282a36",
	Border:         "#44475a",
	Username:       "#f8f8f2",
	LevelLabel:     "#bd93f9",
	LevelValue:     "#f8f8f2",
	Title:          "#50fa7b",
	NextLevel:      "#ffb86c",
	Total:          "#6272a4",
	Languages:      "#8be9fd",
	BarTrack:       "#44475a",
	BarFill:        "#bd93f9",
}

// Light matches GitHub's light mode.
var Light = Theme{
	Name:           "light",
	BackgroundFrom: "#ffffff",
	BackgroundTo:   "#f6f8fa",
	Border:         "#d0d7de",
	Username:       "#24292f",
	LevelLabel:     "#8250df",
	LevelValue:     "#24292f",
	Title:          "#1a7f37",
	NextLevel:      "#bc4c00",
	Total:          "#57606a",
	Languages:      "#0969da",
	BarTrack:       "#d0d7de",
	BarFill:        "#8250df",
}

var themes = map[string]Theme{
	Dracula.Name: Dracula,
	Light.Name:   Light,
}

// DefaultTheme is used when no theme is requested.
const DefaultTheme = "dracula"

// ThemeByName looks up a theme case-insensitively. An empty name selects
// [DefaultTheme].
func ThemeByName(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultTheme
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme,
			"unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
