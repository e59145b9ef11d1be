package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gitlevel/pkg/progression"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// Terminal palette, close to the dracula card theme.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared text styles, also used by the card view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleOK          = lipgloss.NewStyle().Foreground(colorGreen)
	styleMuted       = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

func printSuccess(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(StyleWarning.Render("! " + fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleMuted.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }

// printStats prints "N repositories · M languages · cached|fresh".
func printStats(repos, languages int, cached bool) {
	parts := []string{StyleDim.Render(fmt.Sprintf("%d repositories", repos))}
	if languages > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d languages", languages)))
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printLevel prints the text form of a level card.
func printLevel(res progression.Result) {
	printKeyValue("Total", card.FormatBytes(res.TotalExperience)+" Bytes")
	printKeyValue("Level", StyleHighlight.Render(strconv.Itoa(res.Level)))
	printKeyValue("Rank", StyleTitle.Render(res.Title))
	printKeyValue("Next Level", card.FormatBytes(card.WholeBytes(res.ExperienceToNextLevel))+" Bytes")
}
