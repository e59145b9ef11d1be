package card

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/gitlevel/pkg/progression"
)

// Card dimensions in pixels.
const (
	Width  = 400
	Height = 180
)

const (
	fontFamily = `'Segoe UI', Ubuntu, sans-serif`
	padding    = 20
	barHeight  = 4
)

// Option configures [RenderSVG].
type Option func(*renderer)

type renderer struct {
	theme     Theme
	languages []progression.LanguageShare
	bar       bool
}

// WithTheme selects the color palette.
func WithTheme(t Theme) Option { return func(r *renderer) { r.theme = t } }

// WithLanguages adds a line listing the given languages with their share.
func WithLanguages(langs []progression.LanguageShare) Option {
	return func(r *renderer) { r.languages = langs }
}

// WithoutProgressBar omits the bar along the bottom edge.
func WithoutProgressBar() Option { return func(r *renderer) { r.bar = false } }

// RenderSVG draws the level card for username as a standalone SVG document.
func RenderSVG(res progression.Result, username string, opts ...Option) []byte {
	r := renderer{theme: Dracula, bar: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		Width, Height, Width, Height)
	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" rx="10" class="bg"/>`+"\n")

	buf.WriteString("  <g>\n")
	text(&buf, padding, 35, "username", "", username)
	text(&buf, Width/2, 65, "level-label", "middle", "Level")
	text(&buf, Width/2, 110, "level-value", "middle", fmt.Sprint(res.Level))
	text(&buf, Width/2, 145, "title", "middle", res.Title)
	text(&buf, padding, Height-15, "total", "",
		fmt.Sprintf("Total: %s Bytes", FormatBytes(res.TotalExperience)))
	text(&buf, Width-padding, Height-15, "next-level", "end",
		fmt.Sprintf("Next Level in %s Bytes", FormatBytes(WholeBytes(res.ExperienceToNextLevel))))
	if len(r.languages) > 0 {
		text(&buf, Width-padding, 35, "languages", "end", languageLine(r.languages))
	}
	buf.WriteString("  </g>\n")

	if r.bar {
		renderBar(&buf, res.Progress())
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderDefs(buf *bytes.Buffer) {
	t := r.theme
	buf.WriteString("  <defs>\n    <style>\n")
	fmt.Fprintf(buf, "      .bg { fill: url(#bg-gradient); stroke: %s; stroke-width: 1.5; }\n", t.Border)
	fmt.Fprintf(buf, "      .username { font-size: 16px; font-weight: 600; font-family: %s; fill: %s; }\n", fontFamily, t.Username)
	fmt.Fprintf(buf, "      .level-label { font-size: 14px; font-family: %s; fill: %s; }\n", fontFamily, t.LevelLabel)
	fmt.Fprintf(buf, "      .level-value { font-size: 48px; font-weight: 800; font-family: %s; fill: %s; }\n", fontFamily, t.LevelValue)
	fmt.Fprintf(buf, "      .title { font-size: 20px; font-weight: 700; font-family: %s; fill: %s; }\n", fontFamily, t.Title)
	fmt.Fprintf(buf, "      .next-level { font-size: 12px; font-family: %s; fill: %s; }\n", fontFamily, t.NextLevel)
	fmt.Fprintf(buf, "      .total { font-size: 11px; font-family: %s; fill: %s; }\n", fontFamily, t.Total)
	fmt.Fprintf(buf, "      .languages { font-size: 11px; font-family: %s; fill: %s; }\n", fontFamily, t.Languages)
	fmt.Fprintf(buf, "      .bar-track { fill: %s; }\n      .bar-fill { fill: %s; }\n", t.BarTrack, t.BarFill)
	buf.WriteString("    </style>\n")
	buf.WriteString(`    <linearGradient id="bg-gradient" x1="0%" y1="0%" x2="100%" y2="100%">` + "\n")
	fmt.Fprintf(buf, `      <stop offset="0%%" stop-color="%s"/>`+"\n", t.BackgroundFrom)
	fmt.Fprintf(buf, `      <stop offset="100%%" stop-color="%s"/>`+"\n", t.BackgroundTo)
	buf.WriteString("    </linearGradient>\n  </defs>\n")
}

func renderBar(buf *bytes.Buffer, progress float64) {
	const (
		width = Width - 2*padding
		y     = Height - barHeight - 4
	)
	fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" rx="2" class="bar-track"/>`+"\n",
		padding, y, width, barHeight)
	if fill := progress * width; fill > 0 {
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%.1f" height="%d" rx="2" class="bar-fill"/>`+"\n",
			padding, y, fill, barHeight)
	}
}

func text(buf *bytes.Buffer, x, y int, class, anchor, content string) {
	fmt.Fprintf(buf, `    <text x="%d" y="%d" class="%s"`, x, y, class)
	if anchor != "" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, anchor)
	}
	buf.WriteByte('>')
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</text>\n")
}

func languageLine(langs []progression.LanguageShare) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = fmt.Sprintf("%s %.0f%%", l.Language, l.Share*100)
	}
	return strings.Join(parts, " · ")
}
