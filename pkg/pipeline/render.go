package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gitlevel/pkg/progression"
	"github.com/matzehuels/gitlevel/pkg/render"
	"github.com/matzehuels/gitlevel/pkg/render/card"
)

// RenderArtifacts renders res in every format of opts. The SVG is drawn
// once and reused for PNG and PDF conversion.
func RenderArtifacts(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var top []progression.LanguageShare
	if opts.TopLanguages > 0 {
		top = res.Languages[:min(opts.TopLanguages, len(res.Languages))]
	}

	var svg []byte
	svgOnce := func() ([]byte, error) {
		if svg == nil {
			theme, err := card.ThemeByName(opts.Theme)
			if err != nil {
				return nil, err
			}
			cardOpts := []card.Option{card.WithTheme(theme), card.WithLanguages(top)}
			if opts.NoProgressBar {
				cardOpts = append(cardOpts, card.WithoutProgressBar())
			}
			svg = card.RenderSVG(res.Stats, res.Username, cardOpts...)
		}
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = svgOnce()
		case FormatJSON:
			data, err = card.RenderJSON(res.Stats, res.Username, res.Languages)
		case FormatPNG:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = svgOnce(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
