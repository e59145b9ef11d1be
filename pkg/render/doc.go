// Package render holds output helpers shared by the card renderers.
//
// The level card itself is drawn by the [card] subpackage as SVG. [ToPNG]
// and [ToPDF] convert any SVG to raster or print formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := card.RenderSVG(stats, "octocat")
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [card]: github.com/matzehuels/gitlevel/pkg/render/card
package render
