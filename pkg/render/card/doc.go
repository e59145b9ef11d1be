// Package card renders a developer's level as a shareable card.
//
// [RenderSVG] produces a 400×180 SVG showing the username, the level number,
// the title, the total byte count and the bytes left until the next level,
// with an optional progress bar and language line:
//
//	res := progression.Default().Analyze(repos)
//	svg := card.RenderSVG(res, "octocat",
//	    card.WithTheme(card.Light),
//	    card.WithLanguages(progression.Languages(repos, 3)),
//	)
//
// [RenderJSON] emits the same data for programmatic consumers.
//
// Byte counts use comma thousands separators. Remaining experience is
// rounded up to whole bytes for display only; JSON keeps the exact value.
package card
