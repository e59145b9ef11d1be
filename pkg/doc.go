// Package pkg holds the gitlevel libraries.
//
// # Overview
//
// gitlevel turns the bytes of code in a GitHub user's public repositories
// into a level, a rank title and a shareable card. The data flow is:
//
//	GitHub REST API
//	       ↓
//	[integrations/github]  list repositories, fetch language bytes
//	       ↓
//	[progression]          total the bytes, place them on the level curve
//	       ↓
//	[render/card]          SVG or JSON card, PNG/PDF via [render]
//
// [pipeline] runs the three stages with caching ([cache]) and is shared by
// the CLI and the card server. [history] stores level snapshots over time.
//
// # Supporting packages
//
//   - [errors]: coded errors mapped to exit messages and HTTP statuses
//   - [httputil]: retry with exponential backoff
//   - [observability]: hooks for metrics around fetches, renders and cache use
//   - [buildinfo]: version information
//
// # Quick Start
//
//	engine := progression.Default()
//	res := engine.Evaluate(39500)
//	fmt.Println(res.Level, res.Title) // 4 Aspiring Developer
//
//	svg := card.RenderSVG(res, "octocat")
package pkg
