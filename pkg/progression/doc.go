// Package progression turns a byte count of authored code into a developer
// level, a title, and the distance to the next level.
//
// # Experience Curve
//
// Advancing from level L to L+1 costs Base·Growth^(L-1) bytes. The cumulative
// threshold of a level is the sum of every step below it:
//
//	cumulative(1)   = 0
//	cumulative(L+1) = cumulative(L) + Base·Growth^(L-1)
//
// With the default curve (Base 5000, Growth 1.5) the first thresholds are
// 0, 5000, 12500, 23750, 40625, ...
//
// [Curve.Locate] walks this sequence once and returns the level together with
// both surrounding thresholds, so the level and the remaining distance can
// never disagree about where a boundary lies.
//
// # Titles
//
// Titles come from a separate, coarser [Tiers] table. The selected tier is
// the one with the greatest threshold not above the experience total; the
// first tier always starts at 0.
//
// # Usage
//
//	total := progression.TotalExperience(repos)
//	res := progression.Default().Evaluate(total)
//	fmt.Println(res.Level, res.Title, res.ExperienceToNextLevel)
//
// Everything in this package is pure and safe for concurrent use.
package progression
