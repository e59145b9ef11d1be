package progression

import (
	"fmt"
	"math"
)

const (
	// InitialLevel is the level of anyone with no experience.
	InitialLevel = 1

	// DefaultBase is the experience needed to go from level 1 to level 2.
	DefaultBase = 5000.0

	// DefaultGrowth is the factor applied to each successive step.
	DefaultGrowth = 1.5

	// MinBase and MinGrowth bound how slowly a curve may rise. Flatter curves
	// need millions of steps to place an int64 byte total, and a growth close
	// enough to 1 stops rising at all once step*growth rounds back to step.
	MinBase   = 1.0
	MinGrowth = 1.0001
)

// Curve is a geometric experience curve. The zero value is not usable; build
// one with [NewCurve] or use [DefaultCurve].
type Curve struct {
	base   float64
	growth float64
}

// NewCurve returns a curve whose first step costs base and whose steps grow by
// the factor growth. base must be at least [MinBase] and growth at least
// [MinGrowth]; both must be finite.
func NewCurve(base, growth float64) (Curve, error) {
	if !(base >= MinBase) || math.IsInf(base, 0) {
		return Curve{}, fmt.Errorf("curve base must be a finite number >= %v, got %v", MinBase, base)
	}
	if !(growth >= MinGrowth) || math.IsInf(growth, 0) {
		return Curve{}, fmt.Errorf("curve growth must be a finite number >= %v, got %v", MinGrowth, growth)
	}
	return Curve{base: base, growth: growth}, nil
}

// DefaultCurve returns the curve with [DefaultBase] and [DefaultGrowth].
func DefaultCurve() Curve {
	return Curve{base: DefaultBase, growth: DefaultGrowth}
}

// Base returns the cost of the first level-up.
func (c Curve) Base() float64 { return c.base }

// Growth returns the per-level growth factor.
func (c Curve) Growth() float64 { return c.growth }

// Position is where an experience total sits on a curve.
type Position struct {
	Level int     // greatest level whose floor is <= the total
	Floor float64 // cumulative experience at which Level was reached
	Next  float64 // cumulative experience at which Level+1 is reached
}

// Locate walks the cumulative thresholds and stops at the first one above
// exp. Totals that are zero, negative or NaN sit at the start of level 1.
func (c Curve) Locate(exp float64) Position {
	level := InitialLevel
	floor, step := 0.0, c.base
	if !(exp > 0) {
		return Position{Level: level, Floor: floor, Next: floor + step}
	}
	for {
		next := floor + step
		if exp < next || math.IsInf(next, 1) {
			return Position{Level: level, Floor: floor, Next: next}
		}
		level++
		floor = next
		step *= c.growth
	}
}

// Level returns the level reached with exp experience.
func (c Curve) Level(exp float64) int {
	return c.Locate(exp).Level
}

// ToNextLevel returns how much more experience is needed to reach the next
// level. For exp <= 0 this is exactly the curve's base.
func (c Curve) ToNextLevel(exp float64) float64 {
	p := c.Locate(exp)
	if !(exp > 0) {
		return p.Next
	}
	return p.Next - exp
}

// Cumulative returns the total experience required to reach level. Levels
// below [InitialLevel] are treated as the initial level.
func (c Curve) Cumulative(level int) float64 {
	floor, step := 0.0, c.base
	for l := InitialLevel; l < level; l++ {
		floor += step
		step *= c.growth
	}
	return floor
}

// Thresholds returns the cumulative thresholds for levels 1 through n.
func (c Curve) Thresholds(n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	floor, step := 0.0, c.base
	for i := range out {
		out[i] = floor
		floor += step
		step *= c.growth
	}
	return out
}
