package progression

// Result is the outcome of evaluating an experience total.
type Result struct {
	TotalExperience       int64   `json:"total_experience"`
	Level                 int     `json:"level"`
	Title                 string  `json:"title"`
	ExperienceToNextLevel float64 `json:"experience_to_next_level"`

	// LevelFloor and NextLevelAt are the cumulative thresholds around Level.
	LevelFloor  float64 `json:"level_floor"`
	NextLevelAt float64 `json:"next_level_at"`
}

// Progress returns the fraction of the current level already completed, in
// the range [0, 1).
func (r Result) Progress() float64 {
	span := r.NextLevelAt - r.LevelFloor
	if span <= 0 {
		return 0
	}
	done := float64(r.TotalExperience) - r.LevelFloor
	return min(max(done/span, 0), 1)
}

// Engine combines a curve and a title table.
type Engine struct {
	curve Curve
	tiers Tiers
}

// NewEngine returns an engine over the given curve and tiers.
func NewEngine(curve Curve, tiers Tiers) *Engine {
	return &Engine{curve: curve, tiers: tiers}
}

// Default returns an engine using [DefaultCurve] and [DefaultTiers].
func Default() *Engine {
	return NewEngine(DefaultCurve(), DefaultTiers())
}

// Curve returns the engine's experience curve.
func (e *Engine) Curve() Curve { return e.curve }

// Tiers returns the engine's title table.
func (e *Engine) Tiers() Tiers { return e.tiers }

// Evaluate computes the level, title and remaining distance for total.
func (e *Engine) Evaluate(total int64) Result {
	exp := float64(total)
	pos := e.curve.Locate(exp)
	remaining := pos.Next - exp
	if total <= 0 {
		remaining = pos.Next
	}
	return Result{
		TotalExperience:       total,
		Level:                 pos.Level,
		Title:                 e.tiers.Title(total),
		ExperienceToNextLevel: remaining,
		LevelFloor:            pos.Floor,
		NextLevelAt:           pos.Next,
	}
}

// Analyze sums the repositories and evaluates the total.
func (e *Engine) Analyze(repos []Repository) Result {
	return e.Evaluate(TotalExperience(repos))
}
