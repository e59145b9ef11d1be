package progression

import (
	"errors"
	"fmt"
)

// Tier assigns Title to every experience total at or above Threshold, up to
// the next tier.
type Tier struct {
	Threshold int64  `json:"threshold" toml:"threshold"`
	Title     string `json:"title" toml:"title"`
}

// Tiers is an ordered title table. Construct it with [NewTiers] so the
// ordering and coverage rules are checked.
type Tiers struct {
	tiers []Tier
}

var defaultTiers = []Tier{
	{Threshold: 0, Title: "Hello World Habitants"},
	{Threshold: 10_000, Title: "Aspiring Developer"},
	{Threshold: 50_000, Title: "Code Follower"},
	{Threshold: 100_000, Title: "Bug Hunter"},
	{Threshold: 250_000, Title: "Logic Architect"},
	{Threshold: 500_000, Title: "Code Designer"},
	{Threshold: 1_000_000, Title: "Framework Master"},
	{Threshold: 2_500_000, Title: "Legendary Deployer"},
	{Threshold: 5_000_000, Title: "System Sage"},
	{Threshold: 10_000_000, Title: "Binary God"},
}

// DefaultTiers returns the built-in title table.
func DefaultTiers() Tiers {
	return Tiers{tiers: defaultTiers}
}

// NewTiers validates tiers and returns a table over a private copy of them.
// The first threshold must be 0 and thresholds must strictly increase.
func NewTiers(tiers []Tier) (Tiers, error) {
	if len(tiers) == 0 {
		return Tiers{}, errors.New("tier table is empty")
	}
	if tiers[0].Threshold != 0 {
		return Tiers{}, fmt.Errorf("first tier must start at 0, got %d", tiers[0].Threshold)
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].Threshold <= tiers[i-1].Threshold {
			return Tiers{}, fmt.Errorf("tier %q (%d) does not exceed %q (%d)",
				tiers[i].Title, tiers[i].Threshold, tiers[i-1].Title, tiers[i-1].Threshold)
		}
	}
	return Tiers{tiers: append([]Tier(nil), tiers...)}, nil
}

// Select returns the tier with the greatest threshold not above exp.
func (t Tiers) Select(exp int64) Tier {
	for i := len(t.tiers) - 1; i >= 0; i-- {
		if exp >= t.tiers[i].Threshold {
			return t.tiers[i]
		}
	}
	// Only reachable for negative totals.
	return t.tiers[0]
}

// Title returns the title for exp.
func (t Tiers) Title(exp int64) string {
	return t.Select(exp).Title
}

// All returns a copy of the table in ascending threshold order.
func (t Tiers) All() []Tier {
	return append([]Tier(nil), t.tiers...)
}
