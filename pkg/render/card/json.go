package card

import (
	"encoding/json"

	"github.com/matzehuels/gitlevel/pkg/progression"
)

// Stats is the JSON form of a card.
type Stats struct {
	Username              string                      `json:"username"`
	TotalExperience       int64                       `json:"total_experience"`
	Level                 int                         `json:"level"`
	Title                 string                      `json:"title"`
	ExperienceToNextLevel float64                     `json:"experience_to_next_level"`
	LevelFloor            float64                     `json:"level_floor"`
	NextLevelAt           float64                     `json:"next_level_at"`
	Progress              float64                     `json:"progress"`
	Languages             []progression.LanguageShare `json:"languages,omitempty"`
}

// NewStats assembles the JSON form of a card.
func NewStats(res progression.Result, username string, langs []progression.LanguageShare) Stats {
	return Stats{
		Username:              username,
		TotalExperience:       res.TotalExperience,
		Level:                 res.Level,
		Title:                 res.Title,
		ExperienceToNextLevel: res.ExperienceToNextLevel,
		LevelFloor:            res.LevelFloor,
		NextLevelAt:           res.NextLevelAt,
		Progress:              res.Progress(),
		Languages:             langs,
	}
}

// RenderJSON renders the card data as indented JSON.
func RenderJSON(res progression.Result, username string, langs []progression.LanguageShare) ([]byte, error) {
	data, err := json.MarshalIndent(NewStats(res, username, langs), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
