// Package engine holds the pure computations of the cosplay flow: state
// normalization, effect application and report compilation. Nothing here
// performs I/O; every function is reproducible from its inputs.
package engine

import "cosplay-server/internal/models"

// Score bounds enforced on every effect application.
const (
	MinScore = 0
	MaxScore = 100
)

// NewInitialState builds the state payload for a fresh session: first scene,
// base score on every ability, empty history.
func NewInitialState(script *models.ScriptContent) *models.StatePayload {
	scores := make(map[string]int, len(script.Abilities))
	for _, code := range script.AbilityCodes() {
		scores[code] = script.BaseScore
	}
	return &models.StatePayload{
		CurrentSceneIndex: 0,
		Scores:            scores,
		History:           []models.HistoryEntry{},
	}
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
