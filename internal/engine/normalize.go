package engine

import (
	"encoding/json"

	"cosplay-server/internal/models"
)

// looseState mirrors the persisted payload without trusting any field type.
// Persisted state may be partially corrupted or authored against an older
// script version; reads must repair rather than fail.
type looseState struct {
	CurrentSceneIndex json.RawMessage            `json:"current_scene_index"`
	Scores            map[string]json.RawMessage `json:"scores"`
	History           json.RawMessage            `json:"history"`
}

// NormalizeState repairs a possibly-partial persisted payload into a
// structurally complete, in-range state:
//   - the scene index is clamped into [0, total scenes]
//   - history is coerced to a list, defaulting to empty
//   - scores keep only numeric entries, and every ability code of the script
//     gets an entry, defaulting to the base score
func NormalizeState(raw json.RawMessage, script *models.ScriptContent) *models.StatePayload {
	payload := &models.StatePayload{
		Scores:  make(map[string]int, len(script.Abilities)),
		History: []models.HistoryEntry{},
	}

	var loose looseState
	if len(raw) > 0 {
		// A payload that is not even an object is treated as absent.
		_ = json.Unmarshal(raw, &loose)
	}

	index := 0
	if len(loose.CurrentSceneIndex) > 0 {
		var number float64
		if err := json.Unmarshal(loose.CurrentSceneIndex, &number); err == nil {
			index = int(number)
		}
	}
	payload.CurrentSceneIndex = clampInt(index, 0, script.TotalScenes())

	if len(loose.History) > 0 {
		var history []models.HistoryEntry
		if err := json.Unmarshal(loose.History, &history); err == nil && history != nil {
			payload.History = history
		}
	}

	for code, rawScore := range loose.Scores {
		var number float64
		if err := json.Unmarshal(rawScore, &number); err == nil {
			payload.Scores[code] = int(number)
		}
	}
	for _, code := range script.AbilityCodes() {
		if _, ok := payload.Scores[code]; !ok {
			payload.Scores[code] = script.BaseScore
		}
	}

	return payload
}
