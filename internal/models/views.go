package models

import (
	"time"

	"github.com/google/uuid"
)

// ScriptSummary is the list-view projection of a script.
type ScriptSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Setting     string    `json:"setting,omitempty"`
	TotalScenes int       `json:"total_scenes"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScriptDetail extends the summary with the ability dimensions.
type ScriptDetail struct {
	ScriptSummary
	Abilities []AbilityDescriptor `json:"abilities"`
}

// OptionView is the player-facing projection of an option. Effects and
// feedback are withheld until the option is chosen.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// SceneView is the player-facing projection of a scene.
type SceneView struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Narrative string       `json:"narrative"`
	Options   []OptionView `json:"options"`
}

// SessionView is the full session state returned to the caller after every
// operation. CurrentScene is nil once the session is completed.
type SessionView struct {
	SessionID         uuid.UUID           `json:"session_id"`
	ScriptID          uuid.UUID           `json:"script_id"`
	ScriptTitle       string              `json:"script_title"`
	Setting           string              `json:"setting,omitempty"`
	Progress          int                 `json:"progress"`
	Completed         bool                `json:"completed"`
	CurrentSceneIndex int                 `json:"current_scene_index"`
	TotalScenes       int                 `json:"total_scenes"`
	Scores            map[string]int      `json:"scores"`
	Abilities         []AbilityDescriptor `json:"abilities"`
	CurrentScene      *SceneView          `json:"current_scene"`
	History           []HistoryEntry      `json:"history"`
	Report            *ReportPayload      `json:"report,omitempty"`
}

// ChoiceResult is returned from a successful choice: the chosen option's
// feedback, the score deltas it produced and the advanced session state.
type ChoiceResult struct {
	Feedback      string         `json:"feedback"`
	ScoreChanges  map[string]int `json:"score_changes"`
	CurrentScores map[string]int `json:"current_scores"`
	NextState     *SessionView   `json:"next_state"`
}
