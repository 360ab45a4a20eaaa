package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SessionState describes the lifecycle of a cosplay session.
// in_progress -> completed is the only transition driven by this engine;
// abandoned is set externally and is terminal like completed.
type SessionState string

const (
	SessionStateInProgress SessionState = "in_progress"
	SessionStateCompleted  SessionState = "completed"
	SessionStateAbandoned  SessionState = "abandoned"
)

// CosplaySession is the persisted session record. StatePayload holds the
// engine-owned JSON state and must be normalized on every read, since the
// stored shape may predate the current script version.
type CosplaySession struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	UserID       uuid.UUID       `db:"user_id" json:"userId"`
	ScriptID     uuid.UUID       `db:"script_id" json:"scriptId"`
	State        SessionState    `db:"state" json:"state"`
	Progress     int             `db:"progress" json:"progress"`
	StatePayload json.RawMessage `db:"state_payload" json:"statePayload"`
	StartedAt    time.Time       `db:"started_at" json:"startedAt"`
	FinishedAt   *time.Time      `db:"finished_at" json:"finishedAt,omitempty"`
}

// HistoryEntry records one applied choice. Entries are immutable once
// appended; Delta contains only non-zero score changes.
type HistoryEntry struct {
	SceneID     string         `json:"scene_id"`
	SceneTitle  string         `json:"scene_title"`
	OptionID    string         `json:"option_id"`
	OptionText  string         `json:"option_text"`
	Feedback    string         `json:"feedback"`
	Delta       map[string]int `json:"delta"`
	ScoresAfter map[string]int `json:"scores_after"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// StatePayload is the typed form of CosplaySession.StatePayload.
// Invariants: 0 <= CurrentSceneIndex <= total scenes,
// len(History) == CurrentSceneIndex, Scores has an entry for every ability
// code of the script.
type StatePayload struct {
	CurrentSceneIndex int            `json:"current_scene_index"`
	Scores            map[string]int `json:"scores"`
	History           []HistoryEntry `json:"history"`
}

// Encode marshals the payload back into the persisted JSON form.
func (p *StatePayload) Encode() (json.RawMessage, error) {
	return json.Marshal(p)
}
