package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CosplayReport is the persisted report record, at most one per session.
type CosplayReport struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	SessionID uuid.UUID       `db:"session_id" json:"sessionId"`
	Result    json.RawMessage `db:"result" json:"result"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

// ReportPayload is the compiled evaluation stored in CosplayReport.Result.
type ReportPayload struct {
	FinalScores         map[string]int    `json:"final_scores"`
	RankedDimensions    []string          `json:"ranked_dimensions"`
	HighlightDimensions []string          `json:"highlight_dimensions"`
	RouteKey            string            `json:"route_key"`
	RouteName           string            `json:"route_name"`
	Summary             string            `json:"summary"`
	Advice              string            `json:"advice"`
	AbilityLabels       map[string]string `json:"ability_labels"`
	AbilityDescriptions map[string]string `json:"ability_descriptions"`
	History             []HistoryEntry    `json:"history"`
}

// DecodeReportPayload parses a persisted report result.
func DecodeReportPayload(raw json.RawMessage) (*ReportPayload, error) {
	var payload ReportPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
