package handler

import "cosplay-server/internal/models"

// StartSessionRequest is the optional body of the session start endpoint.
// Resume defaults to true when the body or the field is absent.
type StartSessionRequest struct {
	Resume *bool `json:"resume"`
}

// ChoiceRequest carries the option chosen for the current scene.
type ChoiceRequest struct {
	OptionID string `json:"option_id" validate:"required"`
}

// ScriptListResponse wraps the script summaries.
type ScriptListResponse struct {
	Scripts []models.ScriptSummary `json:"scripts"`
}

// ScriptDetailResponse wraps a single script descriptor.
type ScriptDetailResponse struct {
	Script *models.ScriptDetail `json:"script"`
}

// SessionStateResponse wraps the session view returned by start/state
// endpoints.
type SessionStateResponse struct {
	State *models.SessionView `json:"state"`
}

// APIError is the standardized error response body.
type APIError struct {
	Message string `json:"message"`
}
