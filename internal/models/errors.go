package models

import "errors"

// Application-wide standard errors
var (
	// Resource lookup errors. Ownership mismatches surface as not-found so
	// callers cannot probe for foreign sessions.
	ErrScriptNotFound  = errors.New("cosplay script not found")
	ErrSessionNotFound = errors.New("cosplay session not found")
	ErrReportNotFound  = errors.New("cosplay report not found")
	ErrReportNotReady  = errors.New("session is not completed yet")

	// Choice flow errors
	ErrSessionFinished = errors.New("session is already completed or abandoned")
	ErrScriptFinished  = errors.New("script flow is already finished")
	ErrInvalidOption   = errors.New("option does not exist in the current scene")

	// ErrInvalidScriptContent marks a structural defect in authored script
	// content. Always a server-side authoring bug, never a client error.
	ErrInvalidScriptContent = errors.New("invalid cosplay script content")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)
