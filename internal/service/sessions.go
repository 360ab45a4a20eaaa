package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cosplay-server/internal/engine"
	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartSession creates a new session for the script, or resumes the latest
// in-progress one when resume is set. Resuming is idempotent: it performs no
// state mutation and returns the stored session as-is.
func (s *cosplayService) StartSession(ctx context.Context, scriptID, userID uuid.UUID, resume bool) (*models.SessionView, error) {
	record, script, err := s.loadScript(ctx, scriptID)
	if err != nil {
		return nil, err
	}

	if resume {
		existing, err := s.sessions.GetActive(ctx, userID, scriptID)
		if err == nil {
			state := engine.NormalizeState(existing.StatePayload, &script.ScriptContent)
			return buildSessionView(existing, record, script, state, nil), nil
		}
		if !errors.Is(err, models.ErrSessionNotFound) {
			return nil, err
		}
	}

	state := engine.NewInitialState(&script.ScriptContent)
	payload, err := state.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding initial state: %w", err)
	}

	session := &models.CosplaySession{
		ID:           uuid.New(),
		UserID:       userID,
		ScriptID:     scriptID,
		State:        models.SessionStateInProgress,
		Progress:     0,
		StatePayload: payload,
		StartedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Info("Session started",
		zap.Stringer("sessionID", session.ID),
		zap.Stringer("scriptID", scriptID),
		zap.Stringer("userID", userID))

	return buildSessionView(session, record, script, state, nil), nil
}

// GetSessionState returns the latest persisted state of a session owned by
// the caller, including the report when the session is completed.
func (s *cosplayService) GetSessionState(ctx context.Context, sessionID, userID uuid.UUID) (*models.SessionView, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	record, script, err := s.loadScript(ctx, session.ScriptID)
	if err != nil {
		return nil, err
	}

	state := engine.NormalizeState(session.StatePayload, &script.ScriptContent)
	report, err := s.fetchReportIfAny(ctx, session)
	if err != nil {
		return nil, err
	}
	return buildSessionView(session, record, script, state, report), nil
}
