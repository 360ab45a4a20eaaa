package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cosplay-server/internal/engine"
	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetReport returns the final report of a completed session. The stored
// report is authoritative; when it is absent (legacy sessions completed
// before report persistence, or a crash between commit points) it is
// recompiled from the persisted state and stored — never duplicated, thanks
// to the per-session uniqueness guard in the repository.
func (s *cosplayService) GetReport(ctx context.Context, sessionID, userID uuid.UUID) (*models.ReportPayload, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionStateCompleted {
		return nil, models.ErrReportNotReady
	}

	stored, err := s.reports.GetBySessionID(ctx, session.ID)
	if err == nil {
		return decodeStoredReport(stored)
	}
	if !errors.Is(err, models.ErrReportNotFound) {
		return nil, err
	}

	// Lazy reconstruction path.
	_, script, err := s.loadScript(ctx, session.ScriptID)
	if err != nil {
		return nil, err
	}
	state := engine.NormalizeState(session.StatePayload, &script.ScriptContent)
	compiled := engine.CompileReport(script, state.Scores, state.History)
	result, err := json.Marshal(compiled)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	persisted, err := s.reports.Create(ctx, &models.CosplayReport{
		ID:        uuid.New(),
		SessionID: session.ID,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Report reconstructed for completed session", zap.Stringer("sessionID", session.ID))
	return decodeStoredReport(persisted)
}
