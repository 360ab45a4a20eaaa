// Package service implements the cosplay engine's session lifecycle and
// progression logic on top of the repository boundary. All score and report
// math lives in the engine package; this layer orchestrates loads, applies
// the pure computations and persists the outcome atomically.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"cosplay-server/internal/content"
	"cosplay-server/internal/models"
	"cosplay-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CosplayService exposes the operations consumed by the delivery layer.
// Every method returns either a view payload or one of the sentinel errors
// from the models package; HTTP status mapping happens in the handler.
type CosplayService interface {
	ListScripts(ctx context.Context) ([]models.ScriptSummary, error)
	GetScriptDetail(ctx context.Context, scriptID uuid.UUID) (*models.ScriptDetail, error)
	StartSession(ctx context.Context, scriptID, userID uuid.UUID, resume bool) (*models.SessionView, error)
	GetSessionState(ctx context.Context, sessionID, userID uuid.UUID) (*models.SessionView, error)
	ChooseOption(ctx context.Context, sessionID, userID uuid.UUID, optionID string) (*models.ChoiceResult, error)
	GetReport(ctx context.Context, sessionID, userID uuid.UUID) (*models.ReportPayload, error)
}

type cosplayService struct {
	scripts  repository.ScriptRepository
	sessions repository.SessionRepository
	reports  repository.ReportRepository
	cache    repository.ScriptCache
	logger   *zap.Logger
}

// NewCosplayService creates the service. cache may be nil, in which case
// every script load goes straight to the script repository.
func NewCosplayService(
	scripts repository.ScriptRepository,
	sessions repository.SessionRepository,
	reports repository.ReportRepository,
	cache repository.ScriptCache,
	logger *zap.Logger,
) CosplayService {
	return &cosplayService{
		scripts:  scripts,
		sessions: sessions,
		reports:  reports,
		cache:    cache,
		logger:   logger.Named("CosplayService"),
	}
}

// loadScript fetches the script record (through the cache when configured)
// and validates its content. Cache failures are logged and ignored.
func (s *cosplayService) loadScript(ctx context.Context, scriptID uuid.UUID) (*models.CosplayScript, *content.Script, error) {
	var record *models.CosplayScript

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, scriptID)
		switch {
		case err == nil:
			record = cached
		case !errors.Is(err, repository.ErrCacheMiss):
			s.logger.Warn("Script cache read failed", zap.Stringer("scriptID", scriptID), zap.Error(err))
		}
	}

	if record == nil {
		loaded, err := s.scripts.GetByID(ctx, scriptID)
		if err != nil {
			return nil, nil, err
		}
		record = loaded
		if s.cache != nil {
			if err := s.cache.Set(ctx, record); err != nil {
				s.logger.Warn("Script cache write failed", zap.Stringer("scriptID", scriptID), zap.Error(err))
			}
		}
	}

	script, err := content.ParseScript(record.Content)
	if err != nil {
		s.logger.Error("Script content failed validation", zap.Stringer("scriptID", scriptID), zap.Error(err))
		return nil, nil, err
	}
	return record, script, nil
}

// loadOwnedSession fetches a session and verifies ownership. A foreign
// session is reported as not found so callers cannot probe for other users'
// sessions.
func (s *cosplayService) loadOwnedSession(ctx context.Context, sessionID, userID uuid.UUID) (*models.CosplaySession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}

// computeProgress converts scene advancement into a whole percentage,
// rounded half-up and clamped into [0, 100]. A script without scenes counts
// as fully traversed.
func computeProgress(currentIndex, totalScenes int) int {
	if totalScenes <= 0 {
		return 100
	}
	progress := int(math.Round(float64(currentIndex) / float64(totalScenes) * 100))
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// buildSessionView projects a session plus its normalized state into the
// caller-facing view. report may be nil for in-progress sessions.
func buildSessionView(session *models.CosplaySession, record *models.CosplayScript, script *content.Script, state *models.StatePayload, report *models.ReportPayload) *models.SessionView {
	view := &models.SessionView{
		SessionID:         session.ID,
		ScriptID:          session.ScriptID,
		ScriptTitle:       record.Title,
		Setting:           script.Setting,
		Progress:          session.Progress,
		Completed:         session.State == models.SessionStateCompleted,
		CurrentSceneIndex: state.CurrentSceneIndex,
		TotalScenes:       script.TotalScenes(),
		Scores:            state.Scores,
		Abilities:         script.Abilities,
		History:           state.History,
		Report:            report,
	}

	if scene := script.FindScene(state.CurrentSceneIndex); scene != nil {
		options := make([]models.OptionView, 0, len(scene.Options))
		for _, opt := range scene.Options {
			options = append(options, models.OptionView{ID: opt.ID, Text: opt.Text})
		}
		view.CurrentScene = &models.SceneView{
			ID:        scene.ID,
			Title:     scene.Title,
			Narrative: scene.Narrative,
			Options:   options,
		}
	}
	return view
}

// decodeStoredReport parses a persisted report row.
func decodeStoredReport(report *models.CosplayReport) (*models.ReportPayload, error) {
	payload, err := models.DecodeReportPayload(report.Result)
	if err != nil {
		return nil, fmt.Errorf("decoding stored report %s: %w", report.ID, err)
	}
	return payload, nil
}

// fetchReportIfAny returns the stored report payload for a completed
// session, or nil when none exists yet.
func (s *cosplayService) fetchReportIfAny(ctx context.Context, session *models.CosplaySession) (*models.ReportPayload, error) {
	if session.State != models.SessionStateCompleted {
		return nil, nil
	}
	report, err := s.reports.GetBySessionID(ctx, session.ID)
	if err != nil {
		if errors.Is(err, models.ErrReportNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeStoredReport(report)
}
