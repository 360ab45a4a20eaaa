package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosplay-server/internal/content"
	"cosplay-server/internal/engine"
	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChooseOption applies the chosen option to the current scene and advances
// the session. On the last scene the session transitions to completed and
// the report is compiled and persisted in the same transaction as the state
// update, so no partially-advanced state is ever observable.
func (s *cosplayService) ChooseOption(ctx context.Context, sessionID, userID uuid.UUID, optionID string) (*models.ChoiceResult, error) {
	session, err := s.loadOwnedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionStateInProgress {
		return nil, models.ErrSessionFinished
	}

	record, script, err := s.loadScript(ctx, session.ScriptID)
	if err != nil {
		return nil, err
	}

	state := engine.NormalizeState(session.StatePayload, &script.ScriptContent)
	totalScenes := script.TotalScenes()
	if state.CurrentSceneIndex >= totalScenes {
		return nil, models.ErrScriptFinished
	}

	scene := script.FindScene(state.CurrentSceneIndex)
	option := scene.FindOption(optionID)
	if option == nil {
		return nil, models.ErrInvalidOption
	}

	updatedScores, deltas := engine.ApplyOption(state.Scores, option, &script.ScriptContent)
	now := time.Now().UTC()

	state.History = append(state.History, models.HistoryEntry{
		SceneID:     scene.ID,
		SceneTitle:  scene.Title,
		OptionID:    option.ID,
		OptionText:  option.Text,
		Feedback:    option.Feedback,
		Delta:       deltas,
		ScoresAfter: updatedScores,
		OccurredAt:  now,
	})
	state.Scores = updatedScores
	state.CurrentSceneIndex++

	payload, err := state.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding session state: %w", err)
	}
	session.StatePayload = payload
	session.Progress = computeProgress(state.CurrentSceneIndex, totalScenes)

	var report *models.ReportPayload
	if state.CurrentSceneIndex == totalScenes {
		session.State = models.SessionStateCompleted
		session.FinishedAt = &now
		report, err = s.completeSession(ctx, session, script, state, now)
	} else {
		err = s.sessions.UpdateState(ctx, session)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Choice applied",
		zap.Stringer("sessionID", session.ID),
		zap.String("optionID", option.ID),
		zap.Int("sceneIndex", state.CurrentSceneIndex),
		zap.Bool("completed", session.State == models.SessionStateCompleted))

	return &models.ChoiceResult{
		Feedback:      option.Feedback,
		ScoreChanges:  deltas,
		CurrentScores: state.Scores,
		NextState:     buildSessionView(session, record, script, state, report),
	}, nil
}

// completeSession compiles the report and persists the terminal transition
// atomically. Under a completion race the stored report wins over the
// locally compiled one.
func (s *cosplayService) completeSession(ctx context.Context, session *models.CosplaySession, script *content.Script, state *models.StatePayload, now time.Time) (*models.ReportPayload, error) {
	compiled := engine.CompileReport(script, state.Scores, state.History)
	result, err := json.Marshal(compiled)
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	persisted, err := s.sessions.CompleteWithReport(ctx, session, &models.CosplayReport{
		ID:        uuid.New(),
		SessionID: session.ID,
		Result:    result,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return decodeStoredReport(persisted)
}
