package mocks

import (
	"context"

	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock CosplayService
type CosplayService struct {
	mock.Mock
}

func (m *CosplayService) ListScripts(ctx context.Context) ([]models.ScriptSummary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]models.ScriptSummary)
	return summaries, args.Error(1)
}

func (m *CosplayService) GetScriptDetail(ctx context.Context, scriptID uuid.UUID) (*models.ScriptDetail, error) {
	args := m.Called(ctx, scriptID)
	detail, _ := args.Get(0).(*models.ScriptDetail)
	return detail, args.Error(1)
}

func (m *CosplayService) StartSession(ctx context.Context, scriptID, userID uuid.UUID, resume bool) (*models.SessionView, error) {
	args := m.Called(ctx, scriptID, userID, resume)
	view, _ := args.Get(0).(*models.SessionView)
	return view, args.Error(1)
}

func (m *CosplayService) GetSessionState(ctx context.Context, sessionID, userID uuid.UUID) (*models.SessionView, error) {
	args := m.Called(ctx, sessionID, userID)
	view, _ := args.Get(0).(*models.SessionView)
	return view, args.Error(1)
}

func (m *CosplayService) ChooseOption(ctx context.Context, sessionID, userID uuid.UUID, optionID string) (*models.ChoiceResult, error) {
	args := m.Called(ctx, sessionID, userID, optionID)
	result, _ := args.Get(0).(*models.ChoiceResult)
	return result, args.Error(1)
}

func (m *CosplayService) GetReport(ctx context.Context, sessionID, userID uuid.UUID) (*models.ReportPayload, error) {
	args := m.Called(ctx, sessionID, userID)
	report, _ := args.Get(0).(*models.ReportPayload)
	return report, args.Error(1)
}
