package mocks

import (
	"context"

	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock ScriptRepository
type ScriptRepository struct {
	mock.Mock
}

func (m *ScriptRepository) List(ctx context.Context) ([]models.CosplayScript, error) {
	args := m.Called(ctx)
	scripts, _ := args.Get(0).([]models.CosplayScript)
	return scripts, args.Error(1)
}

func (m *ScriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CosplayScript, error) {
	args := m.Called(ctx, id)
	script, _ := args.Get(0).(*models.CosplayScript)
	return script, args.Error(1)
}

// Mock SessionRepository
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CosplaySession, error) {
	args := m.Called(ctx, id)
	session, _ := args.Get(0).(*models.CosplaySession)
	return session, args.Error(1)
}

func (m *SessionRepository) GetActive(ctx context.Context, userID, scriptID uuid.UUID) (*models.CosplaySession, error) {
	args := m.Called(ctx, userID, scriptID)
	session, _ := args.Get(0).(*models.CosplaySession)
	return session, args.Error(1)
}

func (m *SessionRepository) Create(ctx context.Context, session *models.CosplaySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) UpdateState(ctx context.Context, session *models.CosplaySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepository) CompleteWithReport(ctx context.Context, session *models.CosplaySession, report *models.CosplayReport) (*models.CosplayReport, error) {
	args := m.Called(ctx, session, report)
	persisted, _ := args.Get(0).(*models.CosplayReport)
	return persisted, args.Error(1)
}

// Mock ReportRepository
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.CosplayReport, error) {
	args := m.Called(ctx, sessionID)
	report, _ := args.Get(0).(*models.CosplayReport)
	return report, args.Error(1)
}

func (m *ReportRepository) Create(ctx context.Context, report *models.CosplayReport) (*models.CosplayReport, error) {
	args := m.Called(ctx, report)
	persisted, _ := args.Get(0).(*models.CosplayReport)
	return persisted, args.Error(1)
}

// Mock ScriptCache
type ScriptCache struct {
	mock.Mock
}

func (m *ScriptCache) Get(ctx context.Context, id uuid.UUID) (*models.CosplayScript, error) {
	args := m.Called(ctx, id)
	script, _ := args.Get(0).(*models.CosplayScript)
	return script, args.Error(1)
}

func (m *ScriptCache) Set(ctx context.Context, script *models.CosplayScript) error {
	args := m.Called(ctx, script)
	return args.Error(0)
}
