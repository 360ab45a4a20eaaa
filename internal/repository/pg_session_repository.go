package repository

import (
	"context"
	"errors"
	"fmt"

	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	sessionFields = `id, user_id, script_id, state, progress, state_payload, started_at, finished_at`

	insertSessionQuery = `
        INSERT INTO cosplay_sessions
            (id, user_id, script_id, state, progress, state_payload, started_at)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7)
    `
	getSessionByIDQuery = `
        SELECT ` + sessionFields + `
        FROM cosplay_sessions
        WHERE id = $1
    `
	getActiveSessionQuery = `
        SELECT ` + sessionFields + `
        FROM cosplay_sessions
        WHERE user_id = $1 AND script_id = $2 AND state = $3
        ORDER BY started_at DESC
        LIMIT 1
    `
	updateSessionQuery = `
        UPDATE cosplay_sessions SET
            state = $2,
            progress = $3,
            state_payload = $4,
            finished_at = $5
        WHERE id = $1
    `
)

// Compile-time check to ensure implementation satisfies the interface.
var _ SessionRepository = (*pgSessionRepository)(nil)

type pgSessionRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgSessionRepository creates a new PostgreSQL-backed SessionRepository.
func NewPgSessionRepository(pool *pgxpool.Pool, logger *zap.Logger) SessionRepository {
	return &pgSessionRepository{
		pool:   pool,
		logger: logger.Named("PgSessionRepo"),
	}
}

func (r *pgSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CosplaySession, error) {
	return r.scanSession(r.pool.QueryRow(ctx, getSessionByIDQuery, id))
}

func (r *pgSessionRepository) GetActive(ctx context.Context, userID, scriptID uuid.UUID) (*models.CosplaySession, error) {
	row := r.pool.QueryRow(ctx, getActiveSessionQuery, userID, scriptID, models.SessionStateInProgress)
	return r.scanSession(row)
}

func (r *pgSessionRepository) Create(ctx context.Context, session *models.CosplaySession) error {
	_, err := r.pool.Exec(ctx, insertSessionQuery,
		session.ID,
		session.UserID,
		session.ScriptID,
		session.State,
		session.Progress,
		session.StatePayload,
		session.StartedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create session",
			zap.Stringer("userID", session.UserID),
			zap.Stringer("scriptID", session.ScriptID),
			zap.Error(err))
		return fmt.Errorf("creating cosplay session: %w", err)
	}
	return nil
}

func (r *pgSessionRepository) UpdateState(ctx context.Context, session *models.CosplaySession) error {
	return r.updateState(ctx, r.pool, session)
}

// CompleteWithReport commits the terminal session update and the report
// insert in one transaction, so a reader never observes a completed session
// without its report (or a half-advanced payload).
func (r *pgSessionRepository) CompleteWithReport(ctx context.Context, session *models.CosplaySession, report *models.CosplayReport) (*models.CosplayReport, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning completion transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := r.updateState(ctx, tx, session); err != nil {
		return nil, err
	}
	persisted, err := insertReportIfAbsent(ctx, tx, report)
	if err != nil {
		r.logger.Error("Failed to persist report",
			zap.Stringer("sessionID", session.ID),
			zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing completion transaction: %w", err)
	}
	return persisted, nil
}

func (r *pgSessionRepository) updateState(ctx context.Context, db DBTX, session *models.CosplaySession) error {
	tag, err := db.Exec(ctx, updateSessionQuery,
		session.ID,
		session.State,
		session.Progress,
		session.StatePayload,
		session.FinishedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update session", zap.Stringer("sessionID", session.ID), zap.Error(err))
		return fmt.Errorf("updating cosplay session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrSessionNotFound
	}
	return nil
}

func (r *pgSessionRepository) scanSession(row pgx.Row) (*models.CosplaySession, error) {
	var session models.CosplaySession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.ScriptID,
		&session.State,
		&session.Progress,
		&session.StatePayload,
		&session.StartedAt,
		&session.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to scan session", zap.Error(err))
		return nil, fmt.Errorf("scanning cosplay session: %w", err)
	}
	return &session, nil
}
