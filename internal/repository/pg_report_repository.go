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
	reportFields = `id, session_id, result, created_at`

	// The unique constraint on session_id makes the insert a no-op when a
	// concurrent completion already stored a report; the follow-up select
	// returns the surviving row in both cases.
	insertReportQuery = `
        INSERT INTO cosplay_reports (id, session_id, result, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (session_id) DO NOTHING
    `
	getReportBySessionIDQuery = `
        SELECT ` + reportFields + `
        FROM cosplay_reports
        WHERE session_id = $1
    `
)

// Compile-time check to ensure implementation satisfies the interface.
var _ ReportRepository = (*pgReportRepository)(nil)

type pgReportRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgReportRepository creates a new PostgreSQL-backed ReportRepository.
func NewPgReportRepository(pool *pgxpool.Pool, logger *zap.Logger) ReportRepository {
	return &pgReportRepository{
		pool:   pool,
		logger: logger.Named("PgReportRepo"),
	}
}

func (r *pgReportRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.CosplayReport, error) {
	return scanReport(r.pool.QueryRow(ctx, getReportBySessionIDQuery, sessionID))
}

func (r *pgReportRepository) Create(ctx context.Context, report *models.CosplayReport) (*models.CosplayReport, error) {
	persisted, err := insertReportIfAbsent(ctx, r.pool, report)
	if err != nil {
		r.logger.Error("Failed to create report", zap.Stringer("sessionID", report.SessionID), zap.Error(err))
	}
	return persisted, err
}

// insertReportIfAbsent is shared with the session repository's completion
// transaction.
func insertReportIfAbsent(ctx context.Context, db DBTX, report *models.CosplayReport) (*models.CosplayReport, error) {
	_, err := db.Exec(ctx, insertReportQuery,
		report.ID,
		report.SessionID,
		report.Result,
		report.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting cosplay report: %w", err)
	}
	return scanReport(db.QueryRow(ctx, getReportBySessionIDQuery, report.SessionID))
}

func scanReport(row pgx.Row) (*models.CosplayReport, error) {
	var report models.CosplayReport
	err := row.Scan(&report.ID, &report.SessionID, &report.Result, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrReportNotFound
		}
		return nil, fmt.Errorf("scanning cosplay report: %w", err)
	}
	return &report, nil
}
