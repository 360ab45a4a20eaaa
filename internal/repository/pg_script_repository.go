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
	scriptFields = `id, title, content, created_at, updated_at`

	listScriptsQuery = `
        SELECT ` + scriptFields + `
        FROM cosplay_scripts
        ORDER BY created_at ASC
    `
	getScriptByIDQuery = `
        SELECT ` + scriptFields + `
        FROM cosplay_scripts
        WHERE id = $1
    `
)

// Compile-time check to ensure implementation satisfies the interface.
var _ ScriptRepository = (*pgScriptRepository)(nil)

type pgScriptRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPgScriptRepository creates a new PostgreSQL-backed ScriptRepository.
func NewPgScriptRepository(pool *pgxpool.Pool, logger *zap.Logger) ScriptRepository {
	return &pgScriptRepository{
		pool:   pool,
		logger: logger.Named("PgScriptRepo"),
	}
}

func (r *pgScriptRepository) List(ctx context.Context) ([]models.CosplayScript, error) {
	rows, err := r.pool.Query(ctx, listScriptsQuery)
	if err != nil {
		r.logger.Error("Failed to list scripts", zap.Error(err))
		return nil, fmt.Errorf("listing cosplay scripts: %w", err)
	}
	defer rows.Close()

	scripts := make([]models.CosplayScript, 0)
	for rows.Next() {
		var script models.CosplayScript
		if err := rows.Scan(&script.ID, &script.Title, &script.Content, &script.CreatedAt, &script.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan script row", zap.Error(err))
			return nil, fmt.Errorf("scanning cosplay script: %w", err)
		}
		scripts = append(scripts, script)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cosplay scripts: %w", err)
	}
	return scripts, nil
}

func (r *pgScriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CosplayScript, error) {
	var script models.CosplayScript
	err := r.pool.QueryRow(ctx, getScriptByIDQuery, id).Scan(
		&script.ID,
		&script.Title,
		&script.Content,
		&script.CreatedAt,
		&script.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrScriptNotFound
		}
		r.logger.Error("Failed to get script", zap.Stringer("scriptID", id), zap.Error(err))
		return nil, fmt.Errorf("getting cosplay script: %w", err)
	}
	return &script, nil
}
