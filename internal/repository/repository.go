// Package repository defines the persistence boundary of the cosplay engine
// and its PostgreSQL/Redis implementations. The engine owns the state
// payload shape; durability and uniqueness guarantees live here.
package repository

import (
	"context"
	"errors"

	"cosplay-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrCacheMiss is returned by ScriptCache when no cached entry exists.
var ErrCacheMiss = errors.New("script cache miss")

// DBTX abstracts pgxpool.Pool and pgx.Tx so repositories can run inside or
// outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ScriptRepository provides read access to authored scripts.
type ScriptRepository interface {
	List(ctx context.Context) ([]models.CosplayScript, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.CosplayScript, error)
}

// SessionRepository persists cosplay sessions.
//
// CompleteWithReport applies the terminal transition atomically: the session
// row update and the report insert commit together, and the report insert is
// guarded by the unique session_id constraint so a concurrent completion
// reuses the winner's report instead of duplicating it.
type SessionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CosplaySession, error)
	GetActive(ctx context.Context, userID, scriptID uuid.UUID) (*models.CosplaySession, error)
	Create(ctx context.Context, session *models.CosplaySession) error
	UpdateState(ctx context.Context, session *models.CosplaySession) error
	CompleteWithReport(ctx context.Context, session *models.CosplaySession, report *models.CosplayReport) (*models.CosplayReport, error)
}

// ReportRepository persists compiled reports, at most one per session.
type ReportRepository interface {
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*models.CosplayReport, error)
	// Create inserts the report unless one already exists for the session and
	// returns the persisted row either way.
	Create(ctx context.Context, report *models.CosplayReport) (*models.CosplayReport, error)
}

// ScriptCache is a read-through cache in front of ScriptRepository.GetByID.
// Failures here must never fail a request; callers log and fall back.
type ScriptCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.CosplayScript, error)
	Set(ctx context.Context, script *models.CosplayScript) error
}
