package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

// PgActionLogRepository is the append-only audit sink. Nothing in the console
// ever mutates or deletes entries; reads are capped by the caller.
type PgActionLogRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPgActionLogRepository(db *pgxpool.Pool, logger *slog.Logger) *PgActionLogRepository {
	return &PgActionLogRepository{db: db, logger: logger}
}

func (r *PgActionLogRepository) Append(ctx context.Context, action, details string, status domain.LogStatus) error {
	query := `
		INSERT INTO action_log (id, action, details, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, uuid.NewString(), action, details, status, time.Now().UTC())
	if err != nil {
		r.logger.ErrorContext(ctx, "Error appending action log entry", "error", err, "action", action)
		return err
	}
	return nil
}

func (r *PgActionLogRepository) List(ctx context.Context, limit int) ([]*domain.ActionLogEntry, error) {
	query := `
		SELECT id, action, details, status, created_at
		FROM action_log
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing action log entries", "error", err)
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.ActionLogEntry
	for rows.Next() {
		entry := &domain.ActionLogEntry{}
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Details, &entry.Status, &entry.Timestamp); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning action log row", "error", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
