package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

type PgMessageRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPgMessageRepository(db *pgxpool.Pool, logger *slog.Logger) *PgMessageRepository {
	return &PgMessageRepository{db: db, logger: logger}
}

func (r *PgMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (
			id, from_number, to_number, body, direction, sender_line,
			provider_message_id, status, created_at, status_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.Exec(ctx, query,
		msg.ID, msg.From, msg.To, msg.Text, msg.Direction, msg.SenderLine,
		msg.ProviderMessageID, msg.Status, msg.Timestamp, msg.StatusUpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error creating message", "error", err, "message_id", msg.ID)
		return err
	}
	return nil
}

func (r *PgMessageRepository) ListByPhone(ctx context.Context, phone string) ([]*domain.Message, error) {
	query := `
		SELECT id, from_number, to_number, body, direction, sender_line,
		       provider_message_id, status, created_at, status_updated_at
		FROM messages
		WHERE from_number = $1 OR to_number = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, phone)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing messages by phone", "error", err, "phone", phone)
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.Message
	for rows.Next() {
		msg := &domain.Message{}
		if err := rows.Scan(
			&msg.ID, &msg.From, &msg.To, &msg.Text, &msg.Direction, &msg.SenderLine,
			&msg.ProviderMessageID, &msg.Status, &msg.Timestamp, &msg.StatusUpdatedAt,
		); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning message row", "error", err, "phone", phone)
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

// UpdateStatusByProviderID is the conditional-write primitive backing webhook
// status reconciliation: one atomic UPDATE keyed on the correlation ID.
// Zero matched rows is reported as updated=false, never as an error.
func (r *PgMessageRepository) UpdateStatusByProviderID(ctx context.Context, providerMessageID string, status domain.MessageStatus, at time.Time) (bool, error) {
	query := `
		UPDATE messages
		SET status = $2, status_updated_at = $3
		WHERE provider_message_id = $1
	`
	tag, err := r.db.Exec(ctx, query, providerMessageID, status, at)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error updating message status", "error", err, "provider_message_id", providerMessageID)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgMessageRepository) DeleteByPhone(ctx context.Context, phone string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM messages WHERE from_number = $1 OR to_number = $1`, phone)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error deleting messages by phone", "error", err, "phone", phone)
		return 0, err
	}
	return tag.RowsAffected(), nil
}
