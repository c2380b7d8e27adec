package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

// PgContactRepository stores contacts keyed by phone number. Upserts use a
// single INSERT .. ON CONFLICT statement, so concurrent interactions with the
// same number race safely at the storage layer with no application locking.
type PgContactRepository struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

func NewPgContactRepository(db *pgxpool.Pool, logger *slog.Logger) *PgContactRepository {
	return &PgContactRepository{db: db, logger: logger}
}

func (r *PgContactRepository) Touch(ctx context.Context, phone string, at time.Time) (*domain.Contact, error) {
	// Name is set only on first sight; later interactions just bump recency.
	query := `
		INSERT INTO contacts (phone, name, last_active)
		VALUES ($1, $1, $2)
		ON CONFLICT (phone) DO UPDATE SET last_active = EXCLUDED.last_active
		RETURNING phone, name, last_active
	`
	ct := &domain.Contact{}
	err := r.db.QueryRow(ctx, query, phone, at).Scan(&ct.Phone, &ct.Name, &ct.LastActive)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error touching contact", "error", err, "phone", phone)
		return nil, err
	}
	return ct, nil
}

func (r *PgContactRepository) Save(ctx context.Context, phone, name string, at time.Time) (*domain.Contact, error) {
	query := `
		INSERT INTO contacts (phone, name, last_active)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name, last_active = EXCLUDED.last_active
		RETURNING phone, name, last_active
	`
	ct := &domain.Contact{}
	err := r.db.QueryRow(ctx, query, phone, name, at).Scan(&ct.Phone, &ct.Name, &ct.LastActive)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error saving contact", "error", err, "phone", phone)
		return nil, err
	}
	return ct, nil
}

func (r *PgContactRepository) Delete(ctx context.Context, phone string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE phone = $1`, phone)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error deleting contact", "error", err, "phone", phone)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	r.logger.InfoContext(ctx, "Contact deleted", "phone", phone)
	return nil
}

func (r *PgContactRepository) List(ctx context.Context, limit int) ([]*domain.Contact, error) {
	query := `
		SELECT phone, name, last_active
		FROM contacts
		ORDER BY last_active DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing contacts", "error", err)
		return nil, err
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		ct := &domain.Contact{}
		if err := rows.Scan(&ct.Phone, &ct.Name, &ct.LastActive); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning contact row", "error", err)
			return nil, err
		}
		contacts = append(contacts, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}
