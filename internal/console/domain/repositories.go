package domain

import (
	"context"
	"time"
)

// ContactRepository persists contacts keyed by phone number. Upserts must be
// atomic at the storage layer; callers never hold application-level locks.
type ContactRepository interface {
	// Touch records activity for a phone number: the contact is created with
	// the phone as its name if unseen, otherwise only lastActive is bumped.
	Touch(ctx context.Context, phone string, at time.Time) (*Contact, error)
	// Save upserts a contact with an explicit display name.
	Save(ctx context.Context, phone, name string, at time.Time) (*Contact, error)
	// Delete removes a contact. Returns ErrContactNotFound when absent.
	Delete(ctx context.Context, phone string) error
	// List returns contacts ordered by lastActive, most recent first.
	List(ctx context.Context, limit int) ([]*Contact, error)
}

// MessageRepository persists the message history.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// ListByPhone returns all messages where the phone is sender or recipient,
	// in chronological order.
	ListByPhone(ctx context.Context, phone string) ([]*Message, error)
	// UpdateStatusByProviderID applies a status transition to the outbound
	// message matching the provider correlation ID. Returns false (and no
	// error) when no message matches; repeated application with the same
	// arguments is an idempotent overwrite.
	UpdateStatusByProviderID(ctx context.Context, providerMessageID string, status MessageStatus, at time.Time) (bool, error)
	// DeleteByPhone removes every message where the phone is sender or
	// recipient and reports how many rows went away.
	DeleteByPhone(ctx context.Context, phone string) (int64, error)
}

// ActionLogRepository is the append-only audit sink.
type ActionLogRepository interface {
	Append(ctx context.Context, action, details string, status LogStatus) error
	// List returns entries most recent first, capped at limit.
	List(ctx context.Context, limit int) ([]*ActionLogEntry, error)
}
