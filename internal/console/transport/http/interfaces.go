package http

import (
	"context"

	"github.com/prestigesms/sms-console/internal/console/app"
	"github.com/prestigesms/sms-console/internal/console/domain"
)

// SendPipeline is the outbound send entry point handlers call.
type SendPipeline interface {
	Send(ctx context.Context, from, to, text string) *domain.SendError
}

// WebhookProcessor handles one raw provider callback body.
type WebhookProcessor interface {
	Process(ctx context.Context, raw []byte) error
}

// Directory covers the contact/message/log operations behind the console API.
type Directory interface {
	SaveContact(ctx context.Context, phone, name string) (*domain.Contact, error)
	DeleteContact(ctx context.Context, phone string) error
	ListContacts(ctx context.Context, limit int) ([]*app.ContactView, error)
	Messages(ctx context.Context, phone string) ([]*domain.Message, error)
	Logs(ctx context.Context, limit int) ([]*domain.ActionLogEntry, error)
	Lines() []domain.BusinessLine
	RecordAction(ctx context.Context, action, details string, status domain.LogStatus)
}
