package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prestigesms/sms-console/internal/console/domain"
	"github.com/prestigesms/sms-console/internal/console/registry"
)

// unknownLineName marks an inbound message whose receiving number is not one
// of the configured lines — a configuration-drift signal, not a hard error.
const unknownLineName = "Unknown Line"

// WebhookService reconciles provider callback events against the stored
// message and contact state. It must be safe under duplicate delivery: status
// updates are idempotent overwrites keyed by provider correlation ID.
type WebhookService struct {
	registry *registry.Registry
	messages domain.MessageRepository
	contacts domain.ContactRepository
	audit    domain.ActionLogRepository
	logger   *slog.Logger
}

func NewWebhookService(
	reg *registry.Registry,
	messages domain.MessageRepository,
	contacts domain.ContactRepository,
	audit domain.ActionLogRepository,
	logger *slog.Logger,
) *WebhookService {
	return &WebhookService{
		registry: reg,
		messages: messages,
		contacts: contacts,
		audit:    audit,
		logger:   logger.With("service", "webhook"),
	}
}

// Process classifies one raw callback body and applies it. Error mapping for
// the transport layer:
//   - domain.ErrMissingPhoneNumbers / domain.ErrMalformedEvent: client fault,
//     reject so the provider does not pointlessly retry a bad payload;
//   - any other error: processing fault, surface a server error so the
//     provider retries delivery.
func (s *WebhookService) Process(ctx context.Context, raw []byte) error {
	event, err := domain.ParseWebhookEvent(raw)
	if err != nil {
		if errors.Is(err, domain.ErrMissingPhoneNumbers) {
			s.logAction(ctx, "Invalid webhook payload - missing phone numbers", domain.LogStatusError)
		}
		return err
	}

	switch ev := event.(type) {
	case domain.InboundMessageEvent:
		return s.handleInbound(ctx, ev)
	case domain.StatusUpdateEvent:
		return s.handleStatusUpdate(ctx, ev)
	case domain.IgnoredEvent:
		s.logger.DebugContext(ctx, "Ignoring webhook event", "event_type", ev.EventType)
		return nil
	default:
		return nil
	}
}

func (s *WebhookService) handleInbound(ctx context.Context, ev domain.InboundMessageEvent) error {
	lineName := unknownLineName
	if line, ok := s.registry.LineFor(ev.To); ok {
		lineName = line.Name
	} else {
		s.logger.WarnContext(ctx, "Inbound message for a number outside the configured lines", "to", ev.To)
	}

	// Inbound messages skip the pending/sent stages entirely: the provider
	// only notifies after successful receipt.
	msg := &domain.Message{
		ID:         uuid.NewString(),
		From:       ev.From,
		To:         ev.To,
		Text:       ev.Text,
		Direction:  domain.DirectionInbound,
		SenderLine: lineName,
		Status:     domain.MessageStatusDelivered,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist inbound message", "error", err, "from", ev.From)
		s.logAction(ctx, fmt.Sprintf("Webhook processing error: %v", err), domain.LogStatusError)
		return err
	}

	if _, err := s.contacts.Touch(ctx, ev.From, time.Now().UTC()); err != nil {
		s.logger.WarnContext(ctx, "Failed to upsert sender contact", "error", err, "phone", ev.From)
	}

	s.logAction(ctx, fmt.Sprintf("Received SMS from %s on %s", ev.From, lineName), domain.LogStatusSuccess)
	return nil
}

func (s *WebhookService) handleStatusUpdate(ctx context.Context, ev domain.StatusUpdateEvent) error {
	updated, err := s.messages.UpdateStatusByProviderID(ctx, ev.ProviderMessageID, ev.Status, time.Now().UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to apply status update",
			"error", err, "provider_message_id", ev.ProviderMessageID, "status", string(ev.Status))
		s.logAction(ctx, fmt.Sprintf("Webhook processing error: %v", err), domain.LogStatusError)
		return err
	}
	if !updated {
		// The ID may predate tracking or belong to purged history; not an error.
		s.logger.DebugContext(ctx, "Status update matched no stored message",
			"provider_message_id", ev.ProviderMessageID)
		return nil
	}

	s.logAction(ctx, fmt.Sprintf("Message %s status updated to: %s", ev.ProviderMessageID, ev.Status), domain.LogStatusSuccess)
	return nil
}

func (s *WebhookService) logAction(ctx context.Context, details string, status domain.LogStatus) {
	if err := s.audit.Append(ctx, domain.ActionWebhook, details, status); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append action log entry", "error", err, "action", domain.ActionWebhook)
	}
}
