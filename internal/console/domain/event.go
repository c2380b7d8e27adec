package domain

import (
	"encoding/json"
	"fmt"
)

// Provider event types the console understands. Anything else is acknowledged
// and dropped so future provider additions fail closed.
const (
	EventTypeMessageReceived  = "message.received"
	EventTypeMessageFinalized = "message.finalized"
	EventTypeMessageSent      = "message.sent"
	EventTypeMessageFailed    = "message.failed"
)

// WebhookEvent is the closed set of classified provider callback events.
type WebhookEvent interface {
	webhookEvent()
}

// InboundMessageEvent is a new SMS received on one of the business lines.
type InboundMessageEvent struct {
	From string
	To   string
	Text string
}

// StatusUpdateEvent is an asynchronous delivery-status transition for a
// previously sent outbound message, identified by the provider correlation ID.
type StatusUpdateEvent struct {
	ProviderMessageID string
	Status            MessageStatus
}

// IgnoredEvent is anything the console acknowledges without side effects:
// unknown event types and status events carrying no trackable ID.
type IgnoredEvent struct {
	EventType string
}

func (InboundMessageEvent) webhookEvent() {}
func (StatusUpdateEvent) webhookEvent()   {}
func (IgnoredEvent) webhookEvent()        {}

type webhookEnvelope struct {
	Data struct {
		EventType string          `json:"event_type"`
		Payload   json.RawMessage `json:"payload"`
	} `json:"data"`
}

type webhookPayload struct {
	ID   string `json:"id"`
	From struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"from"`
	To []struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"to"`
	Text string `json:"text"`
}

// ParseWebhookEvent classifies a raw provider callback body into one of the
// event variants. An inbound message without both phone numbers yields
// ErrMissingPhoneNumbers; an undecodable body yields ErrMalformedEvent.
func ParseWebhookEvent(raw []byte) (WebhookEvent, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	eventType := env.Data.EventType
	var payload webhookPayload
	if len(env.Data.Payload) > 0 {
		if err := json.Unmarshal(env.Data.Payload, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
	}

	switch eventType {
	case EventTypeMessageReceived:
		from := payload.From.PhoneNumber
		to := ""
		if len(payload.To) > 0 {
			to = payload.To[0].PhoneNumber
		}
		if from == "" || to == "" {
			return nil, ErrMissingPhoneNumbers
		}
		return InboundMessageEvent{From: from, To: to, Text: payload.Text}, nil

	case EventTypeMessageFinalized, EventTypeMessageSent, EventTypeMessageFailed:
		if payload.ID == "" {
			// Some provider events carry no trackable ID; expected, not an error.
			return IgnoredEvent{EventType: eventType}, nil
		}
		status := MessageStatusSent
		switch eventType {
		case EventTypeMessageFinalized:
			status = MessageStatusDelivered
		case EventTypeMessageFailed:
			status = MessageStatusFailed
		}
		return StatusUpdateEvent{ProviderMessageID: payload.ID, Status: status}, nil

	default:
		return IgnoredEvent{EventType: eventType}, nil
	}
}
