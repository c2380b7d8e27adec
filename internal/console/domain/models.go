package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Direction tells whether a message was received on or sent from a business line.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// MessageStatus defines the possible states of an SMS message.
// Inbound messages are created directly in "delivered" and never transition;
// outbound messages start in "sent" and may be moved by provider webhooks.
type MessageStatus string

const (
	MessageStatusPending   MessageStatus = "pending"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

// Value implements the driver.Valuer interface for MessageStatus.
func (ms MessageStatus) Value() (driver.Value, error) {
	return string(ms), nil
}

// Scan implements the sql.Scanner interface for MessageStatus.
func (ms *MessageStatus) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		bytesVal, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan MessageStatus: value is not string or []byte, it is %T", value)
		}
		strVal = string(bytesVal)
	}
	*ms = MessageStatus(strVal)
	switch *ms {
	case MessageStatusPending, MessageStatusSent, MessageStatusDelivered, MessageStatusFailed:
		return nil
	default:
		return fmt.Errorf("unknown MessageStatus value: %s", strVal)
	}
}

// Message is one inbound or outbound SMS.
type Message struct {
	ID                string        `json:"id"` // UUID
	From              string        `json:"from"`
	To                string        `json:"to"`
	Text              string        `json:"text"`
	Direction         Direction     `json:"direction"`
	SenderLine        string        `json:"sender_line"` // display name of the business line involved
	ProviderMessageID *string       `json:"provider_message_id,omitempty"`
	Status            MessageStatus `json:"status"`
	Timestamp         time.Time     `json:"timestamp"`
	StatusUpdatedAt   *time.Time    `json:"status_updated,omitempty"`
}

// Contact is a conversational counterparty, keyed by phone number.
type Contact struct {
	Phone      string    `json:"phone"` // E.164, unique
	Name       string    `json:"name"`
	LastActive time.Time `json:"last_active"`
}

// LogStatus is the outcome recorded on an action log entry.
type LogStatus string

const (
	LogStatusSuccess LogStatus = "success"
	LogStatusError   LogStatus = "error"
)

// ActionLogEntry is an append-only audit record. Entries are never mutated.
type ActionLogEntry struct {
	ID        string    `json:"id"` // UUID
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Status    LogStatus `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Audit action tags.
const (
	ActionLogin         = "LOGIN"
	ActionLogout        = "LOGOUT"
	ActionSendSMS       = "SEND_SMS"
	ActionWebhook       = "WEBHOOK"
	ActionSaveContact   = "SAVE_CONTACT"
	ActionDeleteContact = "DELETE_CONTACT"
)

// BusinessLine is one of the fixed phone lines the console can send from and
// receive on. Loaded from configuration at startup, immutable afterwards.
type BusinessLine struct {
	Name               string `json:"name"`
	Number             string `json:"number"` // E.164
	MessagingProfileID string `json:"-"`      // provider profile, empty when the line has none
}
