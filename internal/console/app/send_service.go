package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prestigesms/sms-console/internal/console/domain"
	"github.com/prestigesms/sms-console/internal/console/provider"
	"github.com/prestigesms/sms-console/internal/console/registry"
)

// e164Pattern is the acceptance rule for both endpoints of a send:
// '+' then a non-zero digit then 1-14 further digits.
var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// SendService is the outbound pipeline: validate, resolve the sender line,
// call the provider once, persist, update the contact, and audit the outcome.
type SendService struct {
	registry *registry.Registry
	provider provider.SMSSenderProvider
	messages domain.MessageRepository
	contacts domain.ContactRepository
	audit    domain.ActionLogRepository
	logger   *slog.Logger
}

func NewSendService(
	reg *registry.Registry,
	prov provider.SMSSenderProvider,
	messages domain.MessageRepository,
	contacts domain.ContactRepository,
	audit domain.ActionLogRepository,
	logger *slog.Logger,
) *SendService {
	return &SendService{
		registry: reg,
		provider: prov,
		messages: messages,
		contacts: contacts,
		audit:    audit,
		logger:   logger.With("service", "send"),
	}
}

// Send performs a single synchronous, at-most-once send attempt. There is no
// retry, and a crash between provider acceptance and local persistence leaves
// no local record of a message the provider did accept; that gap is part of
// the contract.
//
// A nil return means the message was accepted, persisted with status "sent",
// and the destination contact was upserted.
func (s *SendService) Send(ctx context.Context, from, to, text string) *domain.SendError {
	if from == "" || to == "" || text == "" {
		s.logAction(ctx, domain.ActionSendSMS, "Missing required fields", domain.LogStatusError)
		return &domain.SendError{
			Reason:     domain.SendFailureMissingFields,
			Message:    "Missing required fields",
			From:       from,
			To:         to,
			HTTPStatus: http.StatusBadRequest,
		}
	}

	if !e164Pattern.MatchString(to) {
		s.logAction(ctx, domain.ActionSendSMS, fmt.Sprintf("Invalid destination number format: %s", to), domain.LogStatusError)
		return &domain.SendError{
			Reason:     domain.SendFailureInvalidDestination,
			Message:    "Invalid destination number format. Must include country code (e.g., +923156780274)",
			From:       from,
			To:         to,
			HTTPStatus: http.StatusBadRequest,
		}
	}

	if !strings.HasPrefix(from, "+") || !e164Pattern.MatchString(from) {
		s.logAction(ctx, domain.ActionSendSMS, fmt.Sprintf("Invalid source number format: %s", from), domain.LogStatusError)
		return &domain.SendError{
			Reason:     domain.SendFailureInvalidSource,
			Message:    fmt.Sprintf("Invalid source number (%s). Must be a valid phone number in E.164 format (e.g., +36204515510)", from),
			From:       from,
			To:         to,
			HTTPStatus: http.StatusBadRequest,
		}
	}

	senderLineName := s.registry.DisplayName(from)

	result, err := s.provider.Send(ctx, provider.SendRequest{From: from, To: to, Text: text})
	if err != nil {
		return s.classifySendFailure(ctx, err, from, to)
	}

	var providerMessageID *string
	if result != nil && result.ProviderMessageID != "" {
		id := result.ProviderMessageID
		providerMessageID = &id
	}

	msg := &domain.Message{
		ID:                uuid.NewString(),
		From:              from,
		To:                to,
		Text:              text,
		Direction:         domain.DirectionOutbound,
		SenderLine:        senderLineName,
		ProviderMessageID: providerMessageID,
		Status:            domain.MessageStatusSent,
		Timestamp:         time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist outbound message after provider acceptance",
			"error", err, "to", to, "provider_message_id", result.ProviderMessageID)
		details := fmt.Sprintf("Failed to send SMS from %s to %s: Error: %v", from, to, err)
		s.logAction(ctx, domain.ActionSendSMS, details, domain.LogStatusError)
		return &domain.SendError{
			Reason:     domain.SendFailureInternal,
			Message:    "Failed to record sent message",
			Details:    details,
			From:       from,
			To:         to,
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	if _, err := s.contacts.Touch(ctx, to, time.Now().UTC()); err != nil {
		// The message went out and is recorded; a contact bump failure is not
		// worth failing the request over.
		s.logger.WarnContext(ctx, "Failed to upsert destination contact", "error", err, "phone", to)
	}

	s.logAction(ctx, domain.ActionSendSMS,
		fmt.Sprintf("Sent SMS from %s (%s) to %s", senderLineName, from, to), domain.LogStatusSuccess)
	return nil
}

// classifySendFailure maps a provider call failure into a SendError with a
// user-facing message, auditing the original endpoints and raw detail.
func (s *SendService) classifySendFailure(ctx context.Context, err error, from, to string) *domain.SendError {
	var (
		reason       domain.SendFailureReason
		userMessage  string
		errorDetails string
		httpStatus   int
	)

	var apiErr *provider.APIError
	var transportErr *provider.TransportError
	switch {
	case errors.As(err, &apiErr):
		reason = domain.SendFailureProviderRejected
		rawDetail := apiErr.BestDetail()
		errorDetails = "Telnyx API Error: " + rawDetail
		userMessage = classifyProviderDetail(rawDetail, from, to)
		httpStatus = apiErr.StatusCode
		if httpStatus == 0 {
			httpStatus = http.StatusInternalServerError
		}
	case errors.As(err, &transportErr):
		reason = domain.SendFailureProviderUnreachable
		userMessage = "No response from Telnyx API. Please check your internet connection and API key."
		errorDetails = fmt.Sprintf("Network error: %v", transportErr.Err)
		httpStatus = http.StatusInternalServerError
	default:
		reason = domain.SendFailureInternal
		userMessage = err.Error()
		errorDetails = fmt.Sprintf("Error: %v", err)
		httpStatus = http.StatusInternalServerError
	}

	fullDetails := fmt.Sprintf("Failed to send SMS from %s to %s: %s", from, to, errorDetails)
	s.logAction(ctx, domain.ActionSendSMS, fullDetails, domain.LogStatusError)
	s.logger.ErrorContext(ctx, "Sending failed", "error", err, "from", from, "to", to, "reason", string(reason))

	return &domain.SendError{
		Reason:     reason,
		Message:    userMessage,
		Details:    errorDetails,
		From:       from,
		To:         to,
		HTTPStatus: httpStatus,
	}
}

func (s *SendService) logAction(ctx context.Context, action, details string, status domain.LogStatus) {
	if err := s.audit.Append(ctx, action, details, status); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append action log entry", "error", err, "action", action)
	}
}
