package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

// MaxWebhookBodySize caps provider callback bodies.
const MaxWebhookBodySize = 1 << 20

// WebhookHandler receives provider callbacks on POST /webhook. The endpoint
// is unauthenticated: the provider originates these calls. Every classified
// outcome is acknowledged with 200 so the provider stops redelivering, except
// an inbound message missing its phone numbers (400, a bad payload) and
// internal faults (500, inviting a retry).
type WebhookHandler struct {
	processor WebhookProcessor
	logger    *slog.Logger
}

func NewWebhookHandler(processor WebhookProcessor, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		logger:    logger.With("handler", "webhook"),
	}
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxWebhookBodySize))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read webhook body", "error", err)
		http.Error(w, "Error processing webhook", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	if err := h.processor.Process(ctx, body); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingPhoneNumbers), errors.Is(err, domain.ErrMalformedEvent):
			logger.WarnContext(ctx, "Rejected webhook payload", "error", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
		default:
			logger.ErrorContext(ctx, "Webhook processing failed", "error", err)
			http.Error(w, "Error processing webhook", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
