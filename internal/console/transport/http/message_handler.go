package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

// MessageHandler exposes the send operation and per-contact message history.
type MessageHandler struct {
	sender    SendPipeline
	directory Directory
	logger    *slog.Logger
}

func NewMessageHandler(sender SendPipeline, directory Directory, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{
		sender:    sender,
		directory: directory,
		logger:    logger.With("handler", "message"),
	}
}

// HandleSend runs the outbound pipeline for POST /send. Validation failures
// come back as 400 with the machine-checkable reason's message; provider
// failures carry the provider's reported status plus details and endpoints.
func (h *MessageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "Failed to decode send request", "error", err)
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "Invalid request payload"})
		return
	}

	if sendErr := h.sender.Send(ctx, req.FromNumber, req.ToNumber, req.MessageContent); sendErr != nil {
		if sendErr.IsValidation() {
			writeJSON(w, sendErr.HTTPStatus, GenericErrorResponse{Error: sendErr.Message})
			return
		}
		writeJSON(w, sendErr.HTTPStatus, SendErrorResponse{
			Error:   sendErr.Message,
			Details: sendErr.Details,
			From:    sendErr.From,
			To:      sendErr.To,
		})
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "SMS sent successfully"})
}

// HandleMessages returns the conversation with one phone number, oldest first.
func (h *MessageHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	phone := chi.URLParam(r, "phone")
	messages, err := h.directory.Messages(ctx, phone)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch messages", "error", err, "phone", phone)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "Failed to fetch messages"})
		return
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}
