package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/prestigesms/sms-console/internal/console/app"
	"github.com/prestigesms/sms-console/internal/console/domain"
)

// Read caps: the API exposes at most this many contacts/log entries per call.
const (
	contactListLimit = 100
	logListLimit     = 100
)

// ContactHandler exposes the contact directory, business lines, and audit log.
type ContactHandler struct {
	directory Directory
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewContactHandler(directory Directory, validate *validator.Validate, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		directory: directory,
		validate:  validate,
		logger:    logger.With("handler", "contact"),
	}
}

// HandleSaveContact upserts a contact from POST /api/contact.
func (h *ContactHandler) HandleSaveContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var req SaveContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "Failed to decode contact request", "error", err)
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "Invalid request payload"})
		return
	}

	if req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "Phone number is required"})
		return
	}
	if err := h.validate.StructCtx(ctx, req); err != nil {
		logger.WarnContext(ctx, "Contact validation failed", "error", err, "phone", req.Phone)
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "Invalid phone number format. Must include country code (e.g., +36201234567)"})
		return
	}

	contact, err := h.directory.SaveContact(ctx, req.Phone, req.Name)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to save contact", "error", err, "phone", req.Phone)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "Failed to save contact"})
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// HandleDeleteContact removes a contact and its message history.
func (h *ContactHandler) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	phone := chi.URLParam(r, "phone")
	if decoded, err := url.PathUnescape(phone); err == nil {
		phone = decoded
	}

	if err := h.directory.DeleteContact(ctx, phone); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			writeJSON(w, http.StatusNotFound, GenericErrorResponse{Error: "Contact not found"})
			return
		}
		logger.ErrorContext(ctx, "Failed to delete contact", "error", err, "phone", phone)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "Failed to delete contact"})
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Contact deleted successfully"})
}

// HandleListContacts returns recently active contacts with their recommended lines.
func (h *ContactHandler) HandleListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	contacts, err := h.directory.ListContacts(ctx, contactListLimit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list contacts", "error", err)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "Failed to fetch contacts"})
		return
	}
	if contacts == nil {
		contacts = []*app.ContactView{}
	}
	writeJSON(w, http.StatusOK, contacts)
}

// HandleListLines returns the configured business lines.
func (h *ContactHandler) HandleListLines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.directory.Lines())
}

// HandleListLogs returns the most recent audit entries, newest first.
func (h *ContactHandler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	logs, err := h.directory.Logs(ctx, logListLimit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch logs", "error", err)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "Failed to fetch logs"})
		return
	}
	if logs == nil {
		logs = []*domain.ActionLogEntry{}
	}
	writeJSON(w, http.StatusOK, logs)
}
