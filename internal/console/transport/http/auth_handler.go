package http

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/prestigesms/sms-console/internal/console/domain"
)

// AuthHandler verifies the access PIN and manages the session cookie.
type AuthHandler struct {
	sessions  *SessionManager
	directory Directory
	pin       string
	pinHash   string // bcrypt hash, takes precedence over pin when set
	logger    *slog.Logger
}

func NewAuthHandler(sessions *SessionManager, directory Directory, pin, pinHash string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		directory: directory,
		pin:       pin,
		pinHash:   pinHash,
		logger:    logger.With("handler", "auth"),
	}
}

func (h *AuthHandler) verifyPIN(candidate string) bool {
	if h.pinHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.pinHash), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.pin), []byte(candidate)) == 1
}

// HandleLogin verifies the PIN and issues a session cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "Failed to decode login request", "error", err)
		writeJSON(w, http.StatusBadRequest, GenericErrorResponse{Error: "Invalid request payload"})
		return
	}

	if !h.verifyPIN(req.PIN) {
		h.directory.RecordAction(ctx, domain.ActionLogin, "Failed PIN attempt", domain.LogStatusError)
		logger.WarnContext(ctx, "Failed PIN attempt")
		writeJSON(w, http.StatusUnauthorized, GenericErrorResponse{Error: "Invalid PIN. Access denied."})
		return
	}

	if err := h.sessions.Issue(w, time.Now().UTC()); err != nil {
		logger.ErrorContext(ctx, "Failed to issue session", "error", err)
		writeJSON(w, http.StatusInternalServerError, GenericErrorResponse{Error: "Failed to create session"})
		return
	}
	h.directory.RecordAction(ctx, domain.ActionLogin, "User authenticated successfully", domain.LogStatusSuccess)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "Authentication successful"})
}

// HandleLogout clears the session cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.directory.RecordAction(r.Context(), domain.ActionLogout, "User logged out", domain.LogStatusSuccess)
	h.sessions.Clear(w)
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}
